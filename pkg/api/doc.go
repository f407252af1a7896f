// Package api serves the optimizer and the scene generator over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness and build info
//	POST /v1/optimize       optimize an SVG document
//	POST /v1/generate       render a scene spec (or the demo) and optimize it
//	GET  /v1/reports        run history, newest first
//	GET  /v1/reports/{id}   one history entry
//
// /v1/optimize accepts either a JSON body {"svg": "...", "budget_kb": 10,
// ...} or a raw SVG body with the options as query parameters. Passing
// format=svg returns the optimized document itself instead of JSON, with
// the run summary in X-Svgbudget-* headers.
//
// Errors are returned as {"error": {"code": "...", "message": "..."}} with
// a status derived from the error code.
package api

// Package compliance brings serialized SVG documents under a byte budget.
//
// The package is a set of ordered [Stage] transforms grouped into escalation
// [Level]s. [Optimize] sanitizes the input, then applies one level at a time,
// re-measuring after each, until the text fits the [Budget] or every level
// of the [Profile] has been tried. Running out of levels is not an error:
// the result is returned with [StatusExhausted] and its actual size.
//
// # Stages
//
//   - [Sanitize] drops metadata, comments and editor namespaces.
//   - [PruneDefs] removes definitions nothing references.
//   - [ReducePrecision] rounds numeric literals in path data.
//   - [Minify] collapses whitespace and default-valued attributes.
//   - [RemoveDefaultAttrs] drops default presentation values and dead ids.
//   - [GroupSimilar] hoists shared style attributes onto synthetic groups.
//   - [RemoveNonessential] drops title/desc and empty groups.
//   - [TruncateNumbers] rewrites "12.000" as "12" and drops comments and
//     processing instructions.
//
// Tree stages parse their input first. When parsing fails the stage returns
// its input unchanged and the trace marks it skipped; any other error is
// returned to the caller.
//
// Nothing in this package logs or keeps global state, so independent calls
// may run concurrently.
package compliance

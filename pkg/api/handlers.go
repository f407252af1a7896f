package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/svgbudget/pkg/buildinfo"
	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/pipeline"
	"github.com/matzehuels/svgbudget/pkg/scene"
	"github.com/matzehuels/svgbudget/pkg/store"
)

// optimizeRequest is the JSON form of POST /v1/optimize.
type optimizeRequest struct {
	SVG string `json:"svg"`
	pipeline.Options
}

// generateRequest is the body of POST /v1/generate. A missing scene means
// the built-in demo.
type generateRequest struct {
	Scene *scene.Spec `json:"scene,omitempty"`
	pipeline.Options
}

// runResponse summarizes a run.
type runResponse struct {
	ID       string                  `json:"id"`
	Status   string                  `json:"status"`
	Bytes    int                     `json:"bytes"`
	SizeKB   float64                 `json:"size_kb"`
	Budget   int                     `json:"budget_bytes,omitempty"`
	RawBytes int                     `json:"raw_bytes"`
	Profile  string                  `json:"profile,omitempty"`
	Levels   []string                `json:"levels,omitempty"`
	Trace    []compliance.StageTrace `json:"trace,omitempty"`
	Scene    *scene.Report           `json:"scene,omitempty"`
	Cache    pipeline.CacheInfo      `json:"cache"`
	SVG      string                  `json:"svg"`
}

func newRunResponse(res *pipeline.Result) runResponse {
	out := runResponse{
		ID:     res.ID,
		Status: res.Status(),
		Bytes:  len(res.Text),
		SizeKB: float64(len(res.Text)) / 1024,
		Scene:  res.Scene,
		Cache:  res.CacheInfo,
		SVG:    res.Text,
	}
	if opt := res.Optimization; opt != nil {
		out.SizeKB = opt.SizeKB
		out.Budget = opt.Budget.MaxBytes
		out.RawBytes = opt.RawBytes
		out.Profile = opt.Profile
		out.Levels = opt.Levels
		out.Trace = opt.Trace
	} else {
		out.RawBytes = len(res.Text)
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	var req optimizeRequest
	if isJSON(r) {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
	} else {
		req.SVG = string(body)
		if err := optionsFromQuery(r, &req.Options); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if strings.TrimSpace(req.SVG) == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "svg document is required"))
		return
	}
	req.Source = "api"

	res, err := s.runner.Optimize(r.Context(), req.SVG, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeRun(w, r, res)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	spec := req.Scene
	if spec == nil {
		spec = scene.Demo()
	}
	req.Source = "api"

	res, err := s.runner.Generate(r.Context(), spec, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeRun(w, r, res)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	q := store.Query{
		Kind:   r.URL.Query().Get("kind"),
		Status: r.URL.Query().Get("status"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		q.Limit = n
	}
	reports, err := s.runner.Store.List(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reports == nil {
		reports = []store.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// writeRun writes a run as JSON, or as the bare document with format=svg.
func (s *Server) writeRun(w http.ResponseWriter, r *http.Request, res *pipeline.Result) {
	if r.URL.Query().Get("format") != "svg" {
		writeJSON(w, http.StatusOK, newRunResponse(res))
		return
	}
	h := w.Header()
	h.Set("Content-Type", "image/svg+xml")
	h.Set("X-Svgbudget-Id", res.ID)
	h.Set("X-Svgbudget-Status", res.Status())
	h.Set("X-Svgbudget-Bytes", strconv.Itoa(len(res.Text)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.Text)
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// optionsFromQuery reads budget_kb, profile, no_group and refresh.
func optionsFromQuery(r *http.Request, o *pipeline.Options) error {
	q := r.URL.Query()
	if v := q.Get("budget_kb"); v != "" {
		kb, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidBudget, "invalid budget_kb %q", v)
		}
		o.BudgetKB = kb
	}
	o.Profile = q.Get("profile")
	o.DisableGrouping = queryBool(q.Get("no_group"))
	o.Refresh = queryBool(q.Get("refresh"))
	return nil
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

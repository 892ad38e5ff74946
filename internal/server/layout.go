package server

import (
	"encoding/json"
	"net/http"

	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/layout"
	"github.com/quantpane/quantpane/pkg/pipeline"
)

// solveResponse is the POST /v1/layout/solve reply.
type solveResponse struct {
	Resolution layout.BlockHeightResolution `json:"resolution"`
	Layout     layout.BlockLayoutResult     `json:"layout"`
	Fit        layout.ElementFitValidation  `json:"fit"`
	InputHash  string                       `json:"input_hash"`
	Artifacts  map[string]json.RawMessage   `json:"artifacts,omitempty"`
	SVG        string                       `json:"svg,omitempty"`
	CacheHit   bool                         `json:"cache_hit"`
}

// handleSolve runs the full pipeline: height resolution, geometry, fit
// validation, and any requested artifacts.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	s.applySolverConfig(&opts)

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := solveResponse{
		Resolution: result.Solved.Resolution,
		Layout:     result.Solved.Layout,
		Fit:        result.Solved.Fit,
		InputHash:  result.InputHash,
		CacheHit:   result.CacheInfo.SolveHit,
	}
	if data, ok := result.Artifacts[pipeline.FormatJSON]; ok {
		resp.Artifacts = map[string]json.RawMessage{pipeline.FormatJSON: data}
	}
	if data, ok := result.Artifacts[pipeline.FormatSVG]; ok {
		resp.SVG = string(data)
	}

	writeJSON(w, http.StatusOK, resp)
}

// resolveRequest is the POST /v1/layout/resolve body: conflict resolution
// without artifact rendering.
type resolveRequest struct {
	Block            layout.BlockLayoutInput `json:"block"`
	BlockRatio       string                  `json:"block_ratio,omitempty"`
	SoftRatio        bool                    `json:"soft_ratio,omitempty"`
	MaxAllowedHeight float64                 `json:"max_allowed_height,omitempty"`
}

type resolveResponse struct {
	Resolution layout.BlockHeightResolution `json:"resolution"`
	Fit        layout.ElementFitValidation  `json:"fit"`
}

// handleResolve answers "what height would this block get, and why" without
// rendering anything.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := pipeline.Options{
		Block:            req.Block,
		BlockRatio:       req.BlockRatio,
		SoftRatio:        req.SoftRatio,
		MaxAllowedHeight: req.MaxAllowedHeight,
	}
	s.applySolverConfig(&opts)

	solved, err := s.runner.Solve(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		Resolution: solved.Resolution,
		Fit:        solved.Fit,
	})
}

// applySolverConfig fills in operator-configured solver tunables where the
// request leaves them unset.
func (s *Server) applySolverConfig(opts *pipeline.Options) {
	if opts.MaxAllowedHeight == 0 {
		opts.MaxAllowedHeight = s.solver.MaxAllowedHeight
	}
	if opts.BaseFontPx == 0 {
		opts.BaseFontPx = s.solver.BaseFontPx
	}
	if opts.MinFontPx == 0 {
		opts.MinFontPx = s.solver.MinFontPx
	}
}

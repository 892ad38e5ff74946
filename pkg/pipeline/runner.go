package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quantpane/quantpane/pkg/cache"
	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/layout"
	"github.com/quantpane/quantpane/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Solve
	solveStart := time.Now()
	solved, solveHit, err := r.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "solve")
	}
	result.Solved = solved
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.CellCount = len(opts.Block.Cells)
	result.CacheInfo.SolveHit = solveHit
	result.InputHash = inputHash(opts)

	r.Logger.Info("resolved block height",
		"block", opts.Block.BlockID,
		"height", solved.Resolution.HeightPx,
		"priority", solved.Resolution.Priority.String(),
		"duration", result.Stats.SolveTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, solved, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo resolves the block height with caching and returns
// cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (Solved, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return Solved{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(inputHash(opts), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Solved
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Solve
	solved := r.solve(ctx, opts)

	// Cache the result
	if !opts.Refresh {
		if data, err := json.Marshal(solved); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return solved, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Solve(ctx context.Context, opts Options) (Solved, error) {
	solved, _, err := r.SolveWithCacheInfo(ctx, opts)
	return solved, err
}

// solve runs conflict resolution and derives per-cell geometry at the
// winning height.
func (r *Runner) solve(ctx context.Context, opts Options) Solved {
	start := time.Now()
	observability.Solver().OnSolveStart(ctx, opts.Block.BlockID, len(opts.Block.Cells))

	validator := opts.Validator()
	resolver := layout.NewConflictResolver(validator)

	resolution := resolver.Resolve(opts.ResolutionInput())
	geometry := layout.SolveBlockAt(opts.Block, resolution.HeightPx)
	fit := validator.Validate(opts.Block, resolution.HeightPx)

	if !fit.Fits {
		actions := make([]string, len(fit.RequiredActions))
		for i, a := range fit.RequiredActions {
			actions[i] = string(a)
		}
		observability.Solver().OnFitViolation(ctx, opts.Block.BlockID, fit.RequiredHeight, actions)
		r.Logger.Warn("content does not fit resolved height",
			"block", opts.Block.BlockID,
			"required_height", fit.RequiredHeight,
			"actions", actions)
	}

	observability.Solver().OnSolveComplete(ctx, opts.Block.BlockID,
		resolution.Priority.String(), time.Since(start), nil)

	return Solved{
		Resolution: resolution,
		Layout:     geometry,
		Fit:        fit,
	}
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, solved Solved, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from solved geometry
	solvedData, err := json.Marshal(solved)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize solve for cache key")
	}
	solvedHash := cache.Hash(solvedData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(solvedHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := RenderArtifacts(ctx, solved, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(solvedHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, solved Solved, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, solved, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// inputHash is the content hash of the block input, used for cache keys and
// API responses.
func inputHash(opts Options) string {
	data, _ := json.Marshal(opts.Block)
	return cache.Hash(data)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

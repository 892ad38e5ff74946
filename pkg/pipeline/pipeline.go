// Package pipeline provides the core layout pipeline for Quantpane.
//
// This package implements the complete solve → validate → render pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Solve: Resolve the single shared block height (intrinsic media,
//     declared block ratio, readability enforcement) and derive per-cell
//     pixel geometry, re-validated through the fit validator.
//  2. Render: Generate output artifacts in various formats (SVG, JSON).
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Block:   blockInput,
//	    Formats: []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Solve only
//	solved, err := runner.Solve(ctx, opts)
//
//	// Render with an existing solve
//	artifacts, err := runner.Render(ctx, solved, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quantpane/quantpane/pkg/cache"
	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultMaxAllowedHeight caps resolved block heights.
	DefaultMaxAllowedHeight = layout.MaxBlockHeightPx

	// DefaultBaseFontPx is the font size content is laid out at before any
	// readability shrinking.
	DefaultBaseFontPx = layout.DefaultBaseFontPx

	// DefaultMinFontPx is the readability floor.
	DefaultMinFontPx = layout.DefaultMinFontPx
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// DefaultFormat is the format rendered when none is requested.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Solve options
	Block            layout.BlockLayoutInput `json:"block"`
	BlockRatio       string                  `json:"block_ratio,omitempty"` // e.g. "16:9"
	SoftRatio        bool                    `json:"soft_ratio,omitempty"`
	MaxAllowedHeight float64                 `json:"max_allowed_height,omitempty"`
	BaseFontPx       float64                 `json:"base_font_px,omitempty"`
	MinFontPx        float64                 `json:"min_font_px,omitempty"`
	Refresh          bool                    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"` // Draw chart IDs in SVG output

	// Runtime options (not serialized)
	Logger   *log.Logger            `json:"-"`
	Measurer layout.ContentMeasurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Solved contains the outputs of the solve stage.
type Solved struct {
	// Resolution explains which priority won the height decision.
	Resolution layout.BlockHeightResolution `json:"resolution"`

	// Layout is the per-cell pixel geometry at the resolved height.
	Layout layout.BlockLayoutResult `json:"layout"`

	// Fit is the validation verdict at the resolved height.
	Fit layout.ElementFitValidation `json:"fit"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Solved is the resolved height, geometry, and fit verdict.
	Solved Solved

	// InputHash is the content hash of the block input.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount  int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solve result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks required fields for height solving.
func (o *Options) ValidateForSolve() error {
	if err := errors.ValidateBlockInput(o.Block); err != nil {
		return err
	}
	o.SetSolveDefaults()
	return nil
}

// SetSolveDefaults sets default values for height solving.
func (o *Options) SetSolveDefaults() {
	if o.MaxAllowedHeight == 0 {
		o.MaxAllowedHeight = DefaultMaxAllowedHeight
	}
	if o.BaseFontPx == 0 {
		o.BaseFontPx = DefaultBaseFontPx
	}
	if o.MinFontPx == 0 {
		o.MinFontPx = DefaultMinFontPx
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// RatioPreference returns the declared block ratio preference, or nil when
// no ratio was requested.
func (o *Options) RatioPreference() *layout.BlockRatioPreference {
	if o.BlockRatio == "" {
		return nil
	}
	return &layout.BlockRatioPreference{
		Ratio:            layout.ResolveRatio(layout.AspectRatio(o.BlockRatio)),
		IsSoftConstraint: o.SoftRatio,
	}
}

// ResolutionInput assembles the conflict resolver input.
func (o *Options) ResolutionInput() layout.HeightResolutionInput {
	return layout.HeightResolutionInput{
		BlockLayoutInput: o.Block,
		BlockAspectRatio: o.RatioPreference(),
		MaxAllowedHeight: o.MaxAllowedHeight,
	}
}

// Validator builds the fit validator for these options.
func (o *Options) Validator() *layout.FitValidator {
	v := layout.NewFitValidator(o.Measurer)
	if o.BaseFontPx > 0 {
		v.BaseFontPx = o.BaseFontPx
	}
	if o.MinFontPx > 0 {
		v.MinFontPx = o.MinFontPx
	}
	return v
}

// LayoutKeyOpts returns cache key options for the solve stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	ratio := 0.0
	if pref := o.RatioPreference(); pref != nil {
		ratio = pref.Ratio
	}
	return cache.LayoutKeyOpts{
		MaxAllowedHeight: o.MaxAllowedHeight,
		BlockRatio:       ratio,
		SoftRatio:        o.SoftRatio,
		MinFontPx:        o.MinFontPx,
		BaseFontPx:       o.BaseFontPx,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}

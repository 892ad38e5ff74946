package layout

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Pixel bounds and defaults for the height solve.
const (
	// FallbackHeightPx is returned whenever a block provides no usable
	// geometric constraint (no cells, zero total units, or no image cells in
	// an aspect-ratio solve). A visible-but-imperfect block beats a failed one.
	FallbackHeightPx = 360.0

	// MinBlockHeightPx is the minimum readable block height.
	MinBlockHeightPx = 150.0

	// MaxBlockHeightPx is the maximum sane block height.
	MaxBlockHeightPx = 800.0

	// TextCellWidthPx is the fixed pixel allocation for text cells.
	// A default subject to upstream override.
	TextCellWidthPx = 300.0
)

// Font defaults shared across a block.
const (
	// DefaultTitleFontPx is the synced title font size.
	DefaultTitleFontPx = 18.0

	// DefaultSubtitleFontPx is the synced subtitle font size.
	DefaultSubtitleFontPx = 13.0

	// DefaultBaseFontPx is the body font size content is laid out at.
	DefaultBaseFontPx = 14.0

	// DefaultMinFontPx is the readability floor: body text below this size
	// triggers remedial action.
	DefaultMinFontPx = 11.0
)

// BodyType identifies the kind of content a cell renders.
type BodyType string

// The closed set of cell body types.
const (
	BodyPie   BodyType = "pie"
	BodyBar   BodyType = "bar"
	BodyKPI   BodyType = "kpi"
	BodyText  BodyType = "text"
	BodyImage BodyType = "image"
	BodyTable BodyType = "table"
)

// ValidBodyTypes is the set of supported cell body types.
var ValidBodyTypes = map[BodyType]bool{
	BodyPie:   true,
	BodyBar:   true,
	BodyKPI:   true,
	BodyText:  true,
	BodyImage: true,
	BodyTable: true,
}

// ImageMode governs whether an image's own pixel dimensions override the
// block-level solve for that cell.
type ImageMode string

// Image sizing modes.
const (
	// ImageModeCover scales the image to the solved cell geometry.
	ImageModeCover ImageMode = "cover"

	// ImageModeSetIntrinsic makes the image's natural dimensions
	// authoritative: the image dictates the row, not the row the image.
	ImageModeSetIntrinsic ImageMode = "setIntrinsic"
)

// =============================================================================
// Cell & Block Configuration
// =============================================================================

// ContentInfo carries per-cell content measurements. It is consumed by fit
// validation (text length against available vertical space) and by
// intrinsic-media resolution (natural image dimensions).
type ContentInfo struct {
	// TextLength is the character count of the cell's body text.
	TextLength int `json:"text_length,omitempty" bson:"text_length,omitempty"`

	// IntrinsicWidthPx and IntrinsicHeightPx are the natural pixel
	// dimensions of image content, meaningful with ImageModeSetIntrinsic.
	IntrinsicWidthPx  float64 `json:"intrinsic_width_px,omitempty" bson:"intrinsic_width_px,omitempty"`
	IntrinsicHeightPx float64 `json:"intrinsic_height_px,omitempty" bson:"intrinsic_height_px,omitempty"`
}

// CellConfiguration describes one visual unit inside a block.
type CellConfiguration struct {
	// ChartID is an opaque stable identifier, unique within a block.
	ChartID string `json:"chart_id" bson:"chart_id"`

	// CellWidth is the positive grid-unit span of the cell. Observed
	// configurations use 1 or 2, but any positive integer is accepted.
	CellWidth int `json:"cell_width" bson:"cell_width"`

	// BodyType tags the cell content kind.
	BodyType BodyType `json:"body_type" bson:"body_type"`

	// AspectRatio is required and meaningful only for image cells.
	AspectRatio AspectRatio `json:"aspect_ratio,omitempty" bson:"aspect_ratio,omitempty"`

	// Title and Subtitle are display strings, irrelevant to height solving
	// except through fit validation.
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" bson:"subtitle,omitempty"`

	// ImageMode selects between cover and intrinsic sizing for image cells.
	ImageMode ImageMode `json:"image_mode,omitempty" bson:"image_mode,omitempty"`

	// Content holds optional per-cell measurements for fit validation.
	Content *ContentInfo `json:"content,omitempty" bson:"content,omitempty"`
}

// IsImage returns true if this cell renders an image body.
func (c *CellConfiguration) IsImage() bool { return c.BodyType == BodyImage }

// IsIntrinsic returns true if this cell's natural image dimensions are
// authoritative for sizing.
func (c *CellConfiguration) IsIntrinsic() bool {
	return c.BodyType == BodyImage && c.ImageMode == ImageModeSetIntrinsic
}

// BlockLayoutInput is the solver's input: one block and its ordered cells.
// BlockWidthPx must be positive; Cells may be empty (degenerate case handled
// by the fallback height).
type BlockLayoutInput struct {
	BlockID      string              `json:"block_id" bson:"block_id"`
	BlockWidthPx float64             `json:"block_width_px" bson:"block_width_px"`
	Cells        []CellConfiguration `json:"cells" bson:"cells"`
}

// HasImageCells returns true if any cell in the block is an image.
func (in *BlockLayoutInput) HasImageCells() bool {
	for i := range in.Cells {
		if in.Cells[i].IsImage() {
			return true
		}
	}
	return false
}

// =============================================================================
// Results
// =============================================================================

// SyncedFonts carries the title/subtitle font sizes shared across a block.
// These are a pass-through constant pair as far as height solving is
// concerned; font resolution itself happens upstream.
type SyncedFonts struct {
	TitlePx    float64 `json:"title_px" bson:"title_px"`
	SubtitlePx float64 `json:"subtitle_px" bson:"subtitle_px"`
}

// DefaultSyncedFonts returns the standard synced font pair.
func DefaultSyncedFonts() SyncedFonts {
	return SyncedFonts{TitlePx: DefaultTitleFontPx, SubtitlePx: DefaultSubtitleFontPx}
}

// CellGeometry is the solved pixel geometry for one cell.
// HeightPx always equals the block's shared height. WidthPx is zero for
// non-image, non-text cells: their width is driven by an external
// grid/column mechanism rather than by this pixel computation.
type CellGeometry struct {
	ChartID  string  `json:"chart_id" bson:"chart_id"`
	WidthPx  float64 `json:"width_px" bson:"width_px"`
	HeightPx float64 `json:"height_px" bson:"height_px"`
}

// BlockLayoutResult is the solver's output: the single shared height and
// per-cell geometry. The core invariant of the whole engine is that every
// cell's HeightPx equals BlockHeightPx.
type BlockLayoutResult struct {
	BlockID       string         `json:"block_id" bson:"block_id"`
	BlockHeightPx float64        `json:"block_height_px" bson:"block_height_px"`
	SyncedFonts   SyncedFonts    `json:"synced_fonts" bson:"synced_fonts"`
	Cells         []CellGeometry `json:"cells" bson:"cells"`
}

// =============================================================================
// Conflict Resolution Contract
// =============================================================================

// HeightResolutionPriority is the strictly ordered set of sizing pressures.
// Lower numeric value wins when multiple constraints are simultaneously
// satisfiable.
type HeightResolutionPriority int

// Resolution priorities, most to least authoritative.
const (
	PriorityIntrinsicMedia   HeightResolutionPriority = 1
	PriorityBlockAspectRatio HeightResolutionPriority = 2
	PriorityReadability      HeightResolutionPriority = 3
	PriorityStructuralFail   HeightResolutionPriority = 4
)

// String returns the priority name for logs and diagnostics.
func (p HeightResolutionPriority) String() string {
	switch p {
	case PriorityIntrinsicMedia:
		return "INTRINSIC_MEDIA"
	case PriorityBlockAspectRatio:
		return "BLOCK_ASPECT_RATIO"
	case PriorityReadability:
		return "READABILITY_ENFORCEMENT"
	case PriorityStructuralFail:
		return "STRUCTURAL_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// BlockRatioPreference is a declared block-level aspect ratio.
// A soft constraint yields to higher-priority pressures; a hard constraint
// that conflicts with computed geometry escalates to readability enforcement
// rather than being silently violated.
type BlockRatioPreference struct {
	Ratio            float64 `json:"ratio" bson:"ratio"`
	IsSoftConstraint bool    `json:"is_soft_constraint" bson:"is_soft_constraint"`
}

// HeightResolutionInput is the conflict-resolution contract input.
type HeightResolutionInput struct {
	BlockLayoutInput

	// BlockAspectRatio is an optional declared block-level ratio.
	BlockAspectRatio *BlockRatioPreference `json:"block_aspect_ratio,omitempty" bson:"block_aspect_ratio,omitempty"`

	// MaxAllowedHeight caps readability growth. Zero means MaxBlockHeightPx.
	MaxAllowedHeight float64 `json:"max_allowed_height,omitempty" bson:"max_allowed_height,omitempty"`
}

// BlockHeightResolution reports the resolved height and why it won.
type BlockHeightResolution struct {
	// HeightPx is the resolved shared height.
	HeightPx float64 `json:"height_px" bson:"height_px"`

	// Priority identifies the pressure that determined the height.
	Priority HeightResolutionPriority `json:"priority" bson:"priority"`

	// Reason explains the decision, suitable for logs and UI.
	Reason string `json:"reason" bson:"reason"`

	// CanIncrease reports whether the height is still negotiable:
	// headroom remains below MaxAllowedHeight.
	CanIncrease bool `json:"can_increase" bson:"can_increase"`

	// RequiresSplit reports the terminal state: no single height satisfies
	// all constraints and the caller must split the block into more rows.
	RequiresSplit bool `json:"requires_split" bson:"requires_split"`
}

// =============================================================================
// Fit Validation Contract
// =============================================================================

// FitAction is a remedial action the caller may apply before re-solving.
type FitAction string

// Remedies ordered by increasing cost and invasiveness.
const (
	ActionReflow         FitAction = "reflow"
	ActionAggregate      FitAction = "aggregate"
	ActionIncreaseHeight FitAction = "increaseHeight"
	ActionSplitBlock     FitAction = "splitBlock"
)

// ElementFitValidation reports whether rendered content fits a candidate
// height without remedial action.
type ElementFitValidation struct {
	Fits bool `json:"fits" bson:"fits"`

	// RequiredHeight is the height at which content would fit at the minimum
	// font size. Zero when Fits is true.
	RequiredHeight float64 `json:"required_height,omitempty" bson:"required_height,omitempty"`

	// MinFontSize is the readability floor the validation was run against.
	MinFontSize float64 `json:"min_font_size,omitempty" bson:"min_font_size,omitempty"`

	// CurrentFontSize is the font size implied by the candidate height.
	CurrentFontSize float64 `json:"current_font_size,omitempty" bson:"current_font_size,omitempty"`

	// Violations are human-readable diagnostics, one per offending cell.
	Violations []string `json:"violations,omitempty" bson:"violations,omitempty"`

	// RequiredActions is the ordered menu of remedies, cheapest first.
	RequiredActions []FitAction `json:"required_actions,omitempty" bson:"required_actions,omitempty"`
}

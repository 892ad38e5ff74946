package layout

import (
	"fmt"
	"math"
)

// titleBandPx is the vertical reserve for the synced title/subtitle band
// above cell content.
const titleBandPx = 48.0

// ContentMeasurer estimates the vertical space a cell's content needs at a
// given width and font size. Modeling content metadata behind this closed
// capability interface keeps the validator's dependency explicit and
// testable in isolation.
type ContentMeasurer interface {
	EstimateRequiredHeight(content ContentInfo, widthPx, fontPx float64) float64
}

// TextMeasurer is the default ContentMeasurer: a character-count heuristic
// that wraps text into lines at an average glyph width and stacks them at a
// fixed line-height factor.
type TextMeasurer struct{}

// EstimateRequiredHeight returns the pixel height content needs at fontPx
// inside a cell widthPx wide. Cells without text content need no height.
func (TextMeasurer) EstimateRequiredHeight(content ContentInfo, widthPx, fontPx float64) float64 {
	if content.TextLength <= 0 || fontPx <= 0 {
		return 0
	}
	if widthPx <= 0 {
		widthPx = TextCellWidthPx
	}

	charWidth := fontPx * 0.55
	lineHeight := fontPx * 1.4
	charsPerLine := math.Max(1, math.Floor(widthPx/charWidth))
	lines := math.Ceil(float64(content.TextLength) / charsPerLine)

	return lines*lineHeight + titleBandPx
}

// FitValidator determines whether rendered content fits a candidate height
// at an acceptable font size. Text cells dominate: their content length
// interacts with available vertical space through the measurer.
type FitValidator struct {
	Measurer   ContentMeasurer
	BaseFontPx float64
	MinFontPx  float64
}

// NewFitValidator creates a validator with the given measurer and default
// font thresholds. A nil measurer gets the TextMeasurer heuristic.
func NewFitValidator(m ContentMeasurer) *FitValidator {
	if m == nil {
		m = TextMeasurer{}
	}
	return &FitValidator{
		Measurer:   m,
		BaseFontPx: DefaultBaseFontPx,
		MinFontPx:  DefaultMinFontPx,
	}
}

// Validate checks every cell's content against the candidate height.
//
// Content laid out at the base font size may shrink to fill the candidate
// height; the block fits as long as the implied font size stays at or above
// the readability floor. Otherwise the validation reports the height needed
// to restore the floor and the ordered menu of remedies: reflow before
// aggregate before increaseHeight before splitBlock, reflecting increasing
// cost and invasiveness.
func (v *FitValidator) Validate(in BlockLayoutInput, heightPx float64) ElementFitValidation {
	unit := WidthPerUnit(in.BlockWidthPx, TotalUnits(in.Cells))

	var violations []string
	var worstRequired float64 // at base font, across violating cells

	for i := range in.Cells {
		c := &in.Cells[i]
		if c.Content == nil || c.Content.TextLength <= 0 {
			continue
		}

		width := float64(c.CellWidth) * unit
		if c.BodyType == BodyText {
			width = TextCellWidthPx
		}

		required := v.Measurer.EstimateRequiredHeight(*c.Content, width, v.BaseFontPx)
		if required <= heightPx {
			continue
		}

		// Content overflows at the base font; it fits if shrinking keeps the
		// implied font at or above the floor.
		implied := v.BaseFontPx * heightPx / required
		if implied >= v.MinFontPx {
			continue
		}

		violations = append(violations, fmt.Sprintf(
			"cell %s: text needs %.0fpx at %.0fpx font, block provides %.0fpx (implied font %.1fpx below %.0fpx floor)",
			c.ChartID, required, v.BaseFontPx, heightPx, implied, v.MinFontPx))
		if required > worstRequired {
			worstRequired = required
		}
	}

	if len(violations) == 0 {
		return ElementFitValidation{Fits: true}
	}

	// Height at which the worst cell reaches the minimum font size.
	requiredAtMin := math.Ceil(worstRequired * v.MinFontPx / v.BaseFontPx)

	actions := []FitAction{ActionReflow, ActionAggregate, ActionIncreaseHeight}
	if requiredAtMin > MaxBlockHeightPx {
		actions = append(actions, ActionSplitBlock)
	}

	return ElementFitValidation{
		Fits:            false,
		RequiredHeight:  requiredAtMin,
		MinFontSize:     v.MinFontPx,
		CurrentFontSize: v.BaseFontPx * heightPx / worstRequired,
		Violations:      violations,
		RequiredActions: actions,
	}
}

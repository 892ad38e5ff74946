package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/quantpane/quantpane/pkg/layout"
)

// ValidateEntityID validates an identifier used for pages, charts, partners,
// and blocks. The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators (IDs appear in cache keys and URLs)
//   - Maximum length of 128 characters
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidID, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidID, "id cannot contain path separators")
	}

	return nil
}

// ValidateBlockInput checks the caller contract on a block layout input.
// Non-positive or non-finite block widths and negative cell widths are
// programmer errors surfaced at the call boundary; the solver itself only
// provides the documented numeric fallbacks.
func ValidateBlockInput(in layout.BlockLayoutInput) error {
	if err := ValidateEntityID(in.BlockID); err != nil {
		return Wrap(ErrCodeInvalidBlock, err, "block id")
	}

	if in.BlockWidthPx <= 0 || math.IsNaN(in.BlockWidthPx) || math.IsInf(in.BlockWidthPx, 0) {
		return New(ErrCodeInvalidBlock, "block width must be a positive finite number, got %v", in.BlockWidthPx)
	}

	seen := make(map[string]bool, len(in.Cells))
	for i := range in.Cells {
		c := &in.Cells[i]
		if err := ValidateEntityID(c.ChartID); err != nil {
			return Wrap(ErrCodeInvalidCell, err, "cell %d chart id", i)
		}
		if seen[c.ChartID] {
			return New(ErrCodeInvalidCell, "duplicate chart id %q in block %s", c.ChartID, in.BlockID)
		}
		seen[c.ChartID] = true

		if c.CellWidth < 0 {
			return New(ErrCodeInvalidCell, "cell %s declares negative width %d", c.ChartID, c.CellWidth)
		}
		if !layout.ValidBodyTypes[c.BodyType] {
			return New(ErrCodeInvalidBodyType, "cell %s has unknown body type %q", c.ChartID, c.BodyType)
		}
	}

	return nil
}

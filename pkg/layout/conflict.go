package layout

import (
	"fmt"
	"math"
)

// ratioConflictTolerancePx is the slack allowed between a hard declared
// block ratio and computed geometry before the two are considered in
// conflict.
const ratioConflictTolerancePx = 1.0

// ConflictResolver arbitrates between the height demanded by intrinsic media
// content, an optional declared block-level aspect ratio, the text
// readability floor, and the terminal "no valid layout" state, per the fixed
// HeightResolutionPriority ordering.
type ConflictResolver struct {
	Validator *FitValidator
}

// NewConflictResolver creates a resolver. A nil validator gets the default
// fit validator.
func NewConflictResolver(v *FitValidator) *ConflictResolver {
	if v == nil {
		v = NewFitValidator(nil)
	}
	return &ConflictResolver{Validator: v}
}

// Resolve decides a single winning height for the block and reports why.
//
// Resolution order, most to least authoritative:
//
//  1. Intrinsic media: an image cell in setIntrinsic mode dictates the row
//     height directly, overriding any declared block aspect ratio.
//  2. Block aspect ratio: a soft declared ratio applies whenever no
//     intrinsic cell exists; a hard ratio that conflicts with computed
//     geometry escalates to readability enforcement rather than being
//     silently violated.
//  3. Readability enforcement: the height grows up to MaxAllowedHeight to
//     keep text at or above the minimum font size.
//  4. Structural failure: growth cannot satisfy the floor; the caller must
//     split the block into additional rows. Unreadable content is never
//     silently rendered.
func (r *ConflictResolver) Resolve(in HeightResolutionInput) BlockHeightResolution {
	maxAllowed := in.MaxAllowedHeight
	if maxAllowed <= 0 {
		maxAllowed = MaxBlockHeightPx
	}

	// Priority 1: intrinsic media.
	if h, chartID, ok := intrinsicHeight(in.Cells); ok {
		reason := fmt.Sprintf("image %s intrinsic height %.0fpx dictates the row", chartID, h)
		if in.BlockAspectRatio != nil {
			reason = fmt.Sprintf("image %s intrinsic height %.0fpx overrides %.4g block preference",
				chartID, h, in.BlockAspectRatio.Ratio)
		}
		if h > maxAllowed {
			h = maxAllowed
		}
		return BlockHeightResolution{
			HeightPx:    h,
			Priority:    PriorityIntrinsicMedia,
			Reason:      reason,
			CanIncrease: h < maxAllowed,
		}
	}

	geo := r.geometricHeight(in.BlockLayoutInput, maxAllowed)

	// Priority 2: declared block aspect ratio.
	if pref := in.BlockAspectRatio; pref != nil && pref.Ratio > 0 {
		candidate := clampTo(in.BlockWidthPx/pref.Ratio, maxAllowed)

		if !pref.IsSoftConstraint && math.Abs(candidate-geo) > ratioConflictTolerancePx {
			// A hard ratio in conflict with computed geometry proceeds to
			// readability enforcement on the geometric height.
			return r.enforceReadability(in.BlockLayoutInput, geo, maxAllowed,
				fmt.Sprintf("hard block ratio %.4g conflicts with computed geometry %.0fpx", pref.Ratio, geo))
		}

		if fit := r.Validator.Validate(in.BlockLayoutInput, candidate); fit.Fits {
			kind := "hard"
			if pref.IsSoftConstraint {
				kind = "soft"
			}
			return BlockHeightResolution{
				HeightPx:    candidate,
				Priority:    PriorityBlockAspectRatio,
				Reason:      fmt.Sprintf("declared %s block ratio %.4g sets height %.0fpx", kind, pref.Ratio, candidate),
				CanIncrease: candidate < maxAllowed,
			}
		}
		return r.enforceReadability(in.BlockLayoutInput, candidate, maxAllowed,
			fmt.Sprintf("block ratio height %.0fpx fails fit validation", candidate))
	}

	// Neither intrinsic media nor a declared ratio determines the height.
	return r.enforceReadability(in.BlockLayoutInput, geo, maxAllowed, "")
}

// enforceReadability grows the candidate height up to maxAllowed until
// content validates, or declares structural failure.
func (r *ConflictResolver) enforceReadability(in BlockLayoutInput, candidate, maxAllowed float64, cause string) BlockHeightResolution {
	prefix := ""
	if cause != "" {
		prefix = cause + "; "
	}

	if fit := r.Validator.Validate(in, candidate); fit.Fits {
		return BlockHeightResolution{
			HeightPx:    candidate,
			Priority:    PriorityReadability,
			Reason:      prefix + fmt.Sprintf("height %.0fpx satisfies the readability floor", candidate),
			CanIncrease: candidate < maxAllowed,
		}
	} else if fit.RequiredHeight <= maxAllowed {
		grown := fit.RequiredHeight
		return BlockHeightResolution{
			HeightPx: grown,
			Priority: PriorityReadability,
			Reason: prefix + fmt.Sprintf("height grown %.0fpx → %.0fpx to keep text at or above %.0fpx font",
				candidate, grown, fit.MinFontSize),
			CanIncrease: grown < maxAllowed,
		}
	}

	return BlockHeightResolution{
		HeightPx: maxAllowed,
		Priority: PriorityStructuralFail,
		Reason: prefix + fmt.Sprintf("content needs more than the %.0fpx ceiling; block must split into additional rows",
			maxAllowed),
		CanIncrease:   false,
		RequiresSplit: true,
	}
}

// geometricHeight is the constraint-free candidate: the aspect-ratio solve
// when image cells anchor the block, the multiplier heuristic otherwise.
func (r *ConflictResolver) geometricHeight(in BlockLayoutInput, maxAllowed float64) float64 {
	if in.HasImageCells() {
		return SolveBlockHeight(in)
	}
	return MultiplierHeight(in.BlockWidthPx, TotalUnits(in.Cells), maxAllowed)
}

// intrinsicHeight returns the natural height of the first image cell in
// setIntrinsic mode, if any.
func intrinsicHeight(cells []CellConfiguration) (float64, string, bool) {
	for i := range cells {
		c := &cells[i]
		if c.IsIntrinsic() && c.Content != nil && c.Content.IntrinsicHeightPx > 0 {
			return c.Content.IntrinsicHeightPx, c.ChartID, true
		}
	}
	return 0, "", false
}

// clampTo bounds h to [MinBlockHeightPx, max] and rounds to whole pixels.
func clampTo(h, max float64) float64 {
	if h < MinBlockHeightPx {
		return MinBlockHeightPx
	}
	if h > max {
		return max
	}
	return math.Round(h)
}

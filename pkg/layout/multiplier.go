package layout

import "math"

// HeightMultiplier returns the heuristic height-to-unit-width ratio for an
// image-free block. Without images there is no geometric constraint to solve
// against, only an aesthetic one:
//
//   - a lone unit should look wide and short (2:1),
//   - two or three units sit roughly square-to-wide,
//   - four or more units get proportionally taller rows so charts don't
//     render overly flat.
func HeightMultiplier(totalUnits int) float64 {
	switch {
	case totalUnits <= 0:
		return 1.0 // defensive fallback
	case totalUnits == 1:
		return 0.5
	case totalUnits <= 3:
		return 1.0
	default:
		return 1.5
	}
}

// MultiplierHeight computes a block height for image-free blocks using the
// discrete multiplier table: round(unitWidth × multiplier), capped at
// maxHeightPx. A zero or negative cap means MaxBlockHeightPx. Blocks
// declaring no units are treated as a single unit spanning the full width.
func MultiplierHeight(blockWidthPx float64, totalUnits int, maxHeightPx float64) float64 {
	if maxHeightPx <= 0 {
		maxHeightPx = MaxBlockHeightPx
	}

	// The multiplier keeps the defensive 1.0 for unit-less blocks; only the
	// width division substitutes a single full-width unit.
	multiplier := HeightMultiplier(totalUnits)
	if totalUnits <= 0 {
		totalUnits = 1
	}

	unitWidth := blockWidthPx / float64(totalUnits)
	target := math.Round(unitWidth * multiplier)
	if target > maxHeightPx {
		return maxHeightPx
	}
	return target
}

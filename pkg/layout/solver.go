package layout

import "math"

// SolveBlockHeight solves for the single height shared by all cells in a
// block. Image cells anchor the solve: total block width is the sum of image
// widths (ratio_i × H each) and non-image widths (cellWidth_i × widthPerUnit
// each), and solving that linear equation for H gives
//
//	H = (blockWidthPx − nonImageWidth) / Σ ratio_i
//
// Blocks with no cells, zero total units, or no image cells return
// FallbackHeightPx. Image-free blocks that want heuristic sizing must invoke
// MultiplierHeight explicitly; the two conventions stay independently
// testable entry points.
//
// The result is clamped to [MinBlockHeightPx, MaxBlockHeightPx] and rounded
// to the nearest integer pixel. Non-positive or non-finite block widths are
// caller contract violations, not recoverable cases.
func SolveBlockHeight(in BlockLayoutInput) float64 {
	totalUnits := TotalUnits(in.Cells)
	if totalUnits <= 0 {
		return FallbackHeightPx
	}

	unit := WidthPerUnit(in.BlockWidthPx, totalUnits)

	var nonImageWidth, sumRatios float64
	for i := range in.Cells {
		c := &in.Cells[i]
		if c.IsImage() {
			sumRatios += ResolveRatio(c.AspectRatio)
		} else {
			nonImageWidth += float64(c.CellWidth) * unit
		}
	}

	if sumRatios == 0 {
		return FallbackHeightPx
	}

	return ClampHeight((in.BlockWidthPx - nonImageWidth) / sumRatios)
}

// SolveBlock computes the shared block height and derives per-cell pixel
// widths: image cells get ratio × height, text cells get the fixed
// TextCellWidthPx allocation, and all other cell types report width 0 to
// signal that their width is grid-driven rather than pixel-driven.
func SolveBlock(in BlockLayoutInput) BlockLayoutResult {
	h := SolveBlockHeight(in)
	return resultAtHeight(in, h)
}

// SolveBlockAt derives per-cell geometry for an externally resolved height,
// e.g. after conflict resolution picked a different height than the plain
// solve would.
func SolveBlockAt(in BlockLayoutInput, heightPx float64) BlockLayoutResult {
	return resultAtHeight(in, heightPx)
}

func resultAtHeight(in BlockLayoutInput, h float64) BlockLayoutResult {
	cells := make([]CellGeometry, len(in.Cells))
	for i := range in.Cells {
		c := &in.Cells[i]
		g := CellGeometry{ChartID: c.ChartID, HeightPx: h}
		switch c.BodyType {
		case BodyImage:
			g.WidthPx = ResolveRatio(c.AspectRatio) * h
		case BodyText:
			g.WidthPx = TextCellWidthPx
		}
		cells[i] = g
	}
	return BlockLayoutResult{
		BlockID:       in.BlockID,
		BlockHeightPx: h,
		SyncedFonts:   DefaultSyncedFonts(),
		Cells:         cells,
	}
}

// ClampHeight bounds h to the readable height envelope and rounds to whole
// pixels. Values outside [MinBlockHeightPx, MaxBlockHeightPx] snap to the
// nearest bound; an unbounded or negative height never propagates.
func ClampHeight(h float64) float64 {
	if h < MinBlockHeightPx {
		return MinBlockHeightPx
	}
	if h > MaxBlockHeightPx {
		return MaxBlockHeightPx
	}
	return math.Round(h)
}

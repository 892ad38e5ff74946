package layout

// TotalUnits sums the declared grid-unit spans over all cells.
func TotalUnits(cells []CellConfiguration) int {
	total := 0
	for i := range cells {
		total += cells[i].CellWidth
	}
	return total
}

// WidthPerUnit computes the pixel width represented by one grid unit.
// Returns 0 when the block declares no units, leaving the fallback decision
// to the caller.
func WidthPerUnit(blockWidthPx float64, totalUnits int) float64 {
	if totalUnits <= 0 {
		return 0
	}
	return blockWidthPx / float64(totalUnits)
}

package layout

import (
	"math"
	"reflect"
	"testing"
)

func TestSolveBlockHeight(t *testing.T) {
	tests := []struct {
		name string
		in   BlockLayoutInput
		want float64
	}{
		{
			name: "image and kpi mix",
			// 1200px wide: one 16:9 image spanning 2 units, one KPI spanning 1.
			// widthPerUnit=400, nonImageWidth=400, H=(1200-400)/1.778 ≈ 450.
			in: BlockLayoutInput{
				BlockID:      "b1",
				BlockWidthPx: 1200,
				Cells: []CellConfiguration{
					{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
					{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
				},
			},
			want: 450,
		},
		{
			name: "single portrait image clamps to max",
			// H = 600/0.5625 ≈ 1066.7, clamped to 800.
			in: BlockLayoutInput{
				BlockID:      "b2",
				BlockWidthPx: 600,
				Cells: []CellConfiguration{
					{ChartID: "img", CellWidth: 1, BodyType: BodyImage, AspectRatio: RatioPortrait},
				},
			},
			want: MaxBlockHeightPx,
		},
		{
			name: "narrow image block clamps to min",
			// H = 100/1.778 ≈ 56.2, clamped to 150.
			in: BlockLayoutInput{
				BlockID:      "b3",
				BlockWidthPx: 100,
				Cells: []CellConfiguration{
					{ChartID: "img", CellWidth: 1, BodyType: BodyImage, AspectRatio: RatioWide},
				},
			},
			want: MinBlockHeightPx,
		},
		{
			name: "empty cells fall back",
			in:   BlockLayoutInput{BlockID: "b4", BlockWidthPx: 1000},
			want: FallbackHeightPx,
		},
		{
			name: "zero total units fall back",
			in: BlockLayoutInput{
				BlockID:      "b5",
				BlockWidthPx: 1000,
				Cells: []CellConfiguration{
					{ChartID: "a", CellWidth: 0, BodyType: BodyKPI},
					{ChartID: "b", CellWidth: 0, BodyType: BodyPie},
				},
			},
			want: FallbackHeightPx,
		},
		{
			name: "no image cells fall back",
			in: BlockLayoutInput{
				BlockID:      "b6",
				BlockWidthPx: 900,
				Cells: []CellConfiguration{
					{ChartID: "a", CellWidth: 1, BodyType: BodyKPI},
					{ChartID: "b", CellWidth: 1, BodyType: BodyBar},
					{ChartID: "c", CellWidth: 1, BodyType: BodyTable},
				},
			},
			want: FallbackHeightPx,
		},
		{
			name: "square image with text cell",
			// widthPerUnit=250, nonImageWidth=250, H=(1000-250)/1.0 = 750.
			in: BlockLayoutInput{
				BlockID:      "b7",
				BlockWidthPx: 1000,
				Cells: []CellConfiguration{
					{ChartID: "img", CellWidth: 3, BodyType: BodyImage, AspectRatio: RatioSquare},
					{ChartID: "txt", CellWidth: 1, BodyType: BodyText},
				},
			},
			want: 750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SolveBlockHeight(tt.in); got != tt.want {
				t.Errorf("SolveBlockHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolveBlockHeightInvariant(t *testing.T) {
	in := BlockLayoutInput{
		BlockID:      "inv",
		BlockWidthPx: 1200,
		Cells: []CellConfiguration{
			{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
			{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
			{ChartID: "txt", CellWidth: 1, BodyType: BodyText},
		},
	}

	res := SolveBlock(in)
	for _, c := range res.Cells {
		if c.HeightPx != res.BlockHeightPx {
			t.Errorf("cell %s height = %v, want shared height %v", c.ChartID, c.HeightPx, res.BlockHeightPx)
		}
	}
}

func TestSolveBlockWidthConservation(t *testing.T) {
	in := BlockLayoutInput{
		BlockID:      "cons",
		BlockWidthPx: 1200,
		Cells: []CellConfiguration{
			{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
			{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
		},
	}

	res := SolveBlock(in)
	unit := WidthPerUnit(in.BlockWidthPx, TotalUnits(in.Cells))

	// Image widths come from the result; non-image widths are grid-driven.
	total := 0.0
	for i, c := range res.Cells {
		if in.Cells[i].IsImage() {
			total += c.WidthPx
		} else {
			total += float64(in.Cells[i].CellWidth) * unit
		}
	}

	if math.Abs(total-in.BlockWidthPx) > 1.0 {
		t.Errorf("widths sum to %v, want %v within 1px", total, in.BlockWidthPx)
	}
}

func TestSolveBlockAspectRatioFidelity(t *testing.T) {
	in := BlockLayoutInput{
		BlockID:      "fid",
		BlockWidthPx: 1400,
		Cells: []CellConfiguration{
			{ChartID: "wide", CellWidth: 1, BodyType: BodyImage, AspectRatio: RatioWide},
			{ChartID: "square", CellWidth: 1, BodyType: BodyImage, AspectRatio: RatioSquare},
			{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
		},
	}

	res := SolveBlock(in)
	for i, c := range res.Cells {
		cfg := in.Cells[i]
		if !cfg.IsImage() {
			continue
		}
		want := ResolveRatio(cfg.AspectRatio)
		if got := c.WidthPx / c.HeightPx; math.Abs(got-want) > 1e-9 {
			t.Errorf("cell %s width/height = %v, want %v", c.ChartID, got, want)
		}
	}
}

func TestSolveBlockCellWidths(t *testing.T) {
	in := BlockLayoutInput{
		BlockID:      "widths",
		BlockWidthPx: 1200,
		Cells: []CellConfiguration{
			{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
			{ChartID: "txt", CellWidth: 1, BodyType: BodyText},
			{ChartID: "pie", CellWidth: 1, BodyType: BodyPie},
		},
	}

	res := SolveBlock(in)

	if got := res.Cells[1].WidthPx; got != TextCellWidthPx {
		t.Errorf("text cell width = %v, want fixed %v", got, TextCellWidthPx)
	}
	if got := res.Cells[2].WidthPx; got != 0 {
		t.Errorf("pie cell width = %v, want 0 (grid-driven)", got)
	}
	if got := res.Cells[0].WidthPx; got <= 0 {
		t.Errorf("image cell width = %v, want positive", got)
	}
}

func TestSolveBlockIdempotent(t *testing.T) {
	in := BlockLayoutInput{
		BlockID:      "idem",
		BlockWidthPx: 1200,
		Cells: []CellConfiguration{
			{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
			{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
		},
	}

	first := SolveBlock(in)
	second := SolveBlock(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated solve differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSolveBlockSyncedFonts(t *testing.T) {
	res := SolveBlock(BlockLayoutInput{BlockID: "fonts", BlockWidthPx: 800})
	want := DefaultSyncedFonts()
	if res.SyncedFonts != want {
		t.Errorf("SyncedFonts = %+v, want %+v", res.SyncedFonts, want)
	}
}

func TestClampHeight(t *testing.T) {
	tests := []struct {
		name string
		h    float64
		want float64
	}{
		{name: "below minimum", h: 20, want: MinBlockHeightPx},
		{name: "at minimum", h: 150, want: 150},
		{name: "in range rounds", h: 450.06, want: 450},
		{name: "rounds up", h: 449.5, want: 450},
		{name: "at maximum", h: 800, want: 800},
		{name: "above maximum", h: 1066.7, want: MaxBlockHeightPx},
		{name: "negative", h: -5, want: MinBlockHeightPx},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampHeight(tt.h); got != tt.want {
				t.Errorf("ClampHeight(%v) = %v, want %v", tt.h, got, tt.want)
			}
		})
	}
}

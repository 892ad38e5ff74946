package layout

import (
	"strings"
	"testing"
)

func TestResolveIntrinsicMediaWins(t *testing.T) {
	r := NewConflictResolver(nil)

	// An intrinsic image at 500px against a soft block ratio implying 300px:
	// the image dictates the row.
	in := HeightResolutionInput{
		BlockLayoutInput: BlockLayoutInput{
			BlockID:      "d",
			BlockWidthPx: 900,
			Cells: []CellConfiguration{
				{
					ChartID:     "img",
					CellWidth:   1,
					BodyType:    BodyImage,
					AspectRatio: RatioWide,
					ImageMode:   ImageModeSetIntrinsic,
					Content:     &ContentInfo{IntrinsicWidthPx: 750, IntrinsicHeightPx: 500},
				},
			},
		},
		BlockAspectRatio: &BlockRatioPreference{Ratio: 3.0, IsSoftConstraint: true},
	}

	got := r.Resolve(in)
	if got.Priority != PriorityIntrinsicMedia {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityIntrinsicMedia)
	}
	if got.HeightPx != 500 {
		t.Errorf("HeightPx = %v, want 500", got.HeightPx)
	}
	if !got.CanIncrease {
		t.Error("CanIncrease = false, want true (headroom below 800 remains)")
	}
	if got.RequiresSplit {
		t.Error("RequiresSplit = true, want false")
	}
	if !strings.Contains(got.Reason, "overrides") {
		t.Errorf("Reason = %q, want mention of the overridden block preference", got.Reason)
	}
}

func TestResolveIntrinsicCappedAtMaxAllowed(t *testing.T) {
	r := NewConflictResolver(nil)

	in := HeightResolutionInput{
		BlockLayoutInput: BlockLayoutInput{
			BlockID:      "cap",
			BlockWidthPx: 900,
			Cells: []CellConfiguration{
				{
					ChartID:   "img",
					CellWidth: 1,
					BodyType:  BodyImage,
					ImageMode: ImageModeSetIntrinsic,
					Content:   &ContentInfo{IntrinsicHeightPx: 900},
				},
			},
		},
		MaxAllowedHeight: 800,
	}

	got := r.Resolve(in)
	if got.HeightPx != 800 {
		t.Errorf("HeightPx = %v, want capped 800", got.HeightPx)
	}
	if got.CanIncrease {
		t.Error("CanIncrease = true, want false at the cap")
	}
}

func TestResolveSoftRatioApplies(t *testing.T) {
	r := NewConflictResolver(nil)

	in := HeightResolutionInput{
		BlockLayoutInput: BlockLayoutInput{
			BlockID:      "soft",
			BlockWidthPx: 1200,
			Cells: []CellConfiguration{
				{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
			},
		},
		BlockAspectRatio: &BlockRatioPreference{Ratio: 2.0, IsSoftConstraint: true},
	}

	got := r.Resolve(in)
	if got.Priority != PriorityBlockAspectRatio {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityBlockAspectRatio)
	}
	if got.HeightPx != 600 {
		t.Errorf("HeightPx = %v, want 600 (1200/2.0)", got.HeightPx)
	}
}

func TestResolveHardRatioConflictEscalates(t *testing.T) {
	r := NewConflictResolver(nil)

	// Geometry solves to 450px; a hard 2.0 ratio demands 600px. The hard
	// constraint is not silently violated: resolution proceeds to
	// readability enforcement on the geometric height.
	in := HeightResolutionInput{
		BlockLayoutInput: BlockLayoutInput{
			BlockID:      "hard",
			BlockWidthPx: 1200,
			Cells: []CellConfiguration{
				{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
				{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
			},
		},
		BlockAspectRatio: &BlockRatioPreference{Ratio: 2.0, IsSoftConstraint: false},
	}

	got := r.Resolve(in)
	if got.Priority != PriorityReadability {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityReadability)
	}
	if got.HeightPx != 450 {
		t.Errorf("HeightPx = %v, want geometric 450", got.HeightPx)
	}
	if !strings.Contains(got.Reason, "conflicts") {
		t.Errorf("Reason = %q, want mention of the ratio conflict", got.Reason)
	}
}

func TestResolveHardRatioAgreeingApplies(t *testing.T) {
	r := NewConflictResolver(nil)

	// 1200/2.6667 ≈ 450, matching the geometric solve within tolerance.
	in := HeightResolutionInput{
		BlockLayoutInput: BlockLayoutInput{
			BlockID:      "agree",
			BlockWidthPx: 1200,
			Cells: []CellConfiguration{
				{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
				{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
			},
		},
		BlockAspectRatio: &BlockRatioPreference{Ratio: 2.6667, IsSoftConstraint: false},
	}

	got := r.Resolve(in)
	if got.Priority != PriorityBlockAspectRatio {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityBlockAspectRatio)
	}
	if got.HeightPx != 450 {
		t.Errorf("HeightPx = %v, want 450", got.HeightPx)
	}
}

func TestResolveReadabilityGrowth(t *testing.T) {
	r := NewConflictResolver(nil)

	// No intrinsic cell, no declared ratio. The multiplier heuristic gives
	// 450px, which leaves the text just under the font floor; the height
	// grows to restore readability.
	in := HeightResolutionInput{
		BlockLayoutInput: textBlock(1000),
	}

	got := r.Resolve(in)
	if got.Priority != PriorityReadability {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityReadability)
	}
	if got.HeightPx != 454 {
		t.Errorf("HeightPx = %v, want grown 454", got.HeightPx)
	}
	if !got.CanIncrease {
		t.Error("CanIncrease = false, want true below the cap")
	}
	if got.RequiresSplit {
		t.Error("RequiresSplit = true, want false")
	}
}

func TestResolveStructuralFailure(t *testing.T) {
	r := NewConflictResolver(nil)

	in := HeightResolutionInput{
		BlockLayoutInput: textBlock(3000),
	}

	got := r.Resolve(in)
	if got.Priority != PriorityStructuralFail {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityStructuralFail)
	}
	if !got.RequiresSplit {
		t.Error("RequiresSplit = false, want true")
	}
	if got.CanIncrease {
		t.Error("CanIncrease = true, want false")
	}
	if got.HeightPx != MaxBlockHeightPx {
		t.Errorf("HeightPx = %v, want ceiling %v", got.HeightPx, MaxBlockHeightPx)
	}
}

func TestResolveGeometricFallbackNoConstraints(t *testing.T) {
	r := NewConflictResolver(nil)

	in := HeightResolutionInput{
		BlockLayoutInput: BlockLayoutInput{
			BlockID:      "geo",
			BlockWidthPx: 1200,
			Cells: []CellConfiguration{
				{ChartID: "img", CellWidth: 2, BodyType: BodyImage, AspectRatio: RatioWide},
				{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
			},
		},
	}

	got := r.Resolve(in)
	if got.Priority != PriorityReadability {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityReadability)
	}
	if got.HeightPx != 450 {
		t.Errorf("HeightPx = %v, want aspect-ratio solve 450", got.HeightPx)
	}
}

func TestPriorityString(t *testing.T) {
	tests := []struct {
		p    HeightResolutionPriority
		want string
	}{
		{PriorityIntrinsicMedia, "INTRINSIC_MEDIA"},
		{PriorityBlockAspectRatio, "BLOCK_ASPECT_RATIO"},
		{PriorityReadability, "READABILITY_ENFORCEMENT"},
		{PriorityStructuralFail, "STRUCTURAL_FAILURE"},
		{HeightResolutionPriority(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

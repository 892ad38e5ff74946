package layout

import "testing"

// textBlock builds a 900px block with a single 1-unit text cell carrying
// textLength characters of content.
func textBlock(textLength int) BlockLayoutInput {
	return BlockLayoutInput{
		BlockID:      "fit",
		BlockWidthPx: 900,
		Cells: []CellConfiguration{
			{
				ChartID:   "txt",
				CellWidth: 1,
				BodyType:  BodyText,
				Content:   &ContentInfo{TextLength: textLength},
			},
		},
	}
}

func TestFitValidatorFits(t *testing.T) {
	v := NewFitValidator(nil)

	got := v.Validate(textBlock(100), 360)
	if !got.Fits {
		t.Fatalf("Validate() fits = false, want true: %+v", got)
	}
	if len(got.RequiredActions) != 0 {
		t.Errorf("RequiredActions = %v, want none", got.RequiredActions)
	}
	if len(got.Violations) != 0 {
		t.Errorf("Violations = %v, want none", got.Violations)
	}
}

func TestFitValidatorShrinkWithinFloor(t *testing.T) {
	v := NewFitValidator(nil)

	// Content overflows the candidate height at the base font, but the
	// implied shrunk font stays above the readability floor.
	got := v.Validate(textBlock(500), 300)
	if !got.Fits {
		t.Fatalf("Validate() fits = false, want true (shrink within floor): %+v", got)
	}
}

func TestFitValidatorViolation(t *testing.T) {
	v := NewFitValidator(nil)

	got := v.Validate(textBlock(1000), 360)
	if got.Fits {
		t.Fatal("Validate() fits = true, want false")
	}
	if got.RequiredHeight != 454 {
		t.Errorf("RequiredHeight = %v, want 454", got.RequiredHeight)
	}
	if got.MinFontSize != DefaultMinFontPx {
		t.Errorf("MinFontSize = %v, want %v", got.MinFontSize, DefaultMinFontPx)
	}
	if got.CurrentFontSize <= 0 || got.CurrentFontSize >= DefaultMinFontPx {
		t.Errorf("CurrentFontSize = %v, want below the %vpx floor", got.CurrentFontSize, DefaultMinFontPx)
	}
	if len(got.Violations) != 1 {
		t.Errorf("Violations = %v, want one entry", got.Violations)
	}

	want := []FitAction{ActionReflow, ActionAggregate, ActionIncreaseHeight}
	if len(got.RequiredActions) != len(want) {
		t.Fatalf("RequiredActions = %v, want %v", got.RequiredActions, want)
	}
	for i, a := range want {
		if got.RequiredActions[i] != a {
			t.Errorf("RequiredActions[%d] = %v, want %v", i, got.RequiredActions[i], a)
		}
	}
}

func TestFitValidatorSplitAction(t *testing.T) {
	v := NewFitValidator(nil)

	// Content so long that even the maximum sane height cannot restore the
	// minimum font size: splitBlock joins the remedy list.
	got := v.Validate(textBlock(3000), 360)
	if got.Fits {
		t.Fatal("Validate() fits = true, want false")
	}
	if got.RequiredHeight <= MaxBlockHeightPx {
		t.Errorf("RequiredHeight = %v, want above %v", got.RequiredHeight, MaxBlockHeightPx)
	}

	last := got.RequiredActions[len(got.RequiredActions)-1]
	if last != ActionSplitBlock {
		t.Errorf("final action = %v, want %v", last, ActionSplitBlock)
	}
}

func TestFitValidatorIgnoresCellsWithoutContent(t *testing.T) {
	v := NewFitValidator(nil)

	in := BlockLayoutInput{
		BlockID:      "nocontent",
		BlockWidthPx: 900,
		Cells: []CellConfiguration{
			{ChartID: "kpi", CellWidth: 1, BodyType: BodyKPI},
			{ChartID: "pie", CellWidth: 1, BodyType: BodyPie},
		},
	}

	if got := v.Validate(in, MinBlockHeightPx); !got.Fits {
		t.Errorf("Validate() fits = false, want true for contentless block: %+v", got)
	}
}

func TestTextMeasurerEstimate(t *testing.T) {
	m := TextMeasurer{}

	tests := []struct {
		name    string
		content ContentInfo
		width   float64
		font    float64
		zero    bool
	}{
		{name: "no text", content: ContentInfo{}, width: 300, font: 14, zero: true},
		{name: "zero font", content: ContentInfo{TextLength: 100}, width: 300, font: 0, zero: true},
		{name: "some text", content: ContentInfo{TextLength: 100}, width: 300, font: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.EstimateRequiredHeight(tt.content, tt.width, tt.font)
			if tt.zero && got != 0 {
				t.Errorf("EstimateRequiredHeight() = %v, want 0", got)
			}
			if !tt.zero && got <= titleBandPx {
				t.Errorf("EstimateRequiredHeight() = %v, want above title band", got)
			}
		})
	}
}

func TestTextMeasurerMonotonicInLength(t *testing.T) {
	m := TextMeasurer{}
	short := m.EstimateRequiredHeight(ContentInfo{TextLength: 100}, 300, 14)
	long := m.EstimateRequiredHeight(ContentInfo{TextLength: 1000}, 300, 14)
	if long <= short {
		t.Errorf("longer text should need more height: short=%v long=%v", short, long)
	}
}

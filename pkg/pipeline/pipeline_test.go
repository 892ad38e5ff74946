package pipeline

import (
	"testing"

	"github.com/quantpane/quantpane/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func validOptions() Options {
	return Options{
		Block: layout.BlockLayoutInput{
			BlockID:      "b1",
			BlockWidthPx: 1200,
			Cells: []layout.CellConfiguration{
				{ChartID: "hero", CellWidth: 2, BodyType: layout.BodyImage, AspectRatio: layout.RatioWide},
				{ChartID: "kpi", CellWidth: 1, BodyType: layout.BodyKPI},
			},
		},
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := validOptions()

	if err := opts.ValidateForSolve(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.MaxAllowedHeight != DefaultMaxAllowedHeight {
		t.Errorf("MaxAllowedHeight should be %v, got %v", DefaultMaxAllowedHeight, opts.MaxAllowedHeight)
	}
	if opts.BaseFontPx != DefaultBaseFontPx {
		t.Errorf("BaseFontPx should be %v, got %v", DefaultBaseFontPx, opts.BaseFontPx)
	}
	if opts.MinFontPx != DefaultMinFontPx {
		t.Errorf("MinFontPx should be %v, got %v", DefaultMinFontPx, opts.MinFontPx)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}
}

func TestOptionsValidateForSolve(t *testing.T) {
	// Missing block id
	opts := validOptions()
	opts.Block.BlockID = ""
	if err := opts.ValidateForSolve(); err == nil {
		t.Error("Missing block id should fail")
	}

	// Non-positive width
	opts = validOptions()
	opts.Block.BlockWidthPx = 0
	if err := opts.ValidateForSolve(); err == nil {
		t.Error("Zero block width should fail")
	}

	// Unknown body type
	opts = validOptions()
	opts.Block.Cells[0].BodyType = "sparkline"
	if err := opts.ValidateForSolve(); err == nil {
		t.Error("Unknown body type should fail")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := validOptions()

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMax := opts.MaxAllowedHeight
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.MaxAllowedHeight != originalMax {
		t.Error("MaxAllowedHeight changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsValidateAndSetDefaultsRejectsBadFormat(t *testing.T) {
	opts := validOptions()
	opts.Formats = []string{"pdf"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unsupported format should fail")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
}

func TestRatioPreference(t *testing.T) {
	opts := validOptions()
	if opts.RatioPreference() != nil {
		t.Error("Empty BlockRatio should mean no preference")
	}

	opts.BlockRatio = "16:9"
	opts.SoftRatio = true
	pref := opts.RatioPreference()
	if pref == nil {
		t.Fatal("BlockRatio should produce a preference")
	}
	if pref.Ratio < 1.7 || pref.Ratio > 1.8 {
		t.Errorf("Ratio = %v, want ~1.778", pref.Ratio)
	}
	if !pref.IsSoftConstraint {
		t.Error("SoftRatio should carry through")
	}
}

func TestResolutionInput(t *testing.T) {
	opts := validOptions()
	opts.SetSolveDefaults()

	in := opts.ResolutionInput()
	if in.BlockID != "b1" {
		t.Errorf("BlockID = %q, want b1", in.BlockID)
	}
	if in.MaxAllowedHeight != DefaultMaxAllowedHeight {
		t.Errorf("MaxAllowedHeight = %v, want %v", in.MaxAllowedHeight, DefaultMaxAllowedHeight)
	}
	if in.BlockAspectRatio != nil {
		t.Error("No ratio was declared")
	}
}

func TestValidatorHonorsOptions(t *testing.T) {
	opts := validOptions()
	opts.BaseFontPx = 16
	opts.MinFontPx = 12

	v := opts.Validator()
	if v.BaseFontPx != 16 || v.MinFontPx != 12 {
		t.Errorf("Validator fonts = %v/%v, want 16/12", v.BaseFontPx, v.MinFontPx)
	}
}

func TestLayoutKeyOptsDistinguishSolverSettings(t *testing.T) {
	a := validOptions()
	a.SetSolveDefaults()
	b := validOptions()
	b.SetSolveDefaults()
	b.MinFontPx = 12

	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("Different solver settings should produce different key opts")
	}
}

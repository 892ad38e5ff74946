package render

import (
	"encoding/json"

	"github.com/quantpane/quantpane/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	resolution *layout.BlockHeightResolution
	fit        *layout.ElementFitValidation
}

// WithJSONResolution includes the height resolution outcome (priority, reason,
// split flag) in the JSON output.
func WithJSONResolution(r layout.BlockHeightResolution) JSONOption {
	return func(j *jsonRenderer) { j.resolution = &r }
}

// WithJSONFit includes the fit validation verdict in the JSON output.
func WithJSONFit(f layout.ElementFitValidation) JSONOption {
	return func(j *jsonRenderer) { j.fit = &f }
}

type jsonOutput struct {
	BlockID     string             `json:"block_id"`
	BlockWidth  float64            `json:"block_width_px"`
	BlockHeight float64            `json:"block_height_px"`
	SyncedFonts layout.SyncedFonts `json:"synced_fonts"`
	Cells       []jsonCell         `json:"cells"`
	Resolution  *jsonResolution    `json:"resolution,omitempty"`

	Fit *layout.ElementFitValidation `json:"fit,omitempty"`
}

type jsonCell struct {
	ChartID  string  `json:"chart_id"`
	BodyType string  `json:"body_type"`
	X        float64 `json:"x"`
	Width    float64 `json:"width_px"`
	Height   float64 `json:"height_px"`
}

type jsonResolution struct {
	Priority      string  `json:"priority"`
	HeightPx      float64 `json:"height_px"`
	Reason        string  `json:"reason"`
	CanIncrease   bool    `json:"can_increase"`
	RequiresSplit bool    `json:"requires_split,omitempty"`
}

// RenderJSON exports the solved geometry as a pretty-printed JSON document.
// Cells carry their absolute x offset so clients can place them without
// re-deriving grid arithmetic. It does not modify its inputs and is safe to
// call concurrently.
func RenderJSON(in layout.BlockLayoutInput, res layout.BlockLayoutResult, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		BlockID:     res.BlockID,
		BlockWidth:  in.BlockWidthPx,
		BlockHeight: res.BlockHeightPx,
		SyncedFonts: res.SyncedFonts,
		Cells:       buildJSONCells(in, res),
		Fit:         r.fit,
	}
	if r.resolution != nil {
		out.Resolution = &jsonResolution{
			Priority:      r.resolution.Priority.String(),
			HeightPx:      r.resolution.HeightPx,
			Reason:        r.resolution.Reason,
			CanIncrease:   r.resolution.CanIncrease,
			RequiresSplit: r.resolution.RequiresSplit,
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCells(in layout.BlockLayoutInput, res layout.BlockLayoutResult) []jsonCell {
	unit := layout.WidthPerUnit(in.BlockWidthPx, layout.TotalUnits(in.Cells))

	cells := make([]jsonCell, 0, len(in.Cells))
	x := 0.0
	for i := range in.Cells {
		c := &in.Cells[i]
		w := cellRenderWidth(c, res.Cells, unit)
		cells = append(cells, jsonCell{
			ChartID:  c.ChartID,
			BodyType: string(c.BodyType),
			X:        x,
			Width:    w,
			Height:   res.BlockHeightPx,
		})
		x += w
	}
	return cells
}

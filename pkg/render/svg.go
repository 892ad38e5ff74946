package render

import (
	"bytes"
	"fmt"

	"github.com/quantpane/quantpane/pkg/layout"
)

// bodyFills maps each cell body type to its preview fill color.
var bodyFills = map[layout.BodyType]string{
	layout.BodyPie:   "#f2c14e",
	layout.BodyBar:   "#5b8def",
	layout.BodyKPI:   "#53b88a",
	layout.BodyText:  "#e8e6e1",
	layout.BodyImage: "#b08ed9",
	layout.BodyTable: "#e07a5f",
}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	resolution *layout.BlockHeightResolution
	labels     bool
}

// WithSVGResolution annotates the preview with the height resolution outcome
// (winning priority and reason) as a footer band.
func WithSVGResolution(r layout.BlockHeightResolution) SVGOption {
	return func(s *svgRenderer) { s.resolution = &r }
}

// WithSVGLabels draws chart IDs and body types inside each cell.
func WithSVGLabels() SVGOption { return func(s *svgRenderer) { s.labels = true } }

// RenderSVG draws the block preview: one rectangle per cell, side by side at
// the shared block height. Cells whose geometry reports zero width (grid-driven
// cells) are drawn at their grid share of the remaining width.
func RenderSVG(in layout.BlockLayoutInput, res layout.BlockLayoutResult, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	h := res.BlockHeightPx
	totalHeight := h
	if r.resolution != nil {
		totalHeight += footerBandPx
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		in.BlockWidthPx, totalHeight, in.BlockWidthPx, totalHeight)

	x := 0.0
	unit := layout.WidthPerUnit(in.BlockWidthPx, layout.TotalUnits(in.Cells))
	for i := range in.Cells {
		c := &in.Cells[i]
		w := cellRenderWidth(c, res.Cells, unit)
		fill := bodyFills[c.BodyType]
		if fill == "" {
			fill = "#cccccc"
		}

		fmt.Fprintf(&buf, `  <rect id="cell-%s" x="%.1f" y="0" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
			c.ChartID, x, w, h, fill)

		if r.labels {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
				x+w/2, h/2, res.SyncedFonts.TitlePx, c.ChartID)
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
				x+w/2, h/2+res.SyncedFonts.TitlePx+4, res.SyncedFonts.SubtitlePx, c.BodyType)
		}
		x += w
	}

	if r.resolution != nil {
		renderResolutionFooter(&buf, in.BlockWidthPx, h, *r.resolution)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// footerBandPx is the height of the resolution annotation band.
const footerBandPx = 28.0

func renderResolutionFooter(buf *bytes.Buffer, width, y float64, r layout.BlockHeightResolution) {
	fmt.Fprintf(buf, `  <rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="#1f2430"/>`+"\n",
		y, width, footerBandPx)
	fmt.Fprintf(buf, `  <text x="8" y="%.1f" font-size="12" fill="#e8e6e1">%s: %s</text>`+"\n",
		y+footerBandPx-9, r.Priority, r.Reason)
}

// cellRenderWidth prefers the solved pixel width and falls back to the grid
// share for cells whose width is grid-driven.
func cellRenderWidth(c *layout.CellConfiguration, cells []layout.CellGeometry, unit float64) float64 {
	for i := range cells {
		if cells[i].ChartID == c.ChartID && cells[i].WidthPx > 0 {
			return cells[i].WidthPx
		}
	}
	return float64(c.CellWidth) * unit
}

package pipeline

import (
	"context"
	"time"

	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/observability"
	"github.com/quantpane/quantpane/pkg/render"
)

// RenderArtifacts renders the solved block into every requested format.
func RenderArtifacts(ctx context.Context, solved Solved, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		start := time.Now()
		observability.Solver().OnRenderStart(ctx, format)

		data, err := renderFormat(solved, opts, format)
		observability.Solver().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderFormat(solved Solved, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []render.SVGOption{render.WithSVGResolution(solved.Resolution)}
		if opts.Labels {
			svgOpts = append(svgOpts, render.WithSVGLabels())
		}
		return render.RenderSVG(opts.Block, solved.Layout, svgOpts...), nil
	case FormatJSON:
		return render.RenderJSON(opts.Block, solved.Layout,
			render.WithJSONResolution(solved.Resolution),
			render.WithJSONFit(solved.Fit))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/layout"
	"github.com/quantpane/quantpane/pkg/pipeline"
)

// solveCommand creates the solve command for computing block layouts.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solve [block.json]",
		Short: "Resolve a block's shared height and per-cell geometry",
		Long: `Resolve a block's shared height and per-cell geometry.

The solve command takes a block.json file (or - for stdin) describing the
block width and its cells, resolves the single shared height every cell
must use, validates the result against the readability floor, and writes
the requested artifacts next to the input.

Images keep their exact aspect ratio; any fit violation is reported along
with the actions the platform would take to repair it.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runSolve(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output basename (default: <input>)")
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.DefaultFormat, "output formats, comma-separated: json, svg")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Solve flags
	cmd.Flags().StringVar(&opts.BlockRatio, "ratio", "", "declared block aspect ratio, e.g. 16:9")
	cmd.Flags().BoolVar(&opts.SoftRatio, "soft", false, "treat the declared ratio as a soft preference")
	cmd.Flags().Float64Var(&opts.MaxAllowedHeight, "max-height", 0, "cap on the resolved height in pixels")
	cmd.Flags().Float64Var(&opts.BaseFontPx, "base-font", 0, "font size assumed for fit estimation")
	cmd.Flags().Float64Var(&opts.MinFontPx, "min-font", 0, "readability floor font size")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw chart IDs in SVG output")

	return cmd
}

// runSolve loads the block, runs the pipeline, and writes artifacts.
func (c *CLI) runSolve(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	block, err := readBlockFile(input)
	if err != nil {
		return fmt.Errorf("load block %s: %w", input, err)
	}
	opts.Block = block

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving block %s...", block.BlockID))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return fmt.Errorf("solve block: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
		if input == "-" {
			base = block.BlockID
		}
	}

	for _, format := range opts.Formats {
		path := base + ".layout." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	res := result.Solved.Resolution
	printSuccess("Height resolved: %.0fpx (%s)", res.HeightPx, res.Priority)
	printDetail("%s", res.Reason)
	printStats(result.Stats.CellCount, res.HeightPx, result.CacheInfo.SolveHit)

	if !result.Solved.Fit.Fits {
		printWarning("Content does not fit at the readability floor")
		for _, action := range result.Solved.Fit.RequiredActions {
			printDetail("action: %s", action)
		}
	}

	printNewline()
	printNextStep("Preview", "quantpane preview "+input)

	return nil
}

// readBlockFile reads a block layout input from a file or stdin ("-").
func readBlockFile(path string) (layout.BlockLayoutInput, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return layout.BlockLayoutInput{}, err
	}

	var block layout.BlockLayoutInput
	if err := json.Unmarshal(data, &block); err != nil {
		return layout.BlockLayoutInput{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse block JSON")
	}
	return block, nil
}

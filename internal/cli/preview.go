package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quantpane/quantpane/pkg/pipeline"
)

// previewCommand creates the preview command, an interactive terminal view of
// a block layout that re-solves as the block width changes.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [block.json]",
		Short: "Interactively preview a block layout",
		Long: `Interactively preview a block layout.

The preview command solves the block and shows the resolved height, the
winning resolution priority, and the per-cell geometry. Arrow keys resize
the block width and the layout re-solves live, which makes it easy to see
where intrinsic media stops anchoring the height or where the readability
floor starts to bite.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.BlockRatio, "ratio", "", "declared block aspect ratio, e.g. 16:9")
	cmd.Flags().BoolVar(&opts.SoftRatio, "soft", false, "treat the declared ratio as a soft preference")
	cmd.Flags().Float64Var(&opts.MaxAllowedHeight, "max-height", 0, "cap on the resolved height in pixels")

	return cmd
}

func (c *CLI) runPreview(input string, opts pipeline.Options) error {
	block, err := readBlockFile(input)
	if err != nil {
		return fmt.Errorf("load block %s: %w", input, err)
	}
	opts.Block = block

	model := newPreviewModel(opts)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}

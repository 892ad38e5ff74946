package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/quantpane/quantpane/pkg/layout"
)

// multiplierCommand creates the multiplier command, a debug tool showing the
// height multiplier heuristic across cell unit counts.
func (c *CLI) multiplierCommand() *cobra.Command {
	var (
		width     float64
		maxHeight float64
		maxUnits  int
	)

	cmd := &cobra.Command{
		Use:   "multiplier",
		Short: "Show the height multiplier heuristic across unit counts",
		Long: `Show the height multiplier heuristic across unit counts.

For each total unit count the table lists the multiplier applied to the
block width and the resulting clamped height. This is the fallback
heuristic used when a block has no image cells to anchor its height.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMultiplier(width, maxHeight, maxUnits)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 1200, "block width in pixels")
	cmd.Flags().Float64Var(&maxHeight, "max-height", layout.MaxBlockHeightPx, "cap on the resolved height")
	cmd.Flags().IntVar(&maxUnits, "units", 8, "highest unit count to show")

	return cmd
}

func runMultiplier(width, maxHeight float64, maxUnits int) error {
	if maxUnits < 1 {
		maxUnits = 1
	}

	rows := make([][]string, 0, maxUnits)
	for units := 1; units <= maxUnits; units++ {
		rows = append(rows, []string{
			fmt.Sprintf("%d", units),
			fmt.Sprintf("%.2f", layout.HeightMultiplier(units)),
			fmt.Sprintf("%.0fpx", layout.MultiplierHeight(width, units, maxHeight)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Units", "Multiplier", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Multiplier heights at %.0fpx width", width)))
	fmt.Println(t.Render())
	printDetail("heights clamp to [%.0f, %.0f]px", layout.MinBlockHeightPx, maxHeight)
	return nil
}

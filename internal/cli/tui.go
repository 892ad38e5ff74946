package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/quantpane/quantpane/pkg/cache"
	"github.com/quantpane/quantpane/pkg/pipeline"
)

// Width stepping bounds for the preview.
const (
	previewWidthStep = 50.0
	previewWidthMin  = 200.0
	previewWidthMax  = 3840.0
)

// previewModel is the bubbletea model for the live layout preview.
type previewModel struct {
	opts   pipeline.Options
	runner *pipeline.Runner
	solved pipeline.Solved
	err    error
}

// newPreviewModel creates a preview model with an initial solve.
func newPreviewModel(opts pipeline.Options) previewModel {
	// The preview owns the terminal, so the runner must not log to it.
	m := previewModel{
		opts:   opts,
		runner: pipeline.NewRunner(cache.NewNullCache(), nil, newLogger(io.Discard, LogInfo)),
	}
	m.resolve()
	return m
}

// resolve re-runs the solve stage for the current options.
func (m *previewModel) resolve() {
	m.solved, m.err = m.runner.Solve(context.Background(), m.opts)
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.opts.Block.BlockWidthPx-previewWidthStep >= previewWidthMin {
				m.opts.Block.BlockWidthPx -= previewWidthStep
				m.resolve()
			}
		case "right", "l":
			if m.opts.Block.BlockWidthPx+previewWidthStep <= previewWidthMax {
				m.opts.Block.BlockWidthPx += previewWidthStep
				m.resolve()
			}
		case "s":
			if m.opts.BlockRatio != "" {
				m.opts.SoftRatio = !m.opts.SoftRatio
				m.resolve()
			}
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Block Preview: " + m.opts.Block.BlockID))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ resize width  s toggle soft ratio  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString("\n")
		return b.String()
	}

	res := m.solved.Resolution
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		StyleDim.Render("width"),
		StyleNumber.Render(fmt.Sprintf("%.0fpx", m.opts.Block.BlockWidthPx)),
		StyleDim.Render("height"),
		StyleNumber.Render(fmt.Sprintf("%.0fpx", res.HeightPx)),
	))
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s: %s", res.Priority, res.Reason)))
	b.WriteString("\n\n")

	// Geometry cells come back in input order, so the body type can be
	// looked up by index.
	rows := make([][]string, 0, len(m.solved.Layout.Cells))
	for i, cell := range m.solved.Layout.Cells {
		body := ""
		if i < len(m.opts.Block.Cells) {
			body = string(m.opts.Block.Cells[i].BodyType)
		}
		width := "grid"
		if cell.WidthPx > 0 {
			width = fmt.Sprintf("%.1fpx", cell.WidthPx)
		}
		rows = append(rows, []string{
			cell.ChartID,
			body,
			width,
			fmt.Sprintf("%.1fpx", cell.HeightPx),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Chart", "Body", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 2 {
				return StyleNumber
			}
			return StyleValue
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if m.solved.Fit.Fits {
		b.WriteString(StyleSuccess.Render(iconSuccess + " content fits"))
		if m.solved.Fit.CurrentFontSize > 0 {
			b.WriteString(StyleDim.Render(fmt.Sprintf("  font %.1fpx", m.solved.Fit.CurrentFontSize)))
		}
	} else {
		b.WriteString(StyleWarning.Render(iconWarning + " fit violation"))
		b.WriteString(StyleDim.Render("  " + strings.Join(fitActions(m.solved), ", ")))
	}
	b.WriteString("\n")

	return b.String()
}

func fitActions(s pipeline.Solved) []string {
	actions := make([]string, len(s.Fit.RequiredActions))
	for i, a := range s.Fit.RequiredActions {
		actions[i] = string(a)
	}
	return actions
}

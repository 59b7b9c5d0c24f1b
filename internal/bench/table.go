package bench

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("9"))
)

// RenderTable formats benchmark results as an aligned table with one row
// per case and one FPS column per pipeline.
func RenderTable(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	headers := []string{"Shape", "Iters"}
	for _, m := range results[0].Measurements {
		headers = append(headers, m.Pipeline+" FPS", m.Pipeline+" Mean")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)

	for _, r := range results {
		row := []string{
			fmt.Sprintf("%dx%dx%d", r.Shape[0], r.Shape[1], r.Shape[2]),
			fmt.Sprintf("%d", r.Iterations),
		}
		for _, m := range r.Measurements {
			if m.Err != nil {
				row = append(row, failStyle.Render("failed"), m.Err.Error())
				continue
			}
			row = append(row,
				fmt.Sprintf("%.1f", m.FPS),
				fmt.Sprintf("%v ± %v", m.Mean.Round(10*time.Microsecond), m.Std.Round(10*time.Microsecond)),
			)
		}
		t = t.Row(row...)
	}
	return t.Render()
}

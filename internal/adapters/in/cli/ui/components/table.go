// Package components renders the tabular parts of CLI output.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bnema/toolshed/internal/adapters/in/cli/ui/styles"
)

const ellipsis = "..."

// Column is a table header. A positive Width caps the display width of the
// column; longer cells are cut with an ellipsis.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table renders rows under cols with the shared theme.
func Table(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = fit(c.Title, c.Width)
	}
	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = make([]string, len(row))
		for j, cell := range row {
			if j < len(cols) {
				cell = fit(cell, cols[j].Width)
			}
			body[i][j] = cell
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.ColorPrimary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(styles.ColorText).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.ColorBorder)).
		Headers(headers...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle
			if row == table.HeaderRow {
				s = headerStyle
			}
			if col < 0 || col >= len(cols) {
				return s
			}
			if w := cols[col].Width; w > 0 {
				s = s.Width(w).MaxWidth(w)
			}
			return s.Align(cols[col].Align)
		}).
		String()
}

// fit cuts value to width display cells, counting whole grapheme clusters.
// Styled input is left alone since escape codes have no display width.
func fit(value string, width int) string {
	if width <= 0 || strings.Contains(value, "\x1b[") || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= len(ellipsis) {
		return strings.Repeat(".", width)
	}

	var b strings.Builder
	room := width - len(ellipsis)
	rest, state := value, -1
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := runewidth.StringWidth(cluster)
		if w > room {
			break
		}
		b.WriteString(cluster)
		room -= w
	}
	if b.Len() == 0 {
		return strings.Repeat(".", width)
	}
	return b.String() + ellipsis
}

// SimpleTable renders headers and rows without width limits.
func SimpleTable(headers []string, rows [][]string) string {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Title: h}
	}
	return Table(cols, rows)
}

// FieldTable lists the per-field breakdown of a cron expression.
func FieldTable(fields [][]string) string {
	return Table([]Column{
		{Title: "Field"},
		{Title: "Option"},
		{Title: "Expression"},
		{Title: "Error", Width: 60},
	}, fields)
}

// BreakdownTable lists the amounts of a tax estimate, right-aligned.
func BreakdownTable(lines [][]string) string {
	return Table([]Column{
		{Title: "Item"},
		{Title: "Amount (VND)", Align: lipgloss.Right},
	}, lines)
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a simple aligned table with a header separator line.
type Table struct {
	Headers []string
	// Align holds per-column alignment; missing entries are left aligned.
	Align []Align
	Rows  [][]string
}

const colGap = 2

// Render pads every column to its widest cell, measuring visible width so
// styled cells line up.
func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	styled := make([]string, cols)
	for i, h := range t.Headers {
		styled[i] = StyleHeader.Render(h)
	}
	t.writeRow(&b, styled, widths)

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		t.writeRow(&b, row, widths)
	}
	return b.String()
}

func (t Table) writeRow(b *strings.Builder, row []string, widths []int) {
	last := len(widths) - 1
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := max(w-lipgloss.Width(cell), 0)
		if t.align(i) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			if i < last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			continue
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

func (t Table) align(i int) Align {
	if i < len(t.Align) {
		return t.Align[i]
	}
	return AlignLeft
}

// RenderTable renders a left-aligned table.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

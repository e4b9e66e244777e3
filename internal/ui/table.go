package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values.
type Row []string

// Table renders a column-aligned table. Styling follows the resolved
// component variant: a table created from a plain bundle renders without
// escape sequences so output stays readable on dumb terminals.
type Table struct {
	Columns []Column
	Rows    []Row
	SelIdx  int // selected row index (-1 = none)
	MaxRows int // rows materialized at once (0 = all), selection kept visible
	plain   bool
}

// NewTable creates a table styled for the given component bundle.
func NewTable(b *ComponentBundle, cols []Column) *Table {
	return &Table{Columns: cols, SelIdx: -1, plain: b != nil && b.Variant == "plain"}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// pad returns s left-aligned within exactly width chars, truncating if
// needed. Padding with fmt guarantees exact column widths; lipgloss
// Width+PaddingRight wraps content when (content length + padding) > Width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Render returns the full table as a string.
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMeta)

	style := func(st lipgloss.Style, s string) string {
		if t.plain {
			return s
		}
		return st.Render(s)
	}

	var sb strings.Builder

	var headers []string
	for _, col := range t.Columns {
		headers = append(headers, style(headerStyle, pad(col.Title, col.Width)))
	}
	sb.WriteString(strings.Join(headers, " "))
	sb.WriteString("\n")

	var divParts []string
	for _, col := range t.Columns {
		divParts = append(divParts, style(dimStyle, strings.Repeat("-", col.Width)))
	}
	sb.WriteString(strings.Join(divParts, " "))
	sb.WriteString("\n")

	sel := t.SelIdx
	if sel < 0 {
		sel = 0
	}
	start, end := listWindow(len(t.Rows), sel, t.MaxRows)
	for i := start; i < end; i++ {
		row := t.Rows[i]
		var cells []string
		for j, col := range t.Columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			switch {
			case i == t.SelIdx && !t.plain:
				cells = append(cells, StyleSelected.Render(pad(val, col.Width)))
			case i == t.SelIdx:
				cells = append(cells, "*"+pad(val, col.Width-1))
			default:
				cells = append(cells, style(cellStyle, pad(val, col.Width)))
			}
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// KeyValueBlock renders a set of key-value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-20s", p[0]+":"))
		val := StyleValue.Render(p[1])
		sb.WriteString("  " + key + " " + val + "\n")
	}
	return StyleBorder.Render(sb.String())
}

package formatter

import (
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 60
)

// TableColors controls the rendered colors. Nil fields fall back to the
// defaults.
type TableColors struct {
	HeaderFG  color.Color
	Value     color.Color
	Separator color.Color
}

// ColumnarOptions configures RenderColumnarTable.
type ColumnarOptions struct {
	NoColor bool
	// TotalWidth is the width to fit; 0 uses the terminal width.
	TotalWidth int
	Colors     TableColors
}

type tableStyles struct {
	header    lipgloss.Style
	value     lipgloss.Style
	separator lipgloss.Style
}

func newTableStyles(tc TableColors) tableStyles {
	if tc.HeaderFG == nil {
		tc.HeaderFG = lipgloss.Color("12")
	}
	if tc.Value == nil {
		tc.Value = lipgloss.Color("248")
	}
	if tc.Separator == nil {
		tc.Separator = lipgloss.Color("240")
	}
	return tableStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(tc.HeaderFG),
		value:     lipgloss.NewStyle().Foreground(tc.Value),
		separator: lipgloss.NewStyle().Foreground(tc.Separator),
	}
}

// RenderColumnarTable renders rows under the given column headers, shrinking
// columns to fit the available width.
func RenderColumnarTable(columns []string, rows [][]string, opts ColumnarOptions) string {
	if len(columns) == 0 {
		return ""
	}
	totalWidth := opts.TotalWidth
	if totalWidth <= 0 {
		totalWidth = getTerminalWidth()
	}
	st := newTableStyles(opts.Colors)
	widths := calculateColumnWidths(columns, rows, totalWidth)

	var b strings.Builder
	header := renderRow(columns, widths)
	if !opts.NoColor {
		header = st.header.Render(header)
	}
	b.WriteString(header + "\n")

	lineWidth := (len(widths) - 1) * sepWidth
	for _, w := range widths {
		lineWidth += w
	}
	separator := strings.Repeat("─", lineWidth)
	if !opts.NoColor {
		separator = st.separator.Render(separator)
	}
	b.WriteString(separator + "\n")

	for _, row := range rows {
		line := renderRow(row, widths)
		if !opts.NoColor {
			line = st.value.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderRow(values []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts[i] = padRight(truncate(val, w), w)
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", sepWidth)), " ")
}

// calculateColumnWidths sizes each column to its widest cell, then caps and
// proportionally shrinks the columns until they fit availableWidth.
func calculateColumnWidths(columns []string, rows [][]string, availableWidth int) []int {
	numCols := len(columns)
	widths := make([]int, numCols)
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < numCols {
				if w := runewidth.StringWidth(val); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	usable := availableWidth - (numCols-1)*sepWidth
	if usable <= 0 || sum(widths) <= usable {
		return widths
	}
	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}
	if total := sum(widths); total > usable {
		for i := range widths {
			w := widths[i] * usable / total
			if w < minColWidth {
				w = minColWidth
			}
			widths[i] = w
		}
	}
	// Trim the widest column until the row fits or nothing can shrink.
	for sum(widths) > usable {
		maxIdx := 0
		for i := 1; i < numCols; i++ {
			if widths[i] > widths[maxIdx] {
				maxIdx = i
			}
		}
		if widths[maxIdx] <= minColWidth {
			break
		}
		widths[maxIdx]--
	}
	return widths
}

func sum(ws []int) int {
	total := 0
	for _, w := range ws {
		total += w
	}
	return total
}

// truncate shortens s to maxLen display cells, ending with "…" when cut.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "…")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

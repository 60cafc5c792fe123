package mrkdwn

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// columnGap separates grid columns.
const columnGap = "  "

// FormatGrid renders a header row and data rows as a left-aligned monospace
// grid: the header line, a line of hyphen runs, then one line per row. Each
// column is as wide as its widest cell; cells wider than maxCellWidth
// display columns are truncated first (maxCellWidth <= 0 disables that).
// Rows are expected to have as many cells as the header; missing cells
// render empty and extra cells are ignored.
func FormatGrid(header []string, rows [][]string, maxCellWidth int) string {
	cols := len(header)
	header = fitRow(header, cols, maxCellWidth)
	fitted := make([][]string, len(rows))
	for i, row := range rows {
		fitted[i] = fitRow(row, cols, maxCellWidth)
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range fitted {
		measure(row)
	}

	lines := make([]string, 0, len(fitted)+2)
	lines = append(lines, gridLine(header, widths))
	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	lines = append(lines, trimRight(strings.Join(rule, columnGap)))
	for _, row := range fitted {
		lines = append(lines, gridLine(row, widths))
	}
	return strings.Join(lines, "\n")
}

// fitRow returns a copy of row with exactly cols cells, each truncated to
// maxCellWidth.
func fitRow(row []string, cols, maxCellWidth int) []string {
	out := make([]string, cols)
	for i := 0; i < cols && i < len(row); i++ {
		cell := row[i]
		if maxCellWidth > 0 {
			cell = runewidth.Truncate(cell, maxCellWidth, "")
		}
		out[i] = cell
	}
	return out
}

func gridLine(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		padded[i] = runewidth.FillRight(cells[i], w)
	}
	return trimRight(strings.Join(padded, columnGap))
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

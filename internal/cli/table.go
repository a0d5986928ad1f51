package cli

import (
	"strings"
)

// table renders rows of text cells in aligned columns under a header line.
type table struct {
	headers []string
	rows    [][]string
	gap     int
	// wrap limits a column's width; longer cells continue on the next line.
	wrap map[int]int
}

func newTable(headers ...string) *table {
	return &table{headers: headers, gap: 2, wrap: make(map[int]int)}
}

// wrapColumn limits column col to width characters.
func (t *table) wrapColumn(col, width int) {
	t.wrap[col] = width
}

// addRow appends a row, padding or truncating it to the header count.
func (t *table) addRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Each cell becomes one or more physical lines.
	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wordWrap(cell, t.wrap[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = len(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], len(line))
			}
		}
	}

	sep := strings.Repeat(" ", t.gap)
	var sb strings.Builder
	writeLine := func(parts []string) {
		for c, part := range parts {
			parts[c] = padRight(part, widths[c])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		sb.WriteByte('\n')
	}

	writeLine(append([]string(nil), t.headers...))
	rule := make([]string, len(widths))
	for c, w := range widths {
		rule[c] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := range height {
			parts := make([]string, len(row))
			for c, lines := range row {
				if i < len(lines) {
					parts[c] = lines[i]
				}
			}
			writeLine(parts)
		}
	}

	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wordWrap splits text at word boundaries so no line exceeds width. Words longer
// than width are cut. A width of zero disables wrapping.
func wordWrap(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

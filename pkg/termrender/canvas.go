package termrender

import (
	"strings"

	"src.arbor.sh/pkg/wcwidth"
)

// Pos is a line/column position on a Canvas.
type Pos struct {
	Line, Col int
}

// Canvas is a fixed-size grid of terminal cells. Each cell holds the text
// drawn at its column; a wide character occupies its own cell and the next
// one, which is left empty.
type Canvas struct {
	Width, Height int
	// Lines holds Height rows of Width cells each.
	Lines [][]string
}

// NewCanvas returns a Canvas of the given size filled with spaces.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	lines := make([][]string, height)
	for i := range lines {
		line := make([]string, width)
		for j := range line {
			line[j] = " "
		}
		lines[i] = line
	}
	return &Canvas{width, height, lines}
}

// WriteString draws s starting at pos, without wrapping, and returns the
// number of columns taken. Characters that fall outside the canvas, or outside
// the first limit columns if limit is not negative, are dropped.
func (c *Canvas) WriteString(pos Pos, s string, limit int) int {
	if pos.Line < 0 || pos.Line >= c.Height {
		return 0
	}
	col := pos.Col
	for _, r := range s {
		w := wcwidth.OfRune(r)
		if w == 0 {
			continue
		}
		if limit >= 0 && col+w-pos.Col > limit {
			break
		}
		c.set(pos.Line, col, string(r), w)
		col += w
	}
	return col - pos.Col
}

func (c *Canvas) set(line, col int, text string, w int) {
	if col < 0 || col+w > c.Width {
		return
	}
	row := c.Lines[line]
	// Overwriting half of a wide character blanks the other half.
	if row[col] == "" && col > 0 {
		row[col-1] = " "
	}
	if end := col + w; end < c.Width && row[end] == "" {
		row[end] = " "
	}
	row[col] = text
	for i := 1; i < w; i++ {
		row[col+i] = ""
	}
}

// String returns the content of the canvas, one line per row with trailing
// spaces trimmed. Trailing empty rows are dropped.
func (c *Canvas) String() string {
	lines := make([]string, len(c.Lines))
	for i, row := range c.Lines {
		lines[i] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// TTYString returns the content of the canvas within box drawing borders,
// which shows its full extent.
func (c *Canvas) TTYString() string {
	sb := new(strings.Builder)
	sb.WriteString("┌" + strings.Repeat("─", c.Width) + "┐\n")
	for _, row := range c.Lines {
		sb.WriteString("│" + strings.Join(row, "") + "│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", c.Width) + "┘\n")
	return sb.String()
}

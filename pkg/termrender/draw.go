package termrender

import (
	"math"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/wcwidth"
)

// Draw draws the subtree of n onto c. The geometry of each node is relative to
// its parent; origins are rounded down to whole cells.
func Draw(c *Canvas, n *elemtree.Node) {
	draw(c, n, fiber.Point{})
}

func draw(c *Canvas, n *elemtree.Node, parent fiber.Point) {
	g := n.Geometry()
	at := fiber.Point{X: parent.X + g.Origin.X, Y: parent.Y + g.Origin.Y}
	pos := Pos{int(math.Floor(at.Y)), int(math.Floor(at.X))}
	width, height := int(g.Size.Width), int(g.Size.Height)

	switch n.Tag() {
	case "text":
		text, _ := n.Attr("text")
		drawWrapped(c, pos, text, width, height)
	case "button":
		if width >= 2 {
			c.WriteString(pos, "[", 1)
			c.WriteString(Pos{pos.Line, pos.Col + width - 1}, "]", 1)
		}
	}
	for _, child := range n.Children() {
		draw(c, child, at)
	}
}

// Draws text in the box of the given size, breaking lines wherever the width
// is reached.
func drawWrapped(c *Canvas, pos Pos, text string, width, height int) {
	for i, line := range wrap(text, width) {
		if i >= height {
			break
		}
		c.WriteString(Pos{pos.Line + i, pos.Col}, line, width)
	}
}

// Splits text into lines no wider than width. A character wider than width
// gets a line of its own.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line []rune
	used := 0
	for _, r := range text {
		w := wcwidth.OfRune(r)
		if used+w > width && len(line) > 0 {
			lines = append(lines, string(line))
			line, used = nil, 0
		}
		line = append(line, r)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// Package viewer implements the main subprogram of arbor, which renders a
// scene document once and prints the result.
package viewer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/logutil"
	"src.arbor.sh/pkg/prog"
	"src.arbor.sh/pkg/scene"
	"src.arbor.sh/pkg/store"
	"src.arbor.sh/pkg/sys"
	"src.arbor.sh/pkg/termrender"
)

var logger = logutil.GetLogger("[viewer] ")

// Default screen size when neither flags nor the terminal give one.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Program renders the scene named by its only argument.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	switch {
	case len(args) == 0 && f.DB != "":
		return prog.ErrNotSuitable
	case len(args) == 0:
		return prog.BadUsage("no scene file given")
	case len(args) > 1:
		return prog.BadUsage("only one scene file may be given")
	}
	if f.Width < 0 || f.Height < 0 {
		return prog.BadUsage("-width and -height must not be negative")
	}
	v, err := scene.Load(args[0])
	if err != nil {
		return err
	}
	width, height := screenSize(fds[1], f)
	logger.Printf("rendering %s at %dx%d", args[0], width, height)

	r := termrender.New(width, height)
	var opts []fiber.Option
	var rec *store.Recorder
	if f.DB != "" {
		j, err := store.Open(f.DB)
		if err != nil {
			return err
		}
		defer j.Close()
		rec = store.NewRecorder(j)
		opts = append(opts, fiber.OnCommit(rec.Record))
	}
	fiber.New(r, v, opts...)
	r.Drain()
	if rec != nil {
		if err := rec.Err(); err != nil {
			return err
		}
	}

	switch {
	case f.JSON:
		return writeJSON(fds[1], treeJSON(r.Tree().Root))
	case f.Tree:
		_, err = io.WriteString(fds[1], elemtree.Dump(r.Tree().Root))
	default:
		_, err = io.WriteString(fds[1], r.Render().String())
	}
	return err
}

// Returns the screen size from the flags, falling back to the size of the
// terminal out refers to and then to the default size.
func screenSize(out *os.File, f *prog.Flags) (width, height int) {
	width, height = defaultWidth, defaultHeight
	if sys.IsATTY(out.Fd()) {
		if row, col := sys.WinSize(out); row > 0 && col > 0 {
			width, height = col, row
		}
	}
	if f.Width > 0 {
		width = f.Width
	}
	if f.Height > 0 {
		height = f.Height
	}
	return width, height
}

type nodeJSON struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Geometry geometryJSON      `json:"geometry"`
	Children []nodeJSON        `json:"children,omitempty"`
}

type geometryJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func treeJSON(n *elemtree.Node) nodeJSON {
	c := n.Content().(elemtree.Content)
	g := n.Geometry()
	j := nodeJSON{
		Tag:      c.Tag,
		Geometry: geometryJSON{g.Origin.X, g.Origin.Y, g.Size.Width, g.Size.Height},
	}
	if len(c.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(c.Attrs))
		for _, a := range c.Attrs {
			j.Attrs[a.Name] = a.Value
		}
	}
	for _, child := range n.Children() {
		j.Children = append(j.Children, treeJSON(child))
	}
	return j
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

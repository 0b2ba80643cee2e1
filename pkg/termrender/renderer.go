// Package termrender renders views onto a grid of terminal cells.
package termrender

import (
	"sync"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[termrender] ")

// Renderer is a [fiber.Renderer] with dynamic layout. It keeps the elements
// in an [elemtree.Tree] and draws them on demand.
//
// Scheduled functions are queued and run by Drain.
type Renderer struct {
	tree *elemtree.Tree
	size fiber.Size

	mu    sync.Mutex
	queue []func()
}

// New creates a Renderer for a screen of the given size in cells.
func New(width, height int) *Renderer {
	return &Renderer{
		tree: elemtree.New(),
		size: fiber.Size{Width: float64(width), Height: float64(height)},
	}
}

// Tree returns the element tree of the renderer.
func (r *Renderer) Tree() *elemtree.Tree { return r.tree }

func (r *Renderer) IsPrimitive(v fiber.View) bool { return elemtree.IsPrimitive(v) }

func (r *Renderer) MakeContent(v fiber.View) fiber.Content { return elemtree.ContentOf(v) }

func (r *Renderer) MakeElement(c fiber.Content) fiber.Element {
	return elemtree.NewNode(c.(elemtree.Content))
}

func (r *Renderer) RootElement() fiber.Element { return r.tree.Root }

func (r *Renderer) SceneSize() fiber.Size { return r.size }

func (r *Renderer) DynamicLayout() bool { return true }

func (r *Renderer) Commit(batch []fiber.Mutation) {
	r.tree.Apply(batch)
	logger.Printf("applied %d mutations", len(batch))
}

func (r *Renderer) Schedule(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, f)
}

// Drain runs scheduled functions, including those scheduled while draining,
// until there are none left.
func (r *Renderer) Drain() {
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.mu.Unlock()
			return
		}
		f := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		f()
	}
}

// Render draws the element tree on a new Canvas the size of the screen.
func (r *Renderer) Render() *Canvas {
	c := NewCanvas(int(r.size.Width), int(r.size.Height))
	Draw(c, r.tree.Root)
	return c
}

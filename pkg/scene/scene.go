// Package scene decodes view trees from YAML scene documents.
//
// A scene is a mapping with a single key that names the kind of view; the
// value describes the view:
//
//	vstack:
//	  spacing: 1
//	  children:
//	    - text: hello
//	    - button: {label: ok}
//	    - foreach:
//	        items: [a, b]
//	        row: {text: "item {}"}
//
// Inside the row of a foreach, "{}" in text, labels and keys is replaced by
// the item.
package scene

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/view"
)

// Error is an error in a scene document that is not a YAML syntax error.
type Error struct {
	Line, Column int
	Msg          string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

func errorf(n *yaml.Node, format string, args ...any) *Error {
	return &Error{n.Line, n.Column, fmt.Sprintf(format, args...)}
}

// Parse decodes a scene document.
func Parse(data []byte) (fiber.View, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &Error{1, 1, "empty scene"}
	}
	return decoder{}.view(doc.Content[0])
}

// Load reads and decodes the scene document at path.
func Load(path string) (fiber.View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// A decoder decodes views. Within the row of a foreach, item is the
// substitution for "{}".
type decoder struct {
	item    string
	hasItem bool
}

func (d decoder) subst(s string) string {
	if !d.hasItem {
		return s
	}
	return strings.ReplaceAll(s, "{}", d.item)
}

func (d decoder) view(n *yaml.Node) (fiber.View, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, errorf(n, "expected a mapping with one key naming a view")
	}
	key, value := n.Content[0], resolve(n.Content[1])
	switch key.Value {
	case "text":
		return d.text(value)
	case "button":
		return d.button(value)
	case "vstack":
		return d.vstack(value)
	case "hstack":
		return d.hstack(value)
	case "zstack":
		return d.zstack(value)
	case "group":
		return d.group(value)
	case "frame":
		return d.frame(value)
	case "padding":
		return d.padding(value)
	case "id":
		return d.id(value)
	case "foreach":
		return d.foreach(value)
	}
	return nil, errorf(key, "unknown view kind %q", key.Value)
}

func (d decoder) views(n *yaml.Node) ([]fiber.View, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list of views")
	}
	views := make([]fiber.View, len(n.Content))
	for i, c := range n.Content {
		v, err := d.view(c)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

func (d decoder) text(n *yaml.Node) (fiber.View, error) {
	s, err := scalar(n, "text")
	if err != nil {
		return nil, err
	}
	return view.Text(d.subst(s)), nil
}

func (d decoder) button(n *yaml.Node) (fiber.View, error) {
	if n.Kind == yaml.ScalarNode {
		return view.Button{Label: d.subst(n.Value)}, nil
	}
	var b view.Button
	err := fields(n, map[string]func(*yaml.Node) error{
		"label": func(v *yaml.Node) error {
			s, err := scalar(v, "label")
			b.Label = d.subst(s)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Fields shared by the stacks.
type stackFields struct {
	spacing   float64
	alignment view.Alignment
	children  []fiber.View
}

func (d decoder) stack(n *yaml.Node, spacing bool) (stackFields, error) {
	var s stackFields
	if n.Kind == yaml.SequenceNode {
		children, err := d.views(n)
		s.children = children
		return s, err
	}
	handlers := map[string]func(*yaml.Node) error{
		"alignment": func(v *yaml.Node) (err error) {
			s.alignment, err = alignment(v)
			return err
		},
		"children": func(v *yaml.Node) (err error) {
			s.children, err = d.views(v)
			return err
		},
	}
	if spacing {
		handlers["spacing"] = func(v *yaml.Node) (err error) {
			s.spacing, err = number(v, "spacing")
			return err
		}
	}
	return s, fields(n, handlers)
}

func (d decoder) vstack(n *yaml.Node) (fiber.View, error) {
	s, err := d.stack(n, true)
	if err != nil {
		return nil, err
	}
	return view.VStack{Spacing: s.spacing, Alignment: s.alignment, Content: s.children}, nil
}

func (d decoder) hstack(n *yaml.Node) (fiber.View, error) {
	s, err := d.stack(n, true)
	if err != nil {
		return nil, err
	}
	return view.HStack{Spacing: s.spacing, Alignment: s.alignment, Content: s.children}, nil
}

func (d decoder) zstack(n *yaml.Node) (fiber.View, error) {
	s, err := d.stack(n, false)
	if err != nil {
		return nil, err
	}
	return view.ZStack{Alignment: s.alignment, Content: s.children}, nil
}

func (d decoder) group(n *yaml.Node) (fiber.View, error) {
	views, err := d.views(n)
	if err != nil {
		return nil, err
	}
	return view.Group(views), nil
}

func (d decoder) child(v *yaml.Node, dst *fiber.View) error {
	c, err := d.view(v)
	*dst = c
	return err
}

func (d decoder) frame(n *yaml.Node) (fiber.View, error) {
	var f view.Frame
	err := fields(n, map[string]func(*yaml.Node) error{
		"width": func(v *yaml.Node) (err error) {
			f.Width, err = number(v, "width")
			return err
		},
		"height": func(v *yaml.Node) (err error) {
			f.Height, err = number(v, "height")
			return err
		},
		"alignment": func(v *yaml.Node) (err error) {
			f.Alignment, err = alignment(v)
			return err
		},
		"child": func(v *yaml.Node) error { return d.child(v, &f.Content) },
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d decoder) padding(n *yaml.Node) (fiber.View, error) {
	p := view.Padding{Amount: 1}
	err := fields(n, map[string]func(*yaml.Node) error{
		"amount": func(v *yaml.Node) (err error) {
			p.Amount, err = number(v, "amount")
			return err
		},
		"child": func(v *yaml.Node) error { return d.child(v, &p.Content) },
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (d decoder) id(n *yaml.Node) (fiber.View, error) {
	var id view.ID
	hasKey := false
	err := fields(n, map[string]func(*yaml.Node) error{
		"key": func(v *yaml.Node) error {
			s, err := scalar(v, "key")
			id.Key, hasKey = d.subst(s), true
			return err
		},
		"child": func(v *yaml.Node) error { return d.child(v, &id.Content) },
	})
	if err == nil && !hasKey {
		err = errorf(n, "id without key")
	}
	if err != nil {
		return nil, err
	}
	return id, nil
}

func (d decoder) foreach(n *yaml.Node) (fiber.View, error) {
	var items []string
	var row *yaml.Node
	err := fields(n, map[string]func(*yaml.Node) error{
		"items": func(v *yaml.Node) error {
			if v.Kind != yaml.SequenceNode {
				return errorf(v, "items: expected a list")
			}
			for _, c := range v.Content {
				s, err := scalar(c, "item")
				if err != nil {
					return err
				}
				items = append(items, s)
			}
			return nil
		},
		"row": func(v *yaml.Node) error {
			row = v
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errorf(n, "foreach without row")
	}
	// Rows are decoded up front so that errors surface here.
	rows := make(map[string]fiber.View, len(items))
	for _, item := range items {
		if _, dup := rows[item]; dup {
			return nil, errorf(n, "duplicate item %q", item)
		}
		v, err := decoder{item, true}.view(row)
		if err != nil {
			return nil, err
		}
		rows[item] = v
	}
	return view.ForEach[string]{
		Data: items,
		ID:   func(s string) any { return s },
		Row:  func(s string) fiber.View { return rows[s] },
	}, nil
}

// Calls the handler for each field of a mapping.
func fields(n *yaml.Node, handlers map[string]func(*yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return errorf(n, "expected a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], resolve(n.Content[i+1])
		h, ok := handlers[key.Value]
		if !ok {
			return errorf(key, "unknown field %q", key.Value)
		}
		if err := h(value); err != nil {
			return err
		}
	}
	return nil
}

func scalar(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", errorf(n, "%s: expected a string", what)
	}
	return n.Value, nil
}

func number(n *yaml.Node, what string) (float64, error) {
	s, err := scalar(n, what)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errorf(n, "%s: bad number %q", what, s)
	}
	if f < 0 {
		return 0, errorf(n, "%s: negative number %v", what, f)
	}
	return f, nil
}

func alignment(n *yaml.Node) (view.Alignment, error) {
	s, err := scalar(n, "alignment")
	if err != nil {
		return 0, err
	}
	a, ok := view.ParseAlignment(s)
	if !ok {
		return 0, errorf(n, "alignment: bad alignment %q", s)
	}
	return a, nil
}

// Follows aliases.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

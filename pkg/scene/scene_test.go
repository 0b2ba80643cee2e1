package scene_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.arbor.sh/pkg/elemtree"
	"src.arbor.sh/pkg/fiber"
	"src.arbor.sh/pkg/fiber/fibertest"
	"src.arbor.sh/pkg/scene"
	"src.arbor.sh/pkg/view"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want fiber.View
	}{
		{"text", `text: hello`, view.Text("hello")},
		{"button shorthand", `button: ok`, view.Button{Label: "ok"}},
		{"button", `button: {label: ok}`, view.Button{Label: "ok"}},
		{
			"vstack",
			"vstack:\n  spacing: 1\n  alignment: leading\n  children:\n    - text: a\n    - text: b\n",
			view.VStack{Spacing: 1, Alignment: view.Leading, Content: []fiber.View{view.Text("a"), view.Text("b")}},
		},
		{
			"hstack shorthand",
			"hstack: [{text: a}]",
			view.HStack{Content: []fiber.View{view.Text("a")}},
		},
		{
			"zstack",
			"zstack: {alignment: trailing, children: [{text: a}]}",
			view.ZStack{Alignment: view.Trailing, Content: []fiber.View{view.Text("a")}},
		},
		{"group", "group: [{text: a}, {text: b}]", view.Group{view.Text("a"), view.Text("b")}},
		{
			"frame",
			"frame: {width: 10, height: 2.5, child: {text: a}}",
			view.Frame{Width: 10, Height: 2.5, Content: view.Text("a")},
		},
		{"padding default", "padding: {child: {text: a}}", view.Padding{Amount: 1, Content: view.Text("a")}},
		{"padding", "padding: {amount: 0, child: {text: a}}", view.Padding{Content: view.Text("a")}},
		{"id", "id: {key: k, child: {text: a}}", view.ID{Key: "k", Content: view.Text("a")}},
		{"alias", "group: [&a {text: x}, *a]", view.Group{view.Text("x"), view.Text("x")}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := scene.Parse([]byte(test.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ForEach(t *testing.T) {
	v, err := scene.Parse([]byte(`
vstack:
  children:
    - foreach:
        items: [a, b]
        row:
          id: {key: "row-{}", child: {text: "item {}"}}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h := fibertest.Mount(v)
	want := []any{"root", []any{"vstack", []any{"text"}, []any{"text"}}}
	if diff := cmp.Diff(want, elemtree.Shape(h.Tree.Root)); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
	el := h.ElementByID("row-b")
	if el == nil {
		t.Fatalf("no element for row-b")
	}
	if text, _ := el.Attr("text"); text != "item b" {
		t.Errorf("text of row b = %q", text)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *scene.Error
	}{
		{"empty", "", &scene.Error{1, 1, "empty scene"}},
		{"not a mapping", "- text: a", &scene.Error{1, 1, "expected a mapping with one key naming a view"}},
		{"unknown kind", "blah: x", &scene.Error{1, 1, `unknown view kind "blah"`}},
		{"text not a string", "text: [a]", &scene.Error{1, 7, "text: expected a string"}},
		{"bad number", "vstack:\n  spacing: x\n", &scene.Error{2, 12, `spacing: bad number "x"`}},
		{"negative number", "frame: {width: -1}", &scene.Error{1, 16, "width: negative number -1"}},
		{"nested unknown kind", "vstack:\n  children:\n    - nope: 1\n", &scene.Error{3, 7, `unknown view kind "nope"`}},
		{"unknown field", "padding: {size: 1}", &scene.Error{1, 11, `unknown field "size"`}},
		{"bad alignment", "zstack: {alignment: up}", &scene.Error{1, 21, `alignment: bad alignment "up"`}},
		{"id without key", "id: {child: {text: a}}", &scene.Error{1, 5, "id without key"}},
		{"duplicate item", "foreach:\n  items: [a, a]\n  row: {text: x}\n", &scene.Error{2, 3, `duplicate item "a"`}},
		{"foreach without row", "foreach: {items: [a]}", &scene.Error{1, 10, "foreach without row"}},
		{"children not a list", "vstack: {children: 3}", &scene.Error{1, 20, "expected a list of views"}},
		{"bad child", "padding: {child: {text: [x]}}", &scene.Error{1, 25, "text: expected a string"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := scene.Parse([]byte(test.src))
			if v != nil {
				t.Errorf("got view %#v along with the error, want nil", v)
			}
			var got *scene.Error
			if !errors.As(err, &got) {
				t.Fatalf("got error %v, want *scene.Error", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := scene.Parse([]byte("text: ["))
	var serr *scene.Error
	if err == nil || errors.As(err, &serr) {
		t.Errorf("got error %v, want a YAML syntax error", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(good, []byte("text: hi"), 0o644)
	os.WriteFile(bad, []byte("blah: x"), 0o644)

	v, err := scene.Load(good)
	if err != nil || v != view.Text("hi") {
		t.Errorf("Load(good) = %v, %v", v, err)
	}

	_, err = scene.Load(bad)
	var serr *scene.Error
	if !errors.As(err, &serr) {
		t.Errorf("Load(bad) error %v is not a *scene.Error", err)
	}
	if want := bad + `: 1:1: unknown view kind "blah"`; err.Error() != want {
		t.Errorf("Load(bad) error = %q, want %q", err, want)
	}

	if _, err := scene.Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want not exist", err)
	}
}

func TestLoad_Example(t *testing.T) {
	if _, err := scene.Load(filepath.Join("..", "..", "examples", "hello.yaml")); err != nil {
		t.Errorf("Load(examples/hello.yaml): %v", err)
	}
}

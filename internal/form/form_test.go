package form

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/steipete/memegrep/internal/model"
	"github.com/steipete/memegrep/internal/options"
)

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestAddAndRemove(t *testing.T) {
	var f Form
	a, b := writeFile(t, "a.png"), writeFile(t, "b.png")
	if err := f.AddImage(a); err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	if err := f.AddImage(b); err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	f.AddText("top")
	f.AddText("")
	f.AddText("bottom")

	if !f.Remove(TextList, 1) || f.Remove(TextList, 5) || f.Remove(ImageList, -1) {
		t.Fatalf("unexpected Remove results")
	}
	if !f.Remove(ImageList, 0) {
		t.Fatalf("expected image removal")
	}
	if diff := cmp.Diff([]string{b}, f.Images); diff != "" {
		t.Fatalf("images (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"top", "bottom"}, f.Texts); diff != "" {
		t.Fatalf("texts (-want +got):\n%s", diff)
	}
	if f.Len(ImageList) != 1 || f.Len(TextList) != 2 {
		t.Fatalf("unexpected lengths")
	}
}

func TestAddImageRejectsBadPaths(t *testing.T) {
	var f Form
	if err := f.AddImage("  "); !errors.Is(err, errEmptyPath) {
		t.Fatalf("expected errEmptyPath, got %v", err)
	}
	if err := f.AddImage(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
	if err := f.AddImage(t.TempDir()); !errors.Is(err, errNotFile) {
		t.Fatalf("expected errNotFile, got %v", err)
	}
	if len(f.Images) != 0 {
		t.Fatalf("nothing should be added")
	}
}

func TestRequest(t *testing.T) {
	f := Form{Texts: []string{"hi"}, Options: "{circle: true, name: 'x'}"}
	req, err := f.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	want := model.Request{Texts: []string{"hi"}, Args: map[string]any{"circle": true, "name": "x"}}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("request (-want +got):\n%s", diff)
	}

	req.Texts[0] = "changed"
	if f.Texts[0] != "hi" {
		t.Fatalf("request must not alias the form")
	}
}

func TestRequestBadOptions(t *testing.T) {
	f := Form{Options: "{circle: }}"}
	_, err := f.Request()
	var pe *options.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestPrefillAndStatus(t *testing.T) {
	tpl := model.Template{Key: "petpet", Params: model.Params{
		MinImages: 1, MaxImages: 1, MinTexts: 0, MaxTexts: 2,
		DefaultTexts: []string{"a", "b"},
	}}
	f := Form{Texts: []string{"old"}}
	f.Prefill(tpl)
	if diff := cmp.Diff([]string{"a", "b"}, f.Texts); diff != "" {
		t.Fatalf("texts (-want +got):\n%s", diff)
	}
	tpl.Params.DefaultTexts[0] = "z"
	if f.Texts[0] != "a" {
		t.Fatalf("prefill must copy default texts")
	}
	if got := f.Status(tpl); got != "images 0/1  texts 2/0 ~ 2" {
		t.Fatalf("unexpected status %q", got)
	}
	f.Reset()
	if f.Len(TextList) != 0 || f.Options != "" {
		t.Fatalf("reset must clear the form")
	}
}

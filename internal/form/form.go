// Package form holds the inputs collected for one render: image paths, texts
// and the raw options string.
package form

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/model"
	"github.com/steipete/memegrep/internal/options"
)

var (
	errEmptyPath = errors.New("empty image path")
	errNotFile   = errors.New("not a regular file")
)

// List names one of the two ordered lists in a Form.
type List int

const (
	ImageList List = iota
	TextList
)

func (l List) String() string {
	if l == TextList {
		return "texts"
	}
	return "images"
}

type Form struct {
	Images  []string
	Texts   []string
	Options string
}

// AddImage appends path after checking it names a readable regular file.
func (f *Form) AddImage(path string) error {
	if strings.TrimSpace(path) == "" {
		return errEmptyPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("add image: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("add image %s: %w", path, errNotFile)
	}
	f.Images = append(f.Images, path)
	return nil
}

// AddText appends text. Empty texts are allowed; some templates render them.
func (f *Form) AddText(text string) {
	f.Texts = append(f.Texts, text)
}

// Remove deletes the item at index i of list l. Out-of-range indexes are
// ignored and report false.
func (f *Form) Remove(l List, i int) bool {
	items := f.items(l)
	if i < 0 || i >= len(*items) {
		return false
	}
	*items = append((*items)[:i], (*items)[i+1:]...)
	return true
}

func (f *Form) Len(l List) int {
	return len(*f.items(l))
}

func (f *Form) items(l List) *[]string {
	if l == TextList {
		return &f.Texts
	}
	return &f.Images
}

// Prefill replaces the texts with the template's default texts.
func (f *Form) Prefill(tpl model.Template) {
	f.Texts = append([]string(nil), tpl.Params.DefaultTexts...)
}

// Reset clears every input.
func (f *Form) Reset() {
	*f = Form{}
}

// Request builds a fresh request. An invalid options string yields an
// *options.ParseError and no request.
func (f *Form) Request() (model.Request, error) {
	args, err := options.Parse(f.Options)
	if err != nil {
		return model.Request{}, err
	}
	return model.Request{
		Images: append([]string(nil), f.Images...),
		Texts:  append([]string(nil), f.Texts...),
		Args:   args,
	}, nil
}

// Status summarises how the collected inputs compare to what tpl expects,
// e.g. "images 1/2 ~ 3  texts 0/1".
func (f *Form) Status(tpl model.Template) string {
	return fmt.Sprintf("images %d/%s  texts %d/%s",
		len(f.Images), catalog.ImageCount(tpl), len(f.Texts), catalog.TextCount(tpl))
}

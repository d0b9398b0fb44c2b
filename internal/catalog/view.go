package catalog

import (
	"strings"

	"github.com/steipete/memegrep/internal/model"
)

// View keeps the full template set and the currently visible subset. The full
// set is never modified by filtering.
type View struct {
	all     []model.Template
	visible []model.Template
	query   string
}

func NewView(tpls []model.Template) *View {
	all := make([]model.Template, len(tpls))
	copy(all, tpls)
	sortByKey(all)
	return &View{all: all, visible: all}
}

func (v *View) All() []model.Template     { return v.all }
func (v *View) Visible() []model.Template { return v.visible }
func (v *View) Query() string             { return v.query }
func (v *View) Len() int                  { return len(v.visible) }

func (v *View) At(i int) (model.Template, bool) {
	if i < 0 || i >= len(v.visible) {
		return model.Template{}, false
	}
	return v.visible[i], true
}

// Filter shows the templates whose key or keywords contain query, ignoring
// case. An empty query restores the full set.
func (v *View) Filter(query string) {
	v.query = query
	needle := strings.ToLower(query)
	if needle == "" {
		v.visible = v.all
		return
	}
	out := make([]model.Template, 0, len(v.all))
	for _, tpl := range v.all {
		if Matches(tpl, needle) {
			out = append(out, tpl)
		}
	}
	v.visible = out
}

// IndexOf returns the visible position of key, or -1.
func (v *View) IndexOf(key string) int {
	for i, tpl := range v.visible {
		if tpl.Key == key {
			return i
		}
	}
	return -1
}

func Matches(tpl model.Template, needle string) bool {
	return strings.Contains(SearchText(tpl), strings.ToLower(needle))
}

// SearchText is what the filter looks at: the key followed by the keywords.
func SearchText(tpl model.Template) string {
	return strings.ToLower(tpl.Key + " " + KeywordLabel(tpl))
}

func KeywordLabel(tpl model.Template) string {
	return strings.Join(tpl.Keywords, "/")
}

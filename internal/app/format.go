package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/model"
)

var isTerminalWriter = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type listEntry struct {
	Key      string   `json:"key"`
	Keywords []string `json:"keywords"`
	Images   string   `json:"images"`
	Texts    string   `json:"texts"`
}

type infoEntry struct {
	model.Template
	Images  string   `json:"images"`
	Texts   string   `json:"texts"`
	Lines   []string `json:"description"`
	Preview string   `json:"preview,omitempty"`
}

func listEntries(tpls []model.Template) []listEntry {
	out := make([]listEntry, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, listEntry{
			Key:      tpl.Key,
			Keywords: tpl.Keywords,
			Images:   catalog.ImageCount(tpl),
			Texts:    catalog.TextCount(tpl),
		})
	}
	return out
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderList prints one template per line with aligned columns. Keywords may
// be CJK, so widths are measured in terminal cells.
func renderList(out *bufio.Writer, entries []listEntry, useColor bool) {
	keyWidth, imgWidth, txtWidth := 0, 0, 0
	for _, e := range entries {
		keyWidth = maxInt(keyWidth, runewidth.StringWidth(e.Key))
		imgWidth = maxInt(imgWidth, runewidth.StringWidth(e.Images))
		txtWidth = maxInt(txtWidth, runewidth.StringWidth(e.Texts))
	}
	for _, e := range entries {
		key := runewidth.FillRight(e.Key, keyWidth)
		if useColor {
			key = styleBold + key + styleReset
		}
		_, _ = fmt.Fprintf(out, "%s  %s  %s  %s\n",
			key,
			runewidth.FillRight(e.Images, imgWidth),
			runewidth.FillRight(e.Texts, txtWidth),
			strings.Join(e.Keywords, "/"))
	}
}

func renderInfo(out *bufio.Writer, e infoEntry, useColor bool) {
	for i, line := range e.Lines {
		if i == 0 && useColor {
			line = styleBold + line + styleReset
		}
		_, _ = fmt.Fprintln(out, line)
	}
	_, _ = fmt.Fprintln(out, "Images: "+e.Images)
	_, _ = fmt.Fprintln(out, "Texts: "+e.Texts)
	preview := e.Preview
	if preview == "" {
		preview = placeholderNoPreview
	}
	_, _ = fmt.Fprintln(out, "Preview: "+preview)
}

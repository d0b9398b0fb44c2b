package app

import (
	"bufio"
	"fmt"
	"math"
	"strings"

	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/model"
	"github.com/steipete/memegrep/internal/termimg"
)

const (
	styleBold  = "\x1b[1m"
	styleDim   = "\x1b[90m"
	styleRed   = "\x1b[31m"
	styleReset = "\x1b[0m"
)

func render(state *appState, out *bufio.Writer, rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	termimg.Delete(out, state.protocol, state.preview.id)
	termimg.Delete(out, state.protocol, state.output.id)

	if state.mode == modeResult {
		renderResult(state, out, rows, cols)
	} else {
		renderMain(state, out, rows, cols)
	}

	if state.dialog != nil {
		renderDialog(state, out, rows, cols)
		return
	}
	drawSlots(state, out, true)
}

func renderMain(state *appState, out *bufio.Writer, rows, cols int) {
	showRight := cols >= 70 && rows >= 12
	leftWidth := cols
	if showRight {
		leftWidth = maxInt(24, cols/3)
		if leftWidth > cols-2 {
			leftWidth = cols - 2
		}
	}

	row := 1
	writeLineAt(out, row, fmt.Sprintf("%s · meme templates (%s)", model.AppName, state.protocol), leftWidth)
	row++
	query := state.view.Query()
	if state.mode == modeFilter {
		query += "▏"
	}
	writeLineAt(out, row, fmt.Sprintf("Filter [%s]: %s", state.mode, query), leftWidth)
	row++
	writeStyledAt(out, row, styleDim, hintsFor(state.mode), leftWidth)
	row++

	h := listHeight(state)
	for i := 0; i < h; i++ {
		idx := state.scroll + i
		tpl, ok := state.view.At(idx)
		if !ok {
			writeLineAt(out, row+i, "", leftWidth)
			continue
		}
		prefix := "  "
		if idx == state.selected {
			prefix = "> "
		}
		writeLineAt(out, row+i, prefix+listLabel(tpl), leftWidth)
	}

	status := state.status
	if status == "" {
		status = fmt.Sprintf("%d of %d templates", state.view.Len(), len(state.view.All()))
	}
	writeLineAt(out, rows, status, cols)

	if !showRight {
		state.preview.place = termimg.Placement{}
		return
	}

	col := leftWidth + 2
	width := cols - col + 1
	lines := detailLines(state, width)
	if state.mode == modeForm {
		lines = formLines(state, width)
	}
	// Keep at least a few rows for the preview below the text.
	maxText := maxInt(1, rows-4-6)
	if len(lines) > maxText {
		lines = lines[:maxText]
	}
	for i, line := range lines {
		writeAt(out, 4+i, col, line, width)
	}

	top := 4 + len(lines) + 1
	placeSlot(state.preview, out, top, col, width, rows-1-top)
}

func renderResult(state *appState, out *bufio.Writer, rows, cols int) {
	res := state.result
	title := "Result"
	if res != nil {
		title = fmt.Sprintf("Result · %s", res.key)
	}
	writeStyledAt(out, 1, styleBold, title, cols)
	writeStyledAt(out, 2, styleDim, hintsFor(modeResult), cols)
	for r := 3; r < rows; r++ {
		writeLineAt(out, r, "", cols)
	}
	writeLineAt(out, rows, state.status, cols)
	state.preview.place = termimg.Placement{}
	placeSlot(state.output, out, 4, 2, cols-2, rows-5)
}

func hintsFor(m mode) string {
	switch m {
	case modeFilter:
		return "type to filter  ↑↓ select  enter done  esc clear"
	case modeForm:
		return "tab field  a add  x remove  o options  d defaults  g generate  esc back"
	case modeResult:
		return "s save  c copy  esc close"
	default:
		return "/ filter  ↑↓ select  enter form  q quit"
	}
}

func listLabel(tpl model.Template) string {
	label := tpl.Key
	if kw := catalog.KeywordLabel(tpl); kw != "" {
		label += "  " + kw
	}
	return label
}

func detailLines(state *appState, width int) []string {
	if state.detail == nil {
		return nil
	}
	tpl := *state.detail
	lines := []string{
		"Images: " + catalog.ImageCount(tpl),
		"Texts: " + catalog.TextCount(tpl),
		"",
	}
	for _, line := range catalog.Describe(tpl) {
		lines = append(lines, wrapWidth(line, width)...)
	}
	return lines
}

func formLines(state *appState, width int) []string {
	tpl := state.detail
	if tpl == nil {
		return nil
	}
	marker := func(f formField) string {
		if state.field == f {
			return "▸ "
		}
		return "  "
	}
	lines := []string{
		"Generate " + tpl.Key,
		state.form.Status(*tpl),
		"",
		marker(fieldImages) + "Images:",
	}
	lines = append(lines, listItems(state, state.form.Images, fieldImages, "a adds an image")...)
	lines = append(lines, marker(fieldTexts)+"Texts:")
	lines = append(lines, listItems(state, state.form.Texts, fieldTexts, "a adds a text")...)
	opts := state.form.Options
	if strings.TrimSpace(opts) == "" {
		opts = "{}"
	}
	lines = append(lines, marker(fieldOptions)+"Options: "+opts)
	return lines
}

func listItems(state *appState, items []string, field formField, empty string) []string {
	if len(items) == 0 {
		return []string{"    (" + empty + ")"}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		prefix := "    "
		if state.field == field && state.formCursor == i {
			prefix = "  > "
		}
		out = append(out, fmt.Sprintf("%s%d. %q", prefix, i+1, item))
	}
	return out
}

// placeSlot fits the slot's current frame into the given cell area, or
// writes its placeholder there.
func placeSlot(sl *slot, out *bufio.Writer, row, col, availCols, availRows int) {
	sl.place = termimg.Placement{}
	if availCols <= 0 || availRows <= 0 {
		return
	}
	if !sl.shown || sl.frame.Image == nil {
		if sl.placeholder != "" {
			writeAt(out, row, col, "[ "+sl.placeholder+" ]", availCols)
		}
		return
	}
	b := sl.frame.Image.Bounds()
	maxCols := int(math.Ceil(float64(b.Dx()) / float64(cellPixelWidth())))
	c, r := fitCells(minInt(availCols, maxInt(1, maxCols)), availRows, b.Dx(), b.Dy())
	sl.place = termimg.Placement{ID: sl.id, Row: row, Col: col, Cols: c, Rows: r}
	sl.dirty = true
}

// fitCells picks the largest cols×rows area inside the available one that
// keeps a w×h image's aspect ratio.
func fitCells(availCols, availRows, w, h int) (int, int) {
	if availCols <= 0 || availRows <= 0 {
		return 0, 0
	}
	if w <= 0 || h <= 0 {
		return availCols, availRows
	}
	aspect := cellAspectRatio()
	targetCols := availCols
	targetRows := int(math.Round(float64(targetCols) * aspect * float64(h) / float64(w)))
	if targetRows > availRows {
		targetRows = availRows
		targetCols = int(math.Round(float64(targetRows) / aspect * float64(w) / float64(h)))
	}
	if targetCols < 1 {
		targetCols = 1
	}
	if targetRows < 1 {
		targetRows = 1
	}
	return minInt(targetCols, availCols), minInt(targetRows, availRows)
}

// drawSlots sends the visible slots' frames. Without force only slots whose
// frame changed since the last draw are sent.
func drawSlots(state *appState, out *bufio.Writer, force bool) {
	if state.dialog != nil || !state.protocol.Supported() {
		return
	}
	visible := state.preview
	if state.mode == modeResult {
		visible = state.output
	}
	if !visible.shown || visible.place.Cols == 0 {
		return
	}
	if !force && !visible.dirty {
		return
	}
	if !force {
		termimg.Delete(out, state.protocol, visible.id)
	}
	if err := termimg.Draw(out, state.protocol, visible.place, visible.frame); err != nil {
		state.logger.Debug("draw frame failed", "slot", visible.id, "err", err)
	}
	visible.dirty = false
}

func renderDialog(state *appState, out *bufio.Writer, rows, cols int) {
	d := state.dialog
	longest := maxInt(textWidth(d.title), textWidth(d.body)) + 4
	width := minInt(maxInt(1, cols-4), clampInt(24, 72, longest))
	inner := maxInt(1, width-4)
	body := wrapWidth(d.body, inner)
	height := len(body) + 4
	top := maxInt(1, (rows-height)/2+1)
	left := maxInt(1, (cols-width)/2+1)

	title := " " + truncateWidth(d.title, maxInt(0, width-6)) + " "
	color := styleBold
	if d.isError {
		color = styleBold + styleRed
	}
	border := strings.Repeat("─", maxInt(0, width-2-textWidth(title)-1))
	moveCursor(out, top, left)
	_, _ = fmt.Fprint(out, "┌─"+color+title+styleReset+border+"┐")

	lines := append([]string{""}, body...)
	lines = append(lines, "")
	for i, line := range lines {
		moveCursor(out, top+1+i, left)
		_, _ = fmt.Fprint(out, "│ "+padWidth(line, inner)+" │")
	}
	hint := " any key "
	moveCursor(out, top+1+len(lines), left)
	_, _ = fmt.Fprint(out, "└"+strings.Repeat("─", maxInt(0, width-2-textWidth(hint)))+styleDim+hint+styleReset+"┘")
}

func writeLineAt(out *bufio.Writer, row int, text string, width int) {
	moveCursor(out, row, 1)
	if width > 0 {
		_, _ = fmt.Fprint(out, truncateWidth(text, width))
	}
	_, _ = fmt.Fprint(out, "\x1b[K")
}

func writeStyledAt(out *bufio.Writer, row int, style, text string, width int) {
	moveCursor(out, row, 1)
	if width > 0 {
		_, _ = fmt.Fprint(out, style+truncateWidth(text, width)+styleReset)
	}
	_, _ = fmt.Fprint(out, "\x1b[K")
}

func writeAt(out *bufio.Writer, row, col int, text string, width int) {
	moveCursor(out, row, col)
	_, _ = fmt.Fprint(out, truncateWidth(text, width))
	_, _ = fmt.Fprint(out, "\x1b[K")
}

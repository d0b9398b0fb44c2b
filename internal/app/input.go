package app

import (
	"bufio"
	"unicode/utf8"
)

// handleInput applies one key press. It reports true when the UI should
// exit.
func handleInput(state *appState, ev inputEvent, out *bufio.Writer) bool {
	if ev.kind == keyCtrlC {
		return true
	}
	if ev.kind == keyUnknown {
		return false
	}
	if state.dialog != nil {
		state.dialog = nil
		state.renderDirty = true
		return false
	}

	switch state.mode {
	case modeFilter:
		handleFilterKey(state, ev)
	case modeBrowse:
		return handleBrowseKey(state, ev)
	case modeForm:
		handleFormKey(state, ev, out)
	case modeResult:
		handleResultKey(state, ev)
	}
	return false
}

func handleBrowseKey(state *appState, ev inputEvent) bool {
	switch ev.kind {
	case keyRune:
		switch ev.ch {
		case 'q':
			return true
		case '/':
			state.mode = modeFilter
			state.renderDirty = true
		case 'k':
			state.moveSelection(-1)
		case 'j':
			state.moveSelection(1)
		case 'g':
			state.openForm()
		}
	case keyUp:
		state.moveSelection(-1)
	case keyDown:
		state.moveSelection(1)
	case keyEnter:
		state.openForm()
	case keyEsc:
		if state.view.Query() != "" {
			state.applyFilter("")
		}
	}
	return false
}

// handleFilterKey edits the filter; the list follows every keystroke.
func handleFilterKey(state *appState, ev inputEvent) {
	query := state.view.Query()
	switch ev.kind {
	case keyRune:
		state.applyFilter(query + string(ev.ch))
	case keyBackspace:
		if query != "" {
			_, size := utf8.DecodeLastRuneInString(query)
			state.applyFilter(query[:len(query)-size])
		}
	case keyUp:
		state.moveSelection(-1)
	case keyDown:
		state.moveSelection(1)
	case keyEnter:
		state.mode = modeBrowse
		state.renderDirty = true
	case keyEsc:
		state.mode = modeBrowse
		state.applyFilter("")
	}
}

func handleFormKey(state *appState, ev inputEvent, out *bufio.Writer) {
	switch ev.kind {
	case keyEsc:
		state.mode = modeBrowse
		state.status = ""
		state.renderDirty = true
	case keyTab:
		state.cycleField()
	case keyUp:
		state.moveFormCursor(-1)
	case keyDown:
		state.moveFormCursor(1)
	case keyBackspace:
		state.removeFromForm()
	case keyEnter:
		state.generate(func() { flushScreen(state, out) })
	case keyRune:
		switch ev.ch {
		case 'a':
			state.addToForm()
		case 'x':
			state.removeFromForm()
		case 'o':
			state.editOptions()
		case 'd':
			state.prefillTexts()
		case 'g':
			state.generate(func() { flushScreen(state, out) })
		case 'k':
			state.moveFormCursor(-1)
		case 'j':
			state.moveFormCursor(1)
		}
	}
}

func handleResultKey(state *appState, ev inputEvent) {
	switch ev.kind {
	case keyEsc:
		state.closeResult()
	case keyRune:
		switch ev.ch {
		case 'q':
			state.closeResult()
		case 's':
			state.saveResult()
		case 'c':
			state.copyResult()
		}
	}
}

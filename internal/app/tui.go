package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/steipete/memegrep/internal/anim"
	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/clipboard"
	"github.com/steipete/memegrep/internal/imaging"
	"github.com/steipete/memegrep/internal/prompt"
	"github.com/steipete/memegrep/internal/termimg"
)

type inputEvent struct {
	kind keyKind
	ch   rune
}

type keyKind int

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyEsc
	keyTab
	keyUp
	keyDown
	keyCtrlC
	keyUnknown
)

var errNotTerminal = errors.New("stdin is not a tty")

// tuiSession is what the terminal UI needs besides the terminal itself.
type tuiSession struct {
	svc      *services
	view     *catalog.View
	query    string
	prompts  prompt.Driver
	copyFile func(context.Context, string) error
}

func runTUI(ctx context.Context, sess tuiSession) error {
	env := defaultEnvFn()
	return runTUIWith(ctx, env, sess)
}

func runTUIWith(ctx context.Context, env tuiEnv, sess tuiSession) error {
	if env.in == nil {
		env.in = os.Stdin
	}
	if env.out == nil {
		env.out = os.Stdout
	}
	if env.isTerminal == nil {
		env.isTerminal = term.IsTerminal
	}
	if env.makeRaw == nil {
		env.makeRaw = term.MakeRaw
	}
	if env.restore == nil {
		env.restore = term.Restore
	}
	if env.getSize == nil {
		env.getSize = term.GetSize
	}
	if env.fd == 0 {
		env.fd = int(os.Stdin.Fd())
	}
	if !env.isTerminal(env.fd) {
		return errNotTerminal
	}
	if sess.prompts == nil {
		sess.prompts = prompt.NewSurveyDriver()
	}
	if sess.copyFile == nil {
		sess.copyFile = clipboard.CopyFile
	}

	oldState, err := env.makeRaw(env.fd)
	if err != nil {
		return err
	}
	raw := true
	leaveRaw := func() {
		if raw && oldState != nil {
			_ = env.restore(env.fd, oldState)
		}
		raw = false
	}
	defer leaveRaw()

	out := bufio.NewWriter(env.out)
	state := newAppState(ctx, sess)
	enterScreen(out)
	defer func() {
		state.close()
		termimg.ClearAll(out, state.protocol)
		leaveScreen(out)
		_ = out.Flush()
	}()

	// Prompts take over the terminal: the screen and raw mode are handed
	// back for the duration of fn. The input reader holds no token here, so
	// it is not competing for stdin.
	state.suspend = func(fn func() error) error {
		termimg.ClearAll(out, state.protocol)
		leaveScreen(out)
		_ = out.Flush()
		leaveRaw()

		ferr := fn()

		if st, err := env.makeRaw(env.fd); err == nil {
			oldState = st
			raw = true
		} else {
			state.logger.Warn("re-enter raw mode", "err", err)
		}
		enterScreen(out)
		state.renderDirty = true
		return ferr
	}

	sigs := env.signalCh
	if sigs == nil {
		sigs = make(chan os.Signal)
	}

	inputCh := make(chan inputEvent, 1)
	wantCh := make(chan struct{}, 1)
	stopCh := make(chan struct{})
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		readInput(env.in, inputCh, wantCh, stopCh)
	}()
	defer close(stopCh)
	wantCh <- struct{}{}

	if cols, rows, err := env.getSize(env.fd); err == nil {
		state.lastRows = rows
		state.lastCols = cols
	}
	if sess.query != "" {
		state.applyFilter(sess.query)
	} else {
		state.selectIndex(0)
	}
	state.renderDirty = true

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		flushScreen(state, out)

		select {
		case <-sigs:
			return nil
		case <-readerDone:
			return nil
		case ev := <-inputCh:
			if handleInput(state, ev, out) {
				return nil
			}
			wantCh <- struct{}{}
		case tick := <-state.sched.C():
			state.handleTick(tick)
		case <-ticker.C:
		}

		if cols, rows, err := env.getSize(env.fd); err == nil {
			if rows != state.lastRows || cols != state.lastCols {
				state.lastRows = rows
				state.lastCols = cols
				ensureVisible(state)
				state.renderDirty = true
			}
		}
	}
}

func newAppState(ctx context.Context, sess tuiSession) *appState {
	svc := sess.svc
	sched := anim.NewScheduler()
	state := &appState{
		ctx:         ctx,
		svc:         svc,
		prompts:     sess.prompts,
		suspend:     func(fn func() error) error { return fn() },
		copyFile:    sess.copyFile,
		logger:      svc.logger,
		view:        sess.view,
		sched:       sched,
		protocol:    termimg.Resolve(svc.settings.Graphics),
		renderDirty: true,
	}
	if state.view == nil {
		state.view = catalog.NewView(nil)
	}
	state.preview = newSlot(1, svc.settings.PreviewBox, previewKey, sched)
	state.output = newSlot(2, svc.settings.ResultBox, resultKey, sched)
	return state
}

func newSlot(id uint32, box int, key string, sched *anim.Scheduler) *slot {
	sl := &slot{id: id, box: box}
	sl.player = anim.NewPlayer(key, sched, func(f imaging.Frame) {
		sl.frame = f
		sl.shown = true
		sl.dirty = true
	})
	return sl
}

// load replaces whatever the slot showed with media. The running loop is
// stopped before the new frames go in.
func (sl *slot) load(media imaging.Media) {
	sl.player.Stop()
	sl.media = media
	sl.placeholder = ""
	sl.shown = false
	sl.frame = imaging.Frame{}
	sl.player.Play(media.Frames())
}

// clear stops the slot and drops its frames, showing placeholder instead.
func (sl *slot) clear(placeholder string) {
	sl.player.Stop()
	sl.media = nil
	sl.frame = imaging.Frame{}
	sl.shown = false
	sl.dirty = true
	sl.placeholder = placeholder
}

// pause stops the loop but keeps the decoded media for resume.
func (sl *slot) pause() {
	sl.player.Stop()
	sl.shown = false
}

func (sl *slot) resume() {
	if sl.media != nil && !sl.player.Running() {
		sl.player.Play(sl.media.Frames())
	}
}

func (s *appState) handleTick(t anim.Tick) {
	if s.preview.player.Handle(t) {
		return
	}
	s.output.player.Handle(t)
}

func (s *appState) close() {
	s.preview.clear("")
	s.output.clear("")
	s.sched.Close()
	if s.tempDir != "" {
		_ = os.RemoveAll(s.tempDir)
		s.tempDir = ""
	}
}

func flushScreen(state *appState, out *bufio.Writer) {
	if state.renderDirty {
		render(state, out, state.lastRows, state.lastCols)
		state.renderDirty = false
	} else {
		drawSlots(state, out, false)
	}
	_ = out.Flush()
}

// readInput reads one key per token received on want, so the terminal is
// left alone while the UI runs a prompt.
func readInput(r io.Reader, ch chan<- inputEvent, want <-chan struct{}, stop <-chan struct{}) {
	reader := bufio.NewReader(r)
	for {
		select {
		case <-stop:
			return
		case <-want:
		}
		ev, err := readKey(reader)
		if err != nil {
			return
		}
		select {
		case ch <- ev:
		case <-stop:
			return
		}
	}
}

func readKey(reader *bufio.Reader) (inputEvent, error) {
	b, err := reader.ReadByte()
	if err != nil {
		return inputEvent{}, err
	}
	switch b {
	case 0x03:
		return inputEvent{kind: keyCtrlC}, nil
	case '\r', '\n':
		return inputEvent{kind: keyEnter}, nil
	case '\t':
		return inputEvent{kind: keyTab}, nil
	case 0x7f, 0x08:
		return inputEvent{kind: keyBackspace}, nil
	case 0x1b:
		// A lone Esc arrives on its own; escape sequences arrive in one read.
		if reader.Buffered() == 0 {
			return inputEvent{kind: keyEsc}, nil
		}
		next, err := reader.ReadByte()
		if err != nil {
			return inputEvent{kind: keyEsc}, nil
		}
		if next != '[' && next != 'O' {
			_ = reader.UnreadByte()
			return inputEvent{kind: keyEsc}, nil
		}
		third, err := reader.ReadByte()
		if err != nil {
			return inputEvent{kind: keyUnknown}, nil
		}
		switch third {
		case 'A':
			return inputEvent{kind: keyUp}, nil
		case 'B':
			return inputEvent{kind: keyDown}, nil
		}
		return inputEvent{kind: keyUnknown}, nil
	}
	if b >= 0x20 && b < 0x7f {
		return inputEvent{kind: keyRune, ch: rune(b)}, nil
	}
	if b >= 0x80 {
		_ = reader.UnreadByte()
		r, _, err := reader.ReadRune()
		if err != nil {
			return inputEvent{}, err
		}
		if r != utf8.RuneError {
			return inputEvent{kind: keyRune, ch: r}, nil
		}
	}
	return inputEvent{kind: keyUnknown}, nil
}

func moveCursor(out *bufio.Writer, row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	_, _ = fmt.Fprintf(out, "\x1b[%d;%dH", row, col)
}

func enterScreen(out *bufio.Writer) {
	_, _ = fmt.Fprint(out, "\x1b[?1049h\x1b[2J")
	hideCursor(out)
}

func leaveScreen(out *bufio.Writer) {
	showCursor(out)
	_, _ = fmt.Fprint(out, "\x1b[?1049l")
}

func hideCursor(out *bufio.Writer) {
	_, _ = fmt.Fprint(out, "\x1b[?25l")
}

func showCursor(out *bufio.Writer) {
	_, _ = fmt.Fprint(out, "\x1b[?25h")
}

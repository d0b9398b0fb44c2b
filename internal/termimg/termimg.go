// Package termimg draws frames inline in the terminal using the kitty
// graphics protocol, iTerm2 inline images or Unicode half blocks.
package termimg

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/steipete/memegrep/internal/imaging"
)

type Protocol string

const (
	None   Protocol = "none"
	Kitty  Protocol = "kitty"
	ITerm  Protocol = "iterm"
	Blocks Protocol = "blocks"
)

// Placement is where a frame goes, in 1-based terminal cells.
type Placement struct {
	ID   uint32
	Row  int
	Col  int
	Cols int
	Rows int
}

// Resolve maps a configured mode to a protocol; "auto" inspects the
// environment.
func Resolve(mode string) Protocol {
	switch Protocol(strings.ToLower(strings.TrimSpace(mode))) {
	case Kitty:
		return Kitty
	case ITerm:
		return ITerm
	case Blocks:
		return Blocks
	case None:
		return None
	}
	return Detect()
}

func Detect() Protocol {
	termProgram := strings.ToLower(os.Getenv("TERM_PROGRAM"))
	termEnv := strings.ToLower(os.Getenv("TERM"))
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		strings.Contains(termProgram, "ghostty") ||
		strings.Contains(termEnv, "xterm-kitty") ||
		strings.Contains(termEnv, "ghostty") {
		return Kitty
	}
	if termProgram == "iterm.app" || termProgram == "wezterm" {
		return ITerm
	}
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return Blocks
	}
	return None
}

// Draw renders f at pl. The cursor position is saved and restored.
func Draw(out *bufio.Writer, p Protocol, pl Placement, f imaging.Frame) error {
	if pl.Cols <= 0 || pl.Rows <= 0 {
		return nil
	}
	switch p {
	case Kitty:
		moveTo(out, pl.Row, pl.Col)
		return sendKitty(out, pl, f.PNG)
	case ITerm:
		moveTo(out, pl.Row, pl.Col)
		return sendITerm(out, pl, f.PNG)
	case Blocks:
		drawBlocks(out, pl, f.Image)
		return nil
	}
	return nil
}

// Delete removes a previously drawn image. Only kitty keeps images around.
func Delete(out *bufio.Writer, p Protocol, id uint32) {
	if p == Kitty && id != 0 {
		_, _ = fmt.Fprintf(out, "\x1b_Ga=d,d=I,i=%d,q=2\x1b\\", id)
	}
}

func ClearAll(out *bufio.Writer, p Protocol) {
	if p == Kitty {
		_, _ = fmt.Fprint(out, "\x1b_Ga=d\x1b\\")
	}
}

// Supported reports whether p can show images at all.
func (p Protocol) Supported() bool {
	return p == Kitty || p == ITerm || p == Blocks
}

func moveTo(out *bufio.Writer, row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	_, _ = fmt.Fprintf(out, "\x1b[%d;%dH", row, col)
}

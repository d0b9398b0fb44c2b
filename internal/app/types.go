package app

import (
	"context"
	"log/slog"

	"github.com/steipete/memegrep/internal/anim"
	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/config"
	"github.com/steipete/memegrep/internal/form"
	"github.com/steipete/memegrep/internal/imaging"
	"github.com/steipete/memegrep/internal/model"
	"github.com/steipete/memegrep/internal/prompt"
	"github.com/steipete/memegrep/internal/termimg"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeForm
	modeResult
)

func (m mode) String() string {
	switch m {
	case modeFilter:
		return "filter"
	case modeForm:
		return "form"
	case modeResult:
		return "result"
	default:
		return "browse"
	}
}

const (
	previewKey = "preview"
	resultKey  = "result"

	placeholderNoPreview = "no preview"
	placeholderFailed    = "preview failed"
)

// formField is the part of the form that has focus.
type formField int

const (
	fieldImages formField = iota
	fieldTexts
	fieldOptions
)

// slot is one image area on screen: the template preview or the render
// result. The player owns the frames being shown.
type slot struct {
	id          uint32
	box         int
	player      *anim.Player
	media       imaging.Media
	frame       imaging.Frame
	shown       bool
	dirty       bool
	placeholder string
	place       termimg.Placement
}

// dialog is a modal message drawn over everything else. Any key closes it.
type dialog struct {
	title   string
	body    string
	isError bool
}

type resultState struct {
	key       string
	data      []byte
	format    string
	savedPath string
	tempPath  string
}

type appState struct {
	ctx      context.Context
	svc      *services
	prompts  prompt.Driver
	suspend  func(func() error) error
	copyFile func(context.Context, string) error
	logger   *slog.Logger

	mode     mode
	view     *catalog.View
	selected int
	scroll   int
	detail   *model.Template
	status   string
	dialog   *dialog

	form       form.Form
	field      formField
	formCursor int

	result  *resultState
	tempDir string

	sched    *anim.Scheduler
	preview  *slot
	output   *slot
	protocol termimg.Protocol

	renderDirty bool
	lastRows    int
	lastCols    int
}

type services struct {
	registry catalog.Registry
	renderer catalog.Renderer
	assets   assetReader
	settings config.Settings
	logger   *slog.Logger
}

type assetReader interface {
	Find(key string) (string, error)
	Read(key string) ([]byte, string, error)
}

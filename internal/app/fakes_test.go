package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"testing"

	"github.com/steipete/memegrep/internal/assets"
	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/config"
	"github.com/steipete/memegrep/internal/engine"
	"github.com/steipete/memegrep/internal/model"
	"github.com/steipete/memegrep/internal/prompt"
	"github.com/steipete/memegrep/internal/testutil"
)

type fakeEngine struct {
	templates  map[string]model.Template
	missing    map[string]bool
	renderData []byte
	renderErr  error
	listErr    error
	renders    []model.Request
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		templates: map[string]model.Template{
			"petpet": {Key: "petpet", Keywords: []string{"摸", "pet"}, Params: model.Params{MinImages: 1, MaxImages: 1}},
			"always": {Key: "always", Keywords: []string{"always"}, Params: model.Params{
				MinImages: 1, MaxImages: 1, MinTexts: 0, MaxTexts: 1, DefaultTexts: []string{"要我一直"},
				Options: []model.ArgOption{{Names: []string{"--mode"}, Args: []model.OptArg{{Name: "mode", Value: "str"}}, HelpText: "loop or normal"}},
			}},
			"hello": {Key: "hello", Keywords: []string{"hi"}, Params: model.Params{MinTexts: 1, MaxTexts: 1}},
			"ghost": {Key: "ghost", Keywords: []string{"boo"}},
		},
		missing:    map[string]bool{"ghost": true},
		renderData: testutil.MakeGIF(4, 4, []int{2, 2, 2}),
	}
}

func (f *fakeEngine) List(context.Context) ([]model.Template, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Template, 0, len(f.templates))
	for _, tpl := range f.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}

func (f *fakeEngine) Get(_ context.Context, key string) (model.Template, error) {
	tpl, ok := f.templates[key]
	if !ok || f.missing[key] {
		return model.Template{}, fmt.Errorf("get %s: %w", key, model.ErrTemplateNotFound)
	}
	return tpl, nil
}

func (f *fakeEngine) Render(_ context.Context, key string, req model.Request) ([]byte, error) {
	f.renders = append(f.renders, req)
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	tpl := f.templates[key]
	if len(req.Images) < tpl.Params.MinImages {
		return nil, &engine.Error{Status: engine.StatusImageNumber, Kind: "wrong number of images", Message: "The number of images is incorrect"}
	}
	return f.renderData, nil
}

// fakeAssets maps template keys to preview bytes, stored as <key>.gif.
type fakeAssets map[string][]byte

func (a fakeAssets) Find(key string) (string, error) {
	if _, ok := a[key]; !ok {
		return "", assets.ErrNoPreview
	}
	return filepath.Join("images", key+".gif"), nil
}

func (a fakeAssets) Read(key string) ([]byte, string, error) {
	path, err := a.Find(key)
	if err != nil {
		return nil, "", err
	}
	return a[key], path, nil
}

type scriptedPrompts struct {
	inputs   []string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompts) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	p.asked = append(p.asked, cfg.Message)
	if len(p.inputs) == 0 {
		return "", prompt.ErrAborted
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (p *scriptedPrompts) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	p.asked = append(p.asked, cfg.Message)
	if len(p.confirms) == 0 {
		return false, errors.New("unexpected confirm: " + cfg.Message)
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func testServices(eng *fakeEngine, as fakeAssets) *services {
	settings := config.Defaults()
	settings.Graphics = "kitty"
	return &services{
		registry: eng,
		renderer: eng,
		assets:   as,
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func defaultAssets() fakeAssets {
	return fakeAssets{
		"petpet": testutil.MakeGIF(4, 4, []int{5, 5}),
		"always": testutil.MakeGIF(4, 4, []int{5, 5, 5}),
		"hello":  []byte("not an image"),
	}
}

func newTestState(t *testing.T, eng *fakeEngine, as fakeAssets, p *scriptedPrompts) *appState {
	t.Helper()
	view, err := catalog.Load(context.Background(), eng)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	state := newAppState(context.Background(), tuiSession{
		svc:     testServices(eng, as),
		view:    view,
		prompts: p,
		copyFile: func(context.Context, string) error {
			return nil
		},
	})
	state.lastRows = 30
	state.lastCols = 100
	t.Cleanup(state.close)
	return state
}

func press(t *testing.T, state *appState, keys ...inputEvent) {
	t.Helper()
	out := bufio.NewWriter(&bytes.Buffer{})
	for _, ev := range keys {
		if handleInput(state, ev, out) {
			t.Fatalf("unexpected quit on %+v", ev)
		}
	}
}

func runes(s string) []inputEvent {
	out := make([]inputEvent, 0, len(s))
	for _, r := range s {
		out = append(out, inputEvent{kind: keyRune, ch: r})
	}
	return out
}

func key(k keyKind) inputEvent {
	return inputEvent{kind: k}
}

func selectKey(t *testing.T, state *appState, k string) {
	t.Helper()
	idx := state.view.IndexOf(k)
	if idx < 0 {
		t.Fatalf("template %q not visible", k)
	}
	state.selectIndex(idx)
}

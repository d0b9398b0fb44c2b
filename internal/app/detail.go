package app

import (
	"errors"

	"github.com/steipete/memegrep/internal/assets"
	"github.com/steipete/memegrep/internal/imaging"
	"github.com/steipete/memegrep/internal/model"
)

func listHeight(state *appState) int {
	return maxInt(0, state.lastRows-4)
}

func ensureVisible(state *appState) {
	h := listHeight(state)
	if state.selected < state.scroll {
		state.scroll = state.selected
	}
	if h > 0 && state.selected >= state.scroll+h {
		state.scroll = state.selected - h + 1
	}
	if state.scroll < 0 {
		state.scroll = 0
	}
}

func (s *appState) moveSelection(delta int) {
	if s.view.Len() == 0 {
		return
	}
	next := clampInt(0, s.view.Len()-1, s.selected+delta)
	if next == s.selected && s.detail != nil {
		return
	}
	s.selectIndex(next)
}

// applyFilter narrows the list to query, keeping the current template
// selected when it is still visible.
func (s *appState) applyFilter(query string) {
	prev := ""
	if tpl, ok := s.view.At(s.selected); ok {
		prev = tpl.Key
	}
	s.view.Filter(query)
	idx := s.view.IndexOf(prev)
	if idx < 0 {
		idx = 0
		s.scroll = 0
	}
	s.selectIndex(idx)
	s.renderDirty = true
}

// selectIndex moves the selection and loads the detail pane. An empty list
// leaves the pane blank.
func (s *appState) selectIndex(i int) {
	tpl, ok := s.view.At(i)
	if !ok {
		s.selected = 0
		s.scroll = 0
		s.clearDetail()
		s.status = "No templates match"
		s.renderDirty = true
		return
	}
	s.selected = i
	ensureVisible(s)
	s.renderDirty = true
	if s.detail != nil && s.detail.Key == tpl.Key {
		return
	}
	s.loadDetail(tpl.Key)
}

func (s *appState) clearDetail() {
	s.detail = nil
	s.preview.clear("")
}

func (s *appState) loadDetail(key string) {
	// The old loop must be gone before anything else is decoded into the slot.
	s.preview.clear("")
	s.detail = nil

	tpl, err := s.svc.registry.Get(s.ctx, key)
	if err != nil {
		s.logger.Warn("template lookup failed", "key", key, "err", err)
		if errors.Is(err, model.ErrTemplateNotFound) {
			s.showError("Template not found", "The engine has no template named "+key+".")
		} else {
			s.showError("Engine error", err.Error())
		}
		return
	}
	s.detail = &tpl
	s.status = ""
	s.loadPreview(key)
}

func (s *appState) loadPreview(key string) {
	data, path, err := s.svc.assets.Read(key)
	if err != nil {
		if errors.Is(err, assets.ErrNoPreview) {
			s.preview.clear(placeholderNoPreview)
			return
		}
		s.logger.Warn("preview read failed", "key", key, "path", path, "err", err)
		s.preview.clear(placeholderFailed)
		return
	}
	media, _, err := imaging.Decode(data, s.preview.box)
	if err != nil {
		s.logger.Warn("preview decode failed", "key", key, "path", path, "err", err)
		s.preview.clear(placeholderFailed)
		return
	}
	s.logger.Debug("preview loaded", "key", key, "path", path, "frames", len(media.Frames()))
	s.preview.load(media)
}

func (s *appState) showError(title, body string) {
	s.dialog = &dialog{title: title, body: body, isError: true}
	s.renderDirty = true
}

func (s *appState) showInfo(title, body string) {
	s.dialog = &dialog{title: title, body: body}
	s.renderDirty = true
}

package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/steipete/memegrep/internal/engine"
	"github.com/steipete/memegrep/internal/form"
	"github.com/steipete/memegrep/internal/imaging"
	"github.com/steipete/memegrep/internal/model"
	"github.com/steipete/memegrep/internal/options"
	"github.com/steipete/memegrep/internal/prompt"
)

func (s *appState) openForm() {
	if s.detail == nil {
		s.showInfo("No template", "Select a template first.")
		return
	}
	s.mode = modeForm
	s.field = fieldImages
	s.formCursor = 0
	s.status = s.form.Status(*s.detail)
	s.renderDirty = true
}

func (s *appState) focusedList() (form.List, bool) {
	switch s.field {
	case fieldImages:
		return form.ImageList, true
	case fieldTexts:
		return form.TextList, true
	}
	return 0, false
}

func (s *appState) cycleField() {
	s.field = (s.field + 1) % 3
	s.formCursor = 0
	s.renderDirty = true
}

func (s *appState) moveFormCursor(delta int) {
	list, ok := s.focusedList()
	if !ok {
		return
	}
	n := s.form.Len(list)
	if n == 0 {
		s.formCursor = 0
		return
	}
	s.formCursor = clampInt(0, n-1, s.formCursor+delta)
	s.renderDirty = true
}

func (s *appState) addToForm() {
	switch s.field {
	case fieldImages:
		s.addImage()
	case fieldTexts:
		s.addText()
	default:
		s.editOptions()
	}
}

func (s *appState) addImage() {
	var path string
	err := s.suspend(func() error {
		var err error
		path, err = s.prompts.Input(s.ctx, prompt.InputConfig{
			Message: "Image path:",
			Help:    "Tab completes file names.",
			Suggest: prompt.SuggestPaths,
			Validator: func(v string) error {
				info, err := os.Stat(prompt.ExpandHome(v))
				if err != nil {
					return err
				}
				if !info.Mode().IsRegular() {
					return fmt.Errorf("%s is not a file", v)
				}
				return nil
			},
		})
		return err
	})
	if s.promptFailed(err) {
		return
	}
	if err := s.form.AddImage(prompt.ExpandHome(path)); err != nil {
		s.showError("Cannot add image", err.Error())
		return
	}
	s.formCursor = s.form.Len(form.ImageList) - 1
	s.afterFormChange()
}

func (s *appState) addText() {
	var text string
	err := s.suspend(func() error {
		var err error
		text, err = s.prompts.Input(s.ctx, prompt.InputConfig{Message: "Text:"})
		return err
	})
	if s.promptFailed(err) {
		return
	}
	s.form.AddText(text)
	s.formCursor = s.form.Len(form.TextList) - 1
	s.afterFormChange()
}

func (s *appState) editOptions() {
	var raw string
	err := s.suspend(func() error {
		var err error
		raw, err = s.prompts.Input(s.ctx, prompt.InputConfig{
			Message: "Options:",
			Default: s.form.Options,
			Help:    "A mapping such as {circle: true, message: hello}. Leave empty for none.",
			Validator: func(v string) error {
				_, err := options.Parse(v)
				return err
			},
		})
		return err
	})
	if s.promptFailed(err) {
		return
	}
	s.form.Options = raw
	s.afterFormChange()
}

func (s *appState) removeFromForm() {
	list, ok := s.focusedList()
	if !ok {
		if s.form.Options != "" {
			s.form.Options = ""
			s.afterFormChange()
		}
		return
	}
	if !s.form.Remove(list, s.formCursor) {
		return
	}
	if s.formCursor >= s.form.Len(list) {
		s.formCursor = maxInt(0, s.form.Len(list)-1)
	}
	s.afterFormChange()
}

func (s *appState) prefillTexts() {
	if s.detail == nil {
		return
	}
	if len(s.detail.Params.DefaultTexts) == 0 {
		s.status = "Template has no default texts"
		s.renderDirty = true
		return
	}
	s.form.Prefill(*s.detail)
	s.field = fieldTexts
	s.formCursor = 0
	s.afterFormChange()
}

func (s *appState) afterFormChange() {
	if s.detail != nil {
		s.status = s.form.Status(*s.detail)
	}
	s.renderDirty = true
}

// promptFailed reports whether a prompt ended without a value, updating the
// status or showing a dialog as needed.
func (s *appState) promptFailed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, prompt.ErrAborted) {
		s.status = "Cancelled"
		s.renderDirty = true
		return true
	}
	s.showError("Prompt failed", err.Error())
	return true
}

// generate renders the selected template with the form's inputs. Every
// failure ends in a dialog; nothing is retried.
func (s *appState) generate(flush func()) {
	if s.detail == nil {
		s.showInfo("No template", "Select a template first.")
		return
	}
	key := s.detail.Key
	req, err := s.form.Request()
	if err != nil {
		s.showError("Argument format", err.Error())
		return
	}

	s.status = "Generating " + key + "…"
	s.renderDirty = true
	if flush != nil {
		flush()
	}

	data, err := s.svc.renderer.Render(s.ctx, key, req)
	if err != nil {
		s.logger.Warn("render failed", "key", key, "images", len(req.Images), "texts", len(req.Texts), "err", err)
		s.showError(generateErrorTitle(err), err.Error())
		s.status = s.form.Status(*s.detail)
		return
	}
	s.logger.Info("rendered", "key", key, "bytes", len(data))
	s.openResult(key, data)
}

func generateErrorTitle(err error) string {
	var ee *engine.Error
	switch {
	case errors.Is(err, model.ErrTemplateNotFound):
		return "Template not found"
	case errors.As(err, &ee):
		return "Engine error: " + ee.Kind
	default:
		return "Generation failed"
	}
}

func (s *appState) openResult(key string, data []byte) {
	s.preview.pause()
	s.result = &resultState{key: key, data: data, format: imaging.DetectFormat(data)}
	s.mode = modeResult
	s.status = fmt.Sprintf("%s · %s · %s", key, formatLabel(s.result.format), humanSize(len(data)))
	s.renderDirty = true

	media, _, err := imaging.Decode(data, s.output.box)
	if err != nil {
		s.logger.Warn("result decode failed", "key", key, "err", err)
		s.output.clear(placeholderFailed)
		return
	}
	s.output.load(media)
}

func formatLabel(format string) string {
	if format == "" {
		return "unknown format"
	}
	return format
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

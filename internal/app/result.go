package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/steipete/memegrep/internal/export"
	"github.com/steipete/memegrep/internal/prompt"
)

// closeResult leaves the result view. Its animation is stopped and its frames
// and bytes are dropped; the preview picks up again.
func (s *appState) closeResult() {
	s.output.clear("")
	s.result = nil
	s.mode = modeForm
	if s.detail != nil {
		s.status = s.form.Status(*s.detail)
	}
	s.preview.resume()
	s.renderDirty = true
}

func (s *appState) saveResult() {
	res := s.result
	if res == nil {
		return
	}
	name := export.DefaultName(res.key, res.format)
	if cwd, err := os.Getwd(); err == nil {
		if p, err := export.UniquePath(cwd, name); err == nil {
			name = filepath.Base(p)
		}
	}

	var saved string
	err := s.suspend(func() error {
		path, err := s.prompts.Input(s.ctx, prompt.InputConfig{
			Message: "Save as:",
			Default: name,
			Suggest: prompt.SuggestPaths,
		})
		if err != nil {
			return err
		}
		saved, err = export.Save(s.ctx, path, res.format, res.data, s.prompts)
		return err
	})
	switch {
	case err == nil:
		res.savedPath = saved
		s.status = "Saved to " + saved
		s.logger.Info("saved", "key", res.key, "path", saved, "bytes", len(res.data))
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, export.ErrDeclined):
		s.status = "Not saved"
	default:
		s.logger.Error("save failed", "key", res.key, "err", err)
		s.showError("Save failed", err.Error())
	}
	s.renderDirty = true
}

// copyResult puts the result on the clipboard, from the saved file when there
// is one and from a temp file otherwise.
func (s *appState) copyResult() {
	res := s.result
	if res == nil {
		return
	}
	path, err := s.resultFile(res)
	if err != nil {
		s.showError("Copy failed", err.Error())
		return
	}
	if err := s.copyFile(s.ctx, path); err != nil {
		s.logger.Warn("clipboard copy failed", "path", path, "err", err)
		s.showError("Copy failed", err.Error())
		return
	}
	s.status = "Copied to clipboard"
	s.renderDirty = true
}

func (s *appState) resultFile(res *resultState) (string, error) {
	if res.savedPath != "" {
		if _, err := os.Stat(res.savedPath); err == nil {
			return res.savedPath, nil
		}
	}
	if res.tempPath != "" {
		return res.tempPath, nil
	}
	if s.tempDir == "" {
		dir, err := os.MkdirTemp("", "memegrep-")
		if err != nil {
			return "", err
		}
		s.tempDir = dir
	}
	path, err := export.UniquePath(s.tempDir, export.DefaultName(res.key, res.format))
	if err != nil {
		return "", err
	}
	if err := export.Write(path, res.data); err != nil {
		return "", err
	}
	res.tempPath = path
	return path, nil
}

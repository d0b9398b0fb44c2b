// Package export writes render results to disk.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/steipete/memegrep/internal/imaging"
	"github.com/steipete/memegrep/internal/prompt"
)

// ErrDeclined is returned when the user refuses an extension correction or an
// overwrite. Nothing has been written.
var ErrDeclined = errors.New("save declined")

var (
	errEmptyPath = errors.New("empty save path")
	errDirPath   = errors.New("save path is a directory")
)

// aliases lists extensions that are acceptable spellings of a canonical one.
var aliases = map[string][]string{
	".jpg": {".jpeg"},
}

// DefaultName is the pre-filled save name for a result of key in format.
func DefaultName(key, format string) string {
	return sanitizeFilename(key) + imaging.Extension(format)
}

// ResolvePath settles the extension of a user-chosen path against format.
// A missing extension is appended. A different one is replaced only after the
// user confirms; declining yields ErrDeclined. Directories are rejected.
func ResolvePath(ctx context.Context, path, format string, ask prompt.Driver) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errEmptyPath
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, errDirPath)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, errDirPath)
	}
	want := imaging.Extension(format)
	got := filepath.Ext(path)
	if got == "" {
		return path + want, nil
	}
	if extensionMatches(got, want) {
		return path, nil
	}
	fixed := strings.TrimSuffix(path, got) + want
	ok, err := ask.Confirm(ctx, prompt.ConfirmConfig{
		Message: fmt.Sprintf("Result is %s, not %s. Save as %s?", strings.TrimPrefix(want, "."), got, filepath.Base(fixed)),
		Default: true,
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrDeclined
	}
	return fixed, nil
}

func extensionMatches(got, want string) bool {
	if strings.EqualFold(got, want) {
		return true
	}
	for _, alias := range aliases[want] {
		if strings.EqualFold(got, alias) {
			return true
		}
	}
	return false
}

// Save resolves path and writes data to it verbatim. Existing files are
// replaced only after confirmation. It returns the path written.
func Save(ctx context.Context, path, format string, data []byte, ask prompt.Driver) (string, error) {
	target, err := ResolvePath(ctx, prompt.ExpandHome(path), format, ask)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("save %s: is a directory", target)
		}
		ok, err := ask.Confirm(ctx, prompt.ConfirmConfig{
			Message: fmt.Sprintf("%s exists. Overwrite?", filepath.Base(target)),
		})
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrDeclined
		}
	}
	if err := Write(target, data); err != nil {
		return "", err
	}
	return target, nil
}

// Write stores data at path through a temp file in the same directory, so a
// failed write never leaves a truncated file behind.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".memegrep-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// UniquePath returns dir/name, or dir/name-N.ext when that already exists.
func UniquePath(dir, name string) (string, error) {
	base := filepath.Join(dir, name)
	if _, err := os.Stat(base); errors.Is(err, os.ErrNotExist) {
		return base, nil
	} else if err != nil {
		return "", err
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; i < 10000; i++ {
		candidate := filepath.Join(dir, stem+"-"+strconv.Itoa(i)+ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free file name for %s", name)
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case r < 0x20:
			continue
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "meme"
	}
	return out
}

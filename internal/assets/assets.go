// Package assets finds local template previews.
package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Extensions are tried in this order; the first existing file wins.
var Extensions = []string{".png", ".gif", ".jpeg"}

var ErrNoPreview = errors.New("no preview")

type Dir struct {
	Root string
	fsys fs.FS
}

func NewDir(root string) *Dir {
	return &Dir{Root: root, fsys: os.DirFS(root)}
}

// Find returns the path of the preview for key.
func (d *Dir) Find(key string) (string, error) {
	if d == nil || d.Root == "" || !fs.ValidPath(key) || filepath.Base(key) != key {
		return "", ErrNoPreview
	}
	for _, ext := range Extensions {
		name := key + ext
		info, err := fs.Stat(d.fsys, name)
		if err == nil && info.Mode().IsRegular() {
			return filepath.Join(d.Root, name), nil
		}
	}
	return "", ErrNoPreview
}

// Read returns the preview bytes for key.
func (d *Dir) Read(key string) ([]byte, string, error) {
	path, err := d.Find(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return data, path, nil
}

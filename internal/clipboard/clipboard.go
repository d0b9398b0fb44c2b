// Package clipboard places a rendered meme file on the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	lookPath       = exec.LookPath
	commandContext = exec.CommandContext

	errEmptyPath = errors.New("empty path")
	errNoTool    = errors.New("no clipboard tool found (need xclip or wl-copy)")
)

var mimeTypes = map[string]string{
	".gif":  "image/gif",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// MimeType returns the clipboard target type for path, based on its
// extension.
func MimeType(path string) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "image/png"
}

// CopyFile copies the image at path to the clipboard.
func CopyFile(ctx context.Context, path string) error {
	if path == "" {
		return errEmptyPath
	}
	name, args, stdin, err := copyCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	cmd := commandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if stdin {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		cmd.Stdin = f
	}
	return cmd.Run()
}

// copyCommand picks the tool for goos. stdin reports whether the file must be
// piped into the command.
func copyCommand(goos string, path string) (string, []string, bool, error) {
	switch goos {
	case "darwin":
		return "osascript", []string{"-e", `set the clipboard to (POSIX file "` + path + `")`}, false, nil
	default:
		mime := MimeType(path)
		if _, err := lookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard", "-t", mime, "-i", path}, false, nil
		}
		if _, err := lookPath("wl-copy"); err == nil {
			return "wl-copy", []string{"--type", mime}, true, nil
		}
		return "", nil, false, errNoTool
	}
}

package clipboard

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCopyFileEmptyPath(t *testing.T) {
	if err := CopyFile(context.Background(), ""); !errors.Is(err, errEmptyPath) {
		t.Fatalf("expected errEmptyPath, got %v", err)
	}
}

func TestCopyCommandDarwin(t *testing.T) {
	cmd, args, stdin, err := copyCommand("darwin", "/tmp/a.gif")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cmd != "osascript" || stdin {
		t.Fatalf("expected osascript without stdin, got %q %v", cmd, stdin)
	}
	if len(args) != 2 || args[0] != "-e" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func stubLookPath(t *testing.T, found string) {
	t.Helper()
	prev := lookPath
	lookPath = func(name string) (string, error) {
		if name == found {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = prev })
}

func TestCopyCommandLinuxXclip(t *testing.T) {
	stubLookPath(t, "xclip")

	cmd, args, stdin, err := copyCommand("linux", "/tmp/a.jpg")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cmd != "xclip" || stdin {
		t.Fatalf("expected xclip, got %q", cmd)
	}
	if len(args) != 6 || args[3] != "image/jpeg" || args[4] != "-i" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestCopyCommandLinuxWlCopy(t *testing.T) {
	stubLookPath(t, "wl-copy")

	cmd, args, stdin, err := copyCommand("linux", "/tmp/a.gif")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cmd != "wl-copy" || !stdin {
		t.Fatalf("expected wl-copy fed from stdin, got %q %v", cmd, stdin)
	}
	if len(args) != 2 || args[1] != "image/gif" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestCopyCommandLinuxNoTool(t *testing.T) {
	stubLookPath(t, "")

	if _, _, _, err := copyCommand("linux", "/tmp/a.gif"); !errors.Is(err, errNoTool) {
		t.Fatalf("expected errNoTool, got %v", err)
	}
}

func TestMimeType(t *testing.T) {
	cases := map[string]string{
		"a.GIF":  "image/gif",
		"a.jpeg": "image/jpeg",
		"a.webp": "image/webp",
		"a":      "image/png",
	}
	for path, want := range cases {
		if got := MimeType(path); got != want {
			t.Fatalf("MimeType(%q)=%q want %q", path, got, want)
		}
	}
}

func TestCopyFilePipesWlCopy(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("darwin uses osascript")
	}
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	stubLookPath(t, "wl-copy")
	var gotName string
	prev := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		return exec.CommandContext(ctx, "cat")
	}
	t.Cleanup(func() { commandContext = prev })

	path := filepath.Join(t.TempDir(), "a.gif")
	if err := os.WriteFile(path, []byte("GIF89a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := CopyFile(context.Background(), path); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if gotName != "wl-copy" {
		t.Fatalf("expected wl-copy, got %q", gotName)
	}
}

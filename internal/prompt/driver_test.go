package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if !errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted")
	}
	boom := errors.New("boom")
	if !errors.Is(translateSurveyErr(boom), boom) {
		t.Fatalf("other errors pass through")
	}
}

func TestAutoDriver(t *testing.T) {
	ctx := context.Background()
	got, err := Auto{}.Input(ctx, InputConfig{Default: "out.gif"})
	if err != nil || got != "out.gif" {
		t.Fatalf("expected default, got %q %v", got, err)
	}
	ok, err := Auto{Answer: true}.Confirm(ctx, ConfirmConfig{})
	if err != nil || !ok {
		t.Fatalf("expected scripted answer")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := (Auto{}).Confirm(cancelled, ConfirmConfig{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestSurveyDriverHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewSurveyDriver()
	if _, err := d.Input(ctx, InputConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := d.Confirm(ctx, ConfirmConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSurveyDriverUsesProcessTerminal(t *testing.T) {
	d, ok := NewSurveyDriver().(*surveyDriver)
	if !ok {
		t.Fatalf("unexpected driver type")
	}
	var opts survey.AskOptions
	for _, opt := range d.opts {
		if err := opt(&opts); err != nil {
			t.Fatalf("apply option: %v", err)
		}
	}
	if opts.Stdio.In != os.Stdin || opts.Stdio.Out != os.Stdout || opts.Stdio.Err != os.Stderr {
		t.Fatalf("expected prompts wired to the process stdio")
	}
}

func TestSuggestPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cat.png", "cat.gif", "dog.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "cats"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got := SuggestPaths(filepath.Join(dir, "cat"))
	want := []string{
		filepath.Join(dir, "cat.gif"),
		filepath.Join(dir, "cat.png"),
		filepath.Join(dir, "cats") + string(filepath.Separator),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := ExpandHome("~/memes/a.png"); got != filepath.Join(home, "memes", "a.png") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := ExpandHome("/abs/~/x"); got != "/abs/~/x" {
		t.Fatalf("only a leading ~ expands, got %q", got)
	}
}

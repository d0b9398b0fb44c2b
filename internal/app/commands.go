package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/steipete/memegrep/internal/catalog"
	"github.com/steipete/memegrep/internal/export"
	"github.com/steipete/memegrep/internal/form"
	"github.com/steipete/memegrep/internal/imaging"
	"github.com/steipete/memegrep/internal/prompt"
)

var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// askerFor picks how the headless generate command answers confirmations.
func askerFor(yes bool) prompt.Driver {
	if yes {
		return prompt.Auto{Answer: true}
	}
	if stdinIsTerminal() {
		return prompt.NewSurveyDriver()
	}
	return prompt.Auto{Answer: false}
}

func runList(ctx context.Context, stdout io.Writer, svc *services, cmd listCmd) error {
	view, err := catalog.Load(ctx, svc.registry)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	view.Filter(cmd.Filter)
	entries := listEntries(view.Visible())

	out := bufio.NewWriter(stdout)
	defer func() { _ = out.Flush() }()
	if cmd.JSON {
		return writeJSON(out, entries)
	}
	renderList(out, entries, isTerminalWriter(stdout))
	return nil
}

func runInfo(ctx context.Context, stdout io.Writer, svc *services, cmd infoCmd) error {
	tpl, err := svc.registry.Get(ctx, cmd.Key)
	if err != nil {
		return err
	}
	entry := infoEntry{
		Template: tpl,
		Images:   catalog.ImageCount(tpl),
		Texts:    catalog.TextCount(tpl),
		Lines:    catalog.Describe(tpl),
	}
	if path, err := svc.assets.Find(tpl.Key); err == nil {
		entry.Preview = path
	}

	out := bufio.NewWriter(stdout)
	defer func() { _ = out.Flush() }()
	if cmd.JSON {
		return writeJSON(out, entry)
	}
	renderInfo(out, entry, isTerminalWriter(stdout))
	return nil
}

// runGenerate renders without the UI and saves the bytes verbatim, applying
// the same extension rules as the result view.
func runGenerate(ctx context.Context, stdout io.Writer, svc *services, cmd generateCmd, ask prompt.Driver) error {
	var f form.Form
	for _, path := range cmd.Image {
		if err := f.AddImage(path); err != nil {
			return err
		}
	}
	for _, text := range cmd.Text {
		f.AddText(text)
	}
	if cmd.Defaults && len(cmd.Text) == 0 {
		tpl, err := svc.registry.Get(ctx, cmd.Key)
		if err != nil {
			return err
		}
		f.Prefill(tpl)
	}
	f.Options = cmd.Args

	req, err := f.Request()
	if err != nil {
		return err
	}
	data, err := svc.renderer.Render(ctx, cmd.Key, req)
	if err != nil {
		return err
	}
	format := imaging.DetectFormat(data)
	svc.logger.Info("rendered", "key", cmd.Key, "format", format, "bytes", len(data))

	if cmd.Output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	path := cmd.Output
	if path == "" {
		path, err = export.UniquePath(".", export.DefaultName(cmd.Key, format))
		if err != nil {
			return err
		}
	}
	saved, err := export.Save(ctx, path, format, data, ask)
	if err != nil {
		return err
	}
	svc.logger.Info("saved", "key", cmd.Key, "path", saved)
	_, err = fmt.Fprintln(stdout, saved)
	return err
}

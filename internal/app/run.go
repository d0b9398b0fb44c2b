package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/steipete/memegrep/internal/catalog"
)

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	c, command, err := parseArgs(args, stdout, stderr)
	if err != nil {
		if errors.Is(err, errHelp) || errors.Is(err, errVersion) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}

	settings, err := c.settings()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	logger, logCloser, err := newLogger(settings)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	defer func() { _ = logCloser.Close() }()

	svc, err := newServicesFn(settings, logger)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	logger.Debug("starting", "command", command, "engine", settings.EngineURL)

	if command == "tui" {
		if err := runTUICommand(context.Background(), svc, c.TUI.Query); err != nil {
			logger.Error("tui exited", "err", err)
			_, _ = fmt.Fprintln(stderr, err.Error())
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	switch command {
	case "list":
		err = runList(ctx, stdout, svc, c.List)
	case "info":
		err = runInfo(ctx, stdout, svc, c.Info)
	case "generate":
		err = runGenerate(ctx, stdout, svc, c.Generate, askerFor(c.Generate.Yes))
	default:
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		logger.Error("command failed", "command", command, "err", err)
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}

// runTUICommand loads the catalog, which must succeed, and hands over to the
// terminal UI.
func runTUICommand(ctx context.Context, svc *services, query string) error {
	view, err := catalog.Load(ctx, svc.registry)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	svc.logger.Info("catalog loaded", "templates", view.Len())
	return runTUI(ctx, tuiSession{svc: svc, view: view, query: query})
}

package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/steipete/memegrep/internal/assets"
	"github.com/steipete/memegrep/internal/config"
	"github.com/steipete/memegrep/internal/engine"
)

var newServicesFn = newServices

func newServices(settings config.Settings, logger *slog.Logger) (*services, error) {
	client, err := engine.New(settings.EngineURL, settings.Timeout.Std(), engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &services{
		registry: client,
		renderer: client,
		assets:   assets.NewDir(settings.AssetsDir),
		settings: settings,
		logger:   logger,
	}, nil
}

// newLogger opens the log file from settings. The UI owns the terminal, so
// without a log file nothing is logged.
func newLogger(settings config.Settings) (*slog.Logger, io.Closer, error) {
	level, err := settings.Level()
	if err != nil {
		return nil, nil, err
	}
	if settings.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("pid", os.Getpid()), f, nil
}

// Package config loads memegrep settings from defaults, a YAML file, a .env
// file and MEMEGREP_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/steipete/memegrep/internal/model"
)

const envPrefix = "memegrep"

// Settings holds the application configuration.
type Settings struct {
	EngineURL  string   `yaml:"engine_url" envconfig:"ENGINE_URL"`
	Timeout    Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	AssetsDir  string   `yaml:"assets_dir" envconfig:"ASSETS_DIR"`
	PreviewBox int      `yaml:"preview_box" envconfig:"PREVIEW_BOX"`
	ResultBox  int      `yaml:"result_box" envconfig:"RESULT_BOX"`
	Graphics   string   `yaml:"graphics" envconfig:"GRAPHICS"`
	LogFile    string   `yaml:"log_file" envconfig:"LOG_FILE"`
	LogLevel   string   `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

var graphicsModes = []string{"auto", "kitty", "iterm", "blocks", "none"}

func Defaults() Settings {
	return Settings{
		EngineURL:  "http://127.0.0.1:2233",
		Timeout:    Duration(60 * time.Second),
		AssetsDir:  "images",
		PreviewBox: 300,
		ResultBox:  580,
		Graphics:   "auto",
		LogLevel:   "info",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/memegrep/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, model.AppName, "config.yaml")
}

// Load builds Settings. An explicit path must exist; the default path and the
// env file are optional.
func Load(path, envFile string) (Settings, error) {
	s := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadYAML(path, &s); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Settings{}, err
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process(envPrefix, &s); err != nil {
		return Settings{}, fmt.Errorf("environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func loadYAML(path string, s *Settings) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (s Settings) Validate() error {
	u, err := url.Parse(s.EngineURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("engine_url: invalid url %q", s.EngineURL)
	}
	if s.Timeout <= 0 {
		return errors.New("timeout: must be positive")
	}
	if s.PreviewBox <= 0 || s.ResultBox <= 0 {
		return errors.New("preview_box/result_box: must be positive")
	}
	if !validGraphics(s.Graphics) {
		return fmt.Errorf("graphics: expected one of %s, got %q", strings.Join(graphicsModes, ", "), s.Graphics)
	}
	if _, err := s.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func (s Settings) Level() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(s.LogLevel))
	return lvl, err
}

func validGraphics(mode string) bool {
	mode = strings.ToLower(strings.TrimSpace(mode))
	for _, m := range graphicsModes {
		if m == mode {
			return true
		}
	}
	return false
}

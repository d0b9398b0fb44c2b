package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/steipete/memegrep/internal/config"
	"github.com/steipete/memegrep/internal/model"
)

var (
	errHelp    = errors.New("help requested")
	errVersion = errors.New("version requested")
	errUsage   = errors.New("usage error")
)

type cli struct {
	Config   string      `help:"Config file (YAML)." type:"path" placeholder:"PATH"`
	EnvFile  string      `name:"env-file" help:"Dotenv file read before the environment." default:".env" placeholder:"PATH"`
	Engine   string      `help:"meme-generator base URL." placeholder:"URL"`
	Assets   string      `help:"Directory with template previews." type:"path" placeholder:"DIR"`
	Graphics string      `help:"Inline images: auto, kitty, iterm, blocks or none." placeholder:"MODE"`
	LogFile  string      `name:"log-file" help:"Append logs to this file." type:"path" placeholder:"PATH"`
	LogLevel string      `name:"log-level" help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	Color    string      `help:"Colored help: auto, always or never." enum:"auto,always,never" default:"auto"`
	NoColor  bool        `name:"no-color" help:"Same as --color=never."`
	Version  versionFlag `short:"v" help:"Print version and exit."`

	TUI      tuiCmd      `cmd:"" default:"withargs" help:"Browse templates interactively (default)."`
	List     listCmd     `cmd:"" help:"List templates."`
	Info     infoCmd     `cmd:"" help:"Show what a template takes."`
	Generate generateCmd `cmd:"" help:"Render a meme and save it, without the UI."`
}

type tuiCmd struct {
	Query string `arg:"" optional:"" help:"Initial filter."`
}

type listCmd struct {
	Filter string `arg:"" optional:"" help:"Only templates whose key or keywords contain this."`
	JSON   bool   `help:"Print JSON."`
}

type infoCmd struct {
	Key  string `arg:"" help:"Template key."`
	JSON bool   `help:"Print JSON."`
}

type generateCmd struct {
	Key      string   `arg:"" help:"Template key."`
	Image    []string `short:"i" sep:"none" type:"path" help:"Input image (repeatable, in order)."`
	Text     []string `short:"t" sep:"none" help:"Text (repeatable, in order)."`
	Defaults bool     `short:"d" help:"Use the template's default texts when no --text is given."`
	Args     string   `short:"a" help:"Options mapping, e.g. '{circle: true}'." placeholder:"MAPPING"`
	Output   string   `short:"o" help:"Output path; '-' writes to stdout." placeholder:"PATH"`
	Yes      bool     `short:"y" help:"Accept extension corrections and overwrites."`
}

type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong) error {
	_, _ = fmt.Fprintf(app.Stdout, "%s %s\n", model.AppName, model.Version)
	return errVersion
}

type kongExit int

func parseArgs(args []string, stdout, stderr io.Writer) (c *cli, command string, err error) {
	c = &cli{}
	parser, err := kong.New(c,
		kong.Name(model.AppName),
		kong.Description(model.Tagline),
		kong.Help(helpPrinter),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(kongExit(code)) }),
	)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			c, command = nil, ""
			if code == 0 {
				err = errHelp
			} else {
				err = errUsage
			}
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		return nil, "", err
	}
	command = "tui"
	if fields := strings.Fields(kctx.Command()); len(fields) > 0 {
		command = fields[0]
	}
	return c, command, nil
}

// settings layers the flags over the loaded configuration.
func (c *cli) settings() (config.Settings, error) {
	s, err := config.Load(c.Config, c.EnvFile)
	if err != nil {
		return config.Settings{}, err
	}
	if c.Engine != "" {
		s.EngineURL = c.Engine
	}
	if c.Assets != "" {
		s.AssetsDir = c.Assets
	}
	if c.Graphics != "" {
		s.Graphics = strings.ToLower(c.Graphics)
	}
	if c.LogFile != "" {
		s.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		s.LogLevel = c.LogLevel
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

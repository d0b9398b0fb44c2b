package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/steipete/memegrep/internal/model"
	"golang.org/x/term"
)

func helpPrinter(options kong.HelpOptions, ctx *kong.Context) error {
	useColor := helpWantsColor(ctx)
	_, _ = fmt.Fprintln(ctx.Stdout, helpHeader(useColor))
	_, _ = fmt.Fprintln(ctx.Stdout, helpTagline(useColor))
	_, _ = fmt.Fprintln(ctx.Stdout)

	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	if options.Summary {
		return nil
	}
	lines := helpExtras(ctx)
	if len(lines) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(ctx.Stdout)
	for _, line := range lines {
		_, _ = fmt.Fprintln(ctx.Stdout, line)
	}
	return nil
}

func helpHeader(useColor bool) string {
	if !useColor {
		return fmt.Sprintf("%s %s", model.AppName, model.Version)
	}
	return "\x1b[1m\x1b[36m" + model.AppName + "\x1b[0m" + " " + "\x1b[1m" + model.Version + "\x1b[0m"
}

func helpTagline(useColor bool) string {
	if !useColor {
		return model.Tagline
	}
	return "\x1b[90m" + model.Tagline + "\x1b[0m"
}

func helpWantsColor(ctx *kong.Context) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	termEnv := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if termEnv == "" || termEnv == "dumb" {
		return false
	}

	for i := 0; i < len(ctx.Args); i++ {
		arg := ctx.Args[i]
		if arg == "--no-color" {
			return false
		}
		if strings.HasPrefix(arg, "--color=") {
			val := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(arg, "--color=")))
			if val == "never" {
				return false
			}
			if val == "always" {
				return true
			}
		}
		if arg == "--color" && i+1 < len(ctx.Args) {
			val := strings.ToLower(strings.TrimSpace(ctx.Args[i+1]))
			if val == "never" {
				return false
			}
			if val == "always" {
				return true
			}
			i++
		}
	}

	f, ok := ctx.Stdout.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func helpExtras(ctx *kong.Context) []string {
	selected := ctx.Selected()
	if selected == nil {
		return rootHelpExtras()
	}
	switch selected.Name {
	case "tui":
		return tuiHelpExtras()
	case "list":
		return listHelpExtras()
	case "info":
		return infoHelpExtras()
	case "generate":
		return generateHelpExtras()
	default:
		return rootHelpExtras()
	}
}

func rootHelpExtras() []string {
	return []string{
		"Examples:",
		"  memegrep",
		"  memegrep tui pet",
		"  memegrep list --json | jq '.[].key'",
		"  memegrep info petpet",
		"  memegrep generate petpet -i avatar.png -o pet.gif",
		"",
		"Environment:",
		"  MEMEGREP_ENGINE_URL  meme-generator base URL (default http://127.0.0.1:2233)",
		"  MEMEGREP_ASSETS_DIR  preview directory (default images)",
		"  MEMEGREP_GRAPHICS    auto, kitty, iterm, blocks or none",
	}
}

func tuiHelpExtras() []string {
	return []string{
		"Keys:",
		"  /      filter templates",
		"  ↑↓     select",
		"  enter  open the form",
		"  a x    add / remove image or text",
		"  o      edit options",
		"  d      use default texts",
		"  g      generate",
		"  s c    save / copy result",
		"  q      quit",
		"",
		"Examples:",
		"  memegrep tui cat",
	}
}

func listHelpExtras() []string {
	return []string{
		"Output:",
		"  Default: <key>  <images>  <texts>  <keywords>",
		"",
		"Examples:",
		"  memegrep list cat",
		"  memegrep list --json | jq length",
	}
}

func infoHelpExtras() []string {
	return []string{
		"Examples:",
		"  memegrep info petpet",
		"  memegrep info --json petpet | jq .params",
	}
}

func generateHelpExtras() []string {
	return []string{
		"Options use a YAML mapping: {circle: true, message: 'hi'}.",
		"",
		"Examples:",
		"  memegrep generate petpet -i avatar.png -o pet.gif",
		"  memegrep generate always -t 'hello' -a '{mode: loop}' -o -  > out.gif",
		"  memegrep generate 5000choyen -d -y",
	}
}

package model

import "errors"

const AppName = "memegrep"

const Tagline = "Pick a template. Feed it. Keep the meme."

var Version = "dev"

var ErrTemplateNotFound = errors.New("template not found")

type Template struct {
	Key       string     `json:"key"`
	Keywords  []string   `json:"keywords"`
	Shortcuts []Shortcut `json:"shortcuts,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Params    Params     `json:"params"`
}

type Params struct {
	MinImages    int         `json:"min_images"`
	MaxImages    int         `json:"max_images"`
	MinTexts     int         `json:"min_texts"`
	MaxTexts     int         `json:"max_texts"`
	DefaultTexts []string    `json:"default_texts,omitempty"`
	Options      []ArgOption `json:"options,omitempty"`
}

type Shortcut struct {
	Key       string `json:"key"`
	Humanized string `json:"humanized,omitempty"`
}

// Label is the humanized form when the engine provides one.
func (s Shortcut) Label() string {
	if s.Humanized != "" {
		return s.Humanized
	}
	return s.Key
}

type ArgOption struct {
	Names    []string `json:"names"`
	Args     []OptArg `json:"args,omitempty"`
	HelpText string   `json:"help_text,omitempty"`
}

type OptArg struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Request is built fresh for every render attempt.
type Request struct {
	Images []string
	Texts  []string
	Args   map[string]any
}

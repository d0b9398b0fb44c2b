// Package engine talks to a meme-generator HTTP service: it lists templates,
// fetches template metadata and renders memes.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/steipete/memegrep/internal/model"
)

const userAgent = "memegrep"

type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
	newID  func() string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("engine url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("engine url: %q is not absolute", baseURL)
	}
	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		logger: slog.New(slog.DiscardHandler),
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(parts ...string) string {
	u := *c.base
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(escaped, "/")
	return u.String()
}

// Keys returns every template key the registry knows.
func (c *Client) Keys(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("memes", "keys"), nil, "")
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, fmt.Errorf("decode keys: %w", err)
	}
	return keys, nil
}

// List fetches metadata for every template. Keys that vanish between the two
// calls are skipped.
func (c *Client) List(ctx context.Context) ([]model.Template, error) {
	keys, err := c.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Template, 0, len(keys))
	for _, key := range keys {
		tpl, err := c.Get(ctx, key)
		if errors.Is(err, model.ErrTemplateNotFound) {
			c.logger.Warn("template disappeared during listing", "key", key)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, key string) (model.Template, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("memes", key, "info"), nil, "")
	if err != nil {
		if errors.Is(err, model.ErrTemplateNotFound) {
			return model.Template{}, fmt.Errorf("%w: %s", model.ErrTemplateNotFound, key)
		}
		return model.Template{}, err
	}
	var info memeInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return model.Template{}, fmt.Errorf("decode info for %s: %w", key, err)
	}
	return info.template(), nil
}

// Render posts images, texts and options to the engine and returns the
// encoded result untouched.
func (c *Client) Render(ctx context.Context, key string, req model.Request) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, path := range req.Images {
		if err := addImage(mw, path); err != nil {
			return nil, err
		}
	}
	for _, text := range req.Texts {
		if err := mw.WriteField("texts", text); err != nil {
			return nil, err
		}
	}
	args := req.Args
	if args == nil {
		args = map[string]any{}
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	if err := mw.WriteField("args", string(rawArgs)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, c.endpoint("memes", key)+"/", &buf, mw.FormDataContentType())
}

func addImage(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	part, err := mw.CreateFormFile("images", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read image %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	id := c.newID()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", id)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("engine request failed", "id", id, "method", method, "url", target, "err", err)
		return nil, fmt.Errorf("engine unreachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read engine response: %w", err)
	}
	c.logger.Debug("engine request", "id", id, "method", method, "url", target,
		"status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(resp.StatusCode, raw)
	}
	return raw, nil
}

type memeInfo struct {
	Key        string `json:"key"`
	ParamsType struct {
		MinImages    int      `json:"min_images"`
		MaxImages    int      `json:"max_images"`
		MinTexts     int      `json:"min_texts"`
		MaxTexts     int      `json:"max_texts"`
		DefaultTexts []string `json:"default_texts"`
		ArgsType     *struct {
			ParserOptions []struct {
				Names []string `json:"names"`
				Args  []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"args"`
				HelpText string `json:"help_text"`
			} `json:"parser_options"`
		} `json:"args_type"`
	} `json:"params_type"`
	Keywords  []string `json:"keywords"`
	Shortcuts []struct {
		Key       string  `json:"key"`
		Humanized *string `json:"humanized"`
	} `json:"shortcuts"`
	Tags []string `json:"tags"`
}

func (m memeInfo) template() model.Template {
	p := m.ParamsType
	tpl := model.Template{
		Key:      m.Key,
		Keywords: m.Keywords,
		Tags:     m.Tags,
		Params: model.Params{
			MinImages:    p.MinImages,
			MaxImages:    p.MaxImages,
			MinTexts:     p.MinTexts,
			MaxTexts:     p.MaxTexts,
			DefaultTexts: p.DefaultTexts,
		},
	}
	for _, s := range m.Shortcuts {
		sc := model.Shortcut{Key: s.Key}
		if s.Humanized != nil {
			sc.Humanized = *s.Humanized
		}
		tpl.Shortcuts = append(tpl.Shortcuts, sc)
	}
	if p.ArgsType != nil {
		for _, po := range p.ArgsType.ParserOptions {
			opt := model.ArgOption{Names: po.Names, HelpText: po.HelpText}
			for _, a := range po.Args {
				opt.Args = append(opt.Args, model.OptArg{Name: a.Name, Value: a.Value})
			}
			tpl.Params.Options = append(tpl.Params.Options, opt)
		}
	}
	return tpl
}

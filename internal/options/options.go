// Package options parses the free-form options a user types for a template.
//
// The accepted syntax is a YAML mapping, usually written in flow style:
//
//	{message: helloworld, mode: loop}
//	{'message': 'hello world', "circle": true, size: 2.5}
//	{positions: [1, 2], nested: {a: null}}
//
// Keys are strings. Values are strings, integers, floats, booleans
// (true/True/false/False), null (null, ~ or None), lists and nested
// mappings. Anchors, aliases, merge keys and custom tags are rejected.
// Blank input means "no options".
package options

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports malformed options text. Line and Column are 1-based and
// zero when unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("argument format: line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return "argument format: " + e.Msg
}

func Parse(input string) (map[string]any, error) {
	if strings.TrimSpace(input) == "" {
		return map[string]any{}, nil
	}
	dec := yaml.NewDecoder(strings.NewReader(input))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, &ParseError{Msg: strings.TrimPrefix(err.Error(), "yaml: ")}
	}
	// A second document or trailing text would otherwise be dropped silently.
	var rest yaml.Node
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		if rest.Line > 0 {
			return nil, nodeError(&rest, "unexpected content after the mapping")
		}
		return nil, &ParseError{Msg: "unexpected content after the mapping"}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return map[string]any{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(root, "options must be a mapping like {key: value}")
	}
	v, err := convert(root)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func nodeError(n *yaml.Node, format string, args ...any) *ParseError {
	return &ParseError{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

func convert(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode || n.Anchor != "" {
		return nil, nodeError(n, "anchors and aliases are not allowed")
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := convert(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode || k.ShortTag() == "!!merge" {
				return nil, nodeError(k, "keys must be plain strings")
			}
			if k.Value == "" {
				return nil, nodeError(k, "empty key")
			}
			if _, dup := out[k.Value]; dup {
				return nil, nodeError(k, "duplicate key %q", k.Value)
			}
			v, err := convert(val)
			if err != nil {
				return nil, err
			}
			out[k.Value] = v
		}
		return out, nil
	}
	return nil, nodeError(n, "unsupported value")
}

func scalar(n *yaml.Node) (any, error) {
	if n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		return n.Value, nil
	}
	switch tag := n.ShortTag(); tag {
	case "!!str", "!!timestamp":
		if n.Style&yaml.TaggedStyle == 0 && n.Value == "None" {
			return nil, nil
		}
		return n.Value, nil
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, nodeError(n, "invalid boolean %q", n.Value)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			return nil, nodeError(n, "invalid number %q", n.Value)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, nodeError(n, "invalid number %q", n.Value)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, nodeError(n, "number %q is not finite", n.Value)
		}
		return f, nil
	default:
		return nil, nodeError(n, "tag %s is not allowed", tag)
	}
}

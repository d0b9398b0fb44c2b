package options

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAccepted(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want map[string]any
	}{
		{"blank", "   \n", map[string]any{}},
		{"quoted python style", `{'message': 'helloworld', 'mode': 'loop'}`, map[string]any{"message": "helloworld", "mode": "loop"}},
		{"bare", `{message: hello world, mode: loop}`, map[string]any{"message": "hello world", "mode": "loop"}},
		{"block", "circle: true\nsize: 3", map[string]any{"circle": true, "size": int64(3)}},
		{"python bools and none", `{a: True, b: False, c: None, d: null, e: ~}`, map[string]any{"a": true, "b": false, "c": nil, "d": nil, "e": nil}},
		{"quoted None stays text", `{a: "None", b: 'true', c: "12"}`, map[string]any{"a": "None", "b": "true", "c": "12"}},
		{"numbers", `{i: -4, f: 2.5, big: 123456789012345678901234567890}`, map[string]any{"i": int64(-4), "f": 2.5, "big": 1.2345678901234568e29}},
		{"nested", `{pos: [1, "two", [3]], inner: {k: v}}`, map[string]any{
			"pos":   []any{int64(1), "two", []any{int64(3)}},
			"inner": map[string]any{"k": "v"},
		}},
		{"empty braces", `{}`, map[string]any{}},
		{"unicode", `{name: 小明}`, map[string]any{"name": "小明"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.in, err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejected(t *testing.T) {
	cases := []struct {
		in      string
		contain string
	}{
		{`{'message': 'hello'`, ""},
		{`[1, 2]`, "must be a mapping"},
		{`just text`, "must be a mapping"},
		{`{a: 1, a: 2}`, "duplicate key"},
		{`{a: &x 1, b: *x}`, "anchors and aliases"},
		{`{<<: {a: 1}}`, "plain strings"},
		{`{[1]: 2}`, ""},
		{`{a: !secret 1}`, "not allowed"},
		{`{a: !!binary aGVsbG8=}`, "not allowed"},
		{`__import__('os').system('rm -rf /')`, ""},
		{`{circle: true}, {mode: loop}`, "after the mapping"},
		{"{a: 1}\n---\n{b: 2}", "after the mapping"},
		{`{a: .inf}`, "not finite"},
		{`{a: -.Inf}`, "not finite"},
		{`{a: [1, .nan]}`, "not finite"},
	}
	for _, c := range cases {
		_, err := Parse(c.in)
		if err == nil {
			t.Fatalf("Parse(%q): expected error", c.in)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q): expected *ParseError, got %T", c.in, err)
		}
		if !strings.HasPrefix(err.Error(), "argument format: ") {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if c.contain != "" && !strings.Contains(err.Error(), c.contain) {
			t.Fatalf("Parse(%q): %q does not mention %q", c.in, err.Error(), c.contain)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("a: 1\nb: [1]\na: 3")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line != 3 || pe.Column != 1 {
		t.Fatalf("unexpected position %d:%d", pe.Line, pe.Column)
	}
}

package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/steipete/memegrep/internal/model"
)

// Cardinality renders "min" or "min ~ max" when max > min.
func Cardinality(min, max int) string {
	if max > min {
		return fmt.Sprintf("%d ~ %d", min, max)
	}
	return strconv.Itoa(min)
}

func ImageCount(tpl model.Template) string {
	return Cardinality(tpl.Params.MinImages, tpl.Params.MaxImages)
}

func TextCount(tpl model.Template) string {
	return Cardinality(tpl.Params.MinTexts, tpl.Params.MaxTexts)
}

// Describe returns the detail text for tpl, one entry per line. Empty
// sections are left out.
func Describe(tpl model.Template) []string {
	lines := []string{
		"Name: " + tpl.Key,
		"Keywords: " + quoteJoin(tpl.Keywords, ", "),
	}

	if len(tpl.Shortcuts) > 0 {
		labels := make([]string, 0, len(tpl.Shortcuts))
		for _, s := range tpl.Shortcuts {
			labels = append(labels, s.Label())
		}
		lines = append(lines, "Shortcuts: "+quoteJoin(labels, ", "))
	}
	if len(tpl.Tags) > 0 {
		tags := append([]string(nil), tpl.Tags...)
		sort.Strings(tags)
		lines = append(lines, "Tags: "+quoteJoin(tags, ", "))
	}
	if len(tpl.Params.DefaultTexts) > 0 {
		lines = append(lines, "Default texts: ["+quoteJoin(tpl.Params.DefaultTexts, ", ")+"]")
	}
	if len(tpl.Params.Options) > 0 {
		lines = append(lines, "Options:")
		for _, opt := range tpl.Params.Options {
			lines = append(lines, "  * "+OptionUsage(opt))
		}
	}
	return lines
}

// OptionUsage formats one option as "--name│alias <arg> help".
func OptionUsage(opt model.ArgOption) string {
	names := append([]string(nil), opt.Names...)
	sort.SliceStable(names, func(i, j int) bool {
		return len([]rune(names[i])) < len([]rune(names[j]))
	})
	var b strings.Builder
	b.WriteString(strings.Join(names, "│"))
	for _, arg := range opt.Args {
		b.WriteString(" <")
		b.WriteString(arg.Name)
		if arg.Value != "" && arg.Value != arg.Name {
			b.WriteString(":")
			b.WriteString(arg.Value)
		}
		b.WriteString(">")
	}
	if opt.HelpText != "" {
		b.WriteString(" ")
		b.WriteString(opt.HelpText)
	}
	return b.String()
}

func quoteJoin(items []string, sep string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, `"`+it+`"`)
	}
	return strings.Join(quoted, sep)
}

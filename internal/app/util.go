package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncateWidth cuts s to at most width terminal cells, so wide CJK keywords
// never spill into the next pane.
func truncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func padWidth(s string, width int) string {
	s = truncateWidth(s, width)
	return runewidth.FillRight(s, width)
}

func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

// wrapWidth breaks s into lines of at most width cells, at spaces where
// possible.
func wrapWidth(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case textWidth(line)+1+textWidth(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
			for textWidth(line) > width {
				head := runewidth.Truncate(line, width, "")
				if head == "" {
					head = string([]rune(line)[:1])
				}
				lines = append(lines, head)
				line = strings.TrimPrefix(line, head)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(minVal, maxVal, v int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// cellAspectRatio is cell width divided by cell height.
func cellAspectRatio() float64 {
	if raw := strings.TrimSpace(os.Getenv("MEMEGREP_CELL_ASPECT")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0.1 && v < 2 {
			return v
		}
	}
	return 0.5
}

// cellPixelWidth approximates how many image pixels one terminal column
// covers, so a box given in pixels can be turned into cells.
func cellPixelWidth() int {
	if raw := strings.TrimSpace(os.Getenv("MEMEGREP_CELL_PX")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v < 64 {
			return v
		}
	}
	return 8
}

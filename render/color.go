package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"nfetch/report"
)

// painter applies SGR attributes when enabled. Each call builds its own
// color.Color so output never depends on fatih/color's global NoColor.
type painter struct {
	enabled bool
}

func (p painter) paint(s string, attrs ...color.Attribute) string {
	if s == "" {
		return s
	}
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// fg returns the foreground attributes for palette index n.
func fg(n int, bold bool) []color.Attribute {
	var attrs []color.Attribute
	switch {
	case n < 8:
		attrs = []color.Attribute{color.FgBlack + color.Attribute(n)}
	case n < 16:
		attrs = []color.Attribute{color.FgHiBlack + color.Attribute(n-8)}
	default:
		attrs = []color.Attribute{38, 5, color.Attribute(n)}
	}
	if bold {
		attrs = append(attrs, color.Bold)
	}
	return attrs
}

// bg returns the background attributes for palette index n.
func bg(n int) []color.Attribute {
	switch {
	case n < 8:
		return []color.Attribute{color.BgBlack + color.Attribute(n)}
	case n < 16:
		return []color.Attribute{color.BgHiBlack + color.Attribute(n-8)}
	default:
		return []color.Attribute{48, 5, color.Attribute(n)}
	}
}

// colorBlocks renders palette indices lo..hi as background-colored cells.
// Colors 0-7 share a row, 8-15 share the next, and every further group of
// eight gets a row of its own. Each row is repeated height times.
func colorBlocks(p painter, lo, hi, width, height int) []string {
	cell := strings.Repeat(" ", width)
	var lines []string
	for start := lo; start <= hi; {
		end := (start/8)*8 + 7
		if end > hi {
			end = hi
		}
		var b strings.Builder
		for n := start; n <= end; n++ {
			b.WriteString(p.paint(cell, bg(n)...))
		}
		for i := 0; i < height; i++ {
			lines = append(lines, b.String())
		}
		start = end + 1
	}
	return lines
}

func unavailableText(err error, verbose bool) string {
	if verbose && err != nil {
		return fmt.Sprintf("%s (%v)", report.Unavailable, err)
	}
	return report.Unavailable
}

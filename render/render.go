// Package render turns a report into terminal text, plain label/value lines
// or JSON.
package render

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"nfetch/ascii"
	"nfetch/config"
	"nfetch/report"
)

// defaultLabelColor is used for labels when no art is drawn.
const defaultLabelColor = 4

// Options control presentation only; they never change which fields appear.
type Options struct {
	Color       bool
	Bold        bool
	Gap         int
	ASCIIColors []int
	Separator   string
	Verbose     bool

	BlockRange  [2]int
	BlockWidth  int
	BlockHeight int
}

// NewOptions derives render options from a validated configuration. color
// is the already-resolved decision of whether to emit escape codes.
func NewOptions(cfg *config.Config, color bool) Options {
	o := Options{
		Color:       color,
		Bold:        cfg.Display.ASCIIBold,
		Gap:         cfg.Display.Gap,
		ASCIIColors: cfg.Display.ASCIIColors,
		Separator:   cfg.Info.Separator,
		Verbose:     cfg.Verbose,
		BlockWidth:  cfg.Format.BlockWidth,
		BlockHeight: cfg.Format.BlockHeight,
	}
	if len(cfg.Format.BlockRange) == 2 {
		o.BlockRange = [2]int{cfg.Format.BlockRange[0], cfg.Format.BlockRange[1]}
	}
	return o
}

func (o Options) palette(art *ascii.ArtBlock) func(i int) int {
	switch {
	case len(o.ASCIIColors) > 0:
		return func(i int) int { return o.ASCIIColors[i%len(o.ASCIIColors)] }
	case art != nil:
		return art.Color
	default:
		return func(int) int { return defaultLabelColor }
	}
}

// Text renders the art and the info column side by side. art may be nil, in
// which case only the info column is printed.
func Text(rep *report.Report, art *ascii.ArtBlock, opts Options) string {
	p := painter{enabled: opts.Color}
	palette := opts.palette(art)
	labelAttrs := fg(palette(0), true)

	var info []string
	for _, e := range rep.Entries {
		switch e.Field {
		case config.FieldTitle:
			if !e.Available() {
				info = append(info, unavailableText(e.Err, opts.Verbose))
				continue
			}
			info = append(info, p.paint(rep.Title.User, labelAttrs...)+"@"+p.paint(rep.Title.Host, labelAttrs...))
		case config.FieldUnderline:
			info = append(info, e.Value)
		case config.FieldColors:
			// Blocks are only meaningful in color.
			if !opts.Color {
				continue
			}
			info = append(info, "")
			info = append(info, colorBlocks(p, opts.BlockRange[0], opts.BlockRange[1], opts.BlockWidth, opts.BlockHeight)...)
		default:
			info = append(info, p.paint(e.Label+opts.Separator, labelAttrs...)+" "+entryValue(e, opts.Verbose))
		}
	}

	var b strings.Builder
	if art == nil {
		for _, line := range info {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return b.String()
	}

	artWidth := 0
	for _, line := range art.Lines {
		if w := VisibleWidth(line); w > artWidth {
			artWidth = w
		}
	}
	gap := strings.Repeat(" ", opts.Gap)

	rows := max(len(art.Lines), len(info))
	for i := 0; i < rows; i++ {
		var artLine, infoLine string
		if i < len(art.Lines) {
			artLine = art.Lines[i]
		}
		if i < len(info) {
			infoLine = info[i]
		}

		attrs := fg(palette(i), opts.Bold)
		if infoLine == "" {
			b.WriteString(p.paint(strings.TrimRight(artLine, " "), attrs...))
		} else {
			b.WriteString(PadRight(p.paint(artLine, attrs...), artWidth))
			b.WriteString(gap)
			b.WriteString(infoLine)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Stdout renders one plain "Label: value" line per field with no art and no
// color. The title and underline are printed bare.
func Stdout(rep *report.Report, opts Options) string {
	var b strings.Builder
	for _, e := range rep.Entries {
		switch e.Field {
		case config.FieldColors:
			continue
		case config.FieldTitle, config.FieldUnderline:
			b.WriteString(entryValue(e, opts.Verbose))
		default:
			fmt.Fprintf(&b, "%s%s %s", e.Label, opts.Separator, entryValue(e, opts.Verbose))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var jsonAPI = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
}.Froze()

// JSON renders available data fields as a flat object in canonical order.
// Decorations and unavailable fields have no key.
func JSON(rep *report.Report) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	var entries []report.Entry
	for _, e := range rep.Entries {
		if e.Decoration() || !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		stream.WriteEmptyObject()
	} else {
		stream.WriteObjectStart()
		for i, e := range entries {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(string(e.Field))
			stream.WriteString(e.Value)
		}
		stream.WriteObjectEnd()
	}
	if stream.Error != nil {
		return nil, fmt.Errorf("encode report: %w", stream.Error)
	}

	out := make([]byte, len(stream.Buffer()), len(stream.Buffer())+1)
	copy(out, stream.Buffer())
	return append(out, '\n'), nil
}

func entryValue(e report.Entry, verbose bool) string {
	if !e.Available() {
		return unavailableText(e.Err, verbose)
	}
	return e.Value
}

// Package report turns probe results into the ordered, formatted entries that
// every output mode renders.
package report

import (
	"nfetch/config"
)

// Unavailable is the text shown for a field whose probe failed.
const Unavailable = "unavailable"

var labels = map[config.Field]string{
	config.FieldOS:         "OS",
	config.FieldHost:       "Host",
	config.FieldKernel:     "Kernel",
	config.FieldUptime:     "Uptime",
	config.FieldPackages:   "Packages",
	config.FieldShell:      "Shell",
	config.FieldResolution: "Resolution",
	config.FieldDE:         "DE",
	config.FieldWM:         "WM",
	config.FieldWMTheme:    "WM Theme",
	config.FieldTerminal:   "Terminal",
	config.FieldCPU:        "CPU",
	config.FieldMemory:     "Memory",
}

// Label returns the display label of f. Title, underline and colors have none.
func Label(f config.Field) string {
	return labels[f]
}

// Entry is one line of the report.
type Entry struct {
	Field config.Field
	Label string

	// Value is the formatted value; empty when Err is set
	Value string

	// Err is the reason the field is unavailable
	Err error
}

// Available reports whether the entry carries a value.
func (e Entry) Available() bool { return e.Err == nil }

// Decoration reports whether the entry is visual only (underline, color
// blocks) and has no data value.
func (e Entry) Decoration() bool {
	return e.Field == config.FieldUnderline || e.Field == config.FieldColors
}

// Title holds the parts of the title line so they can be colored separately.
type Title struct {
	User string
	Host string
}

// Report is the assembled output of one run. It is not modified after
// Assemble returns.
type Report struct {
	Entries []Entry
	Title   Title

	// OSCandidates are identifiers for art selection, most specific first.
	// The platform name is not included.
	OSCandidates []string
}

// Get returns the entry for f, if present.
func (r *Report) Get(f config.Field) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Field == f {
			return e, true
		}
	}
	return Entry{}, false
}

// Package ascii holds the built-in art catalog. The catalog is fixed at
// compile time and safe for concurrent use.
package ascii

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultName is the art used when no identifier matches.
const DefaultName = "linux"

// ErrUnknownArt is returned when an explicitly requested art name does not
// exist in the catalog.
var ErrUnknownArt = errors.New("unknown ascii name")

// ArtBlock is one logo.
type ArtBlock struct {
	Name  string
	Lines []string

	// Colors are palette indices (0-255) applied per line, cycling. A single
	// index colors the whole block.
	Colors []int
}

// Color returns the palette index for line i.
func (a ArtBlock) Color(i int) int {
	if len(a.Colors) == 0 {
		return 7
	}
	return a.Colors[i%len(a.Colors)]
}

// Alternative spellings that name an entry exactly.
var aliases = map[string]string{
	"darwin":        "macos",
	"mac":           "macos",
	"mac_os":        "macos",
	"mac_os_x":      "macos",
	"osx":           "macos",
	"archlinux":     "arch",
	"arch_linux":    "arch",
	"debian_gnu":    "debian",
	"fedora_linux":  "fedora",
	"alpine_linux":  "alpine",
	"manjaro_linux": "manjaro",
	"windows_10":    "windows",
	"windows_11":    "windows",
	"win":           "windows",
	"server":        "windows_server",
	"compact":       "windows_compact",
	"gnu_linux":     "linux",
	"tux":           "linux",
}

// Substring rules, tried in order after exact and alias matches. More
// specific patterns come first.
var rules = []struct {
	contains string
	name     string
}{
	{"windows_server", "windows_server"},
	{"manjaro", "manjaro"},
	{"ubuntu", "ubuntu"},
	{"debian", "debian"},
	{"fedora", "fedora"},
	{"alpine", "alpine"},
	{"freebsd", "freebsd"},
	{"arch", "arch"},
	{"macos", "macos"},
	{"mac_os", "macos"},
	{"darwin", "macos"},
	{"windows", "windows"},
	{"linux", "linux"},
}

var catalog = func() map[string]ArtBlock {
	m := make(map[string]ArtBlock, len(builtin))
	for _, a := range builtin {
		m[a.Name] = a
	}
	return m
}()

// canonicalize lower-cases s and turns every run of spaces, dashes, dots,
// slashes and underscores into a single underscore.
func canonicalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	sep := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '-', '_', '.', '/':
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

func exact(id string) (string, bool) {
	key := canonicalize(id)
	if _, ok := catalog[key]; ok {
		return key, true
	}
	if name, ok := aliases[key]; ok {
		return name, true
	}
	return "", false
}

func fuzzy(id string) (string, bool) {
	key := canonicalize(id)
	if key == "" {
		return "", false
	}
	for _, r := range rules {
		if strings.Contains(key, r.contains) {
			return r.name, true
		}
	}
	return "", false
}

func resolve(id string) (string, bool) {
	if name, ok := exact(id); ok {
		return name, true
	}
	return fuzzy(id)
}

// Match returns the art for the first identifier that matches. Every
// identifier is tried for an exact or alias match before any substring rule,
// so a derivative listing its parent in ID_LIKE gets the parent's logo.
func Match(ids ...string) (ArtBlock, bool) {
	for _, id := range ids {
		if name, ok := exact(id); ok {
			return catalog[name], true
		}
	}
	for _, id := range ids {
		if name, ok := fuzzy(id); ok {
			return catalog[name], true
		}
	}
	return ArtBlock{}, false
}

// Lookup is Match with the default art when nothing matches.
func Lookup(ids ...string) ArtBlock {
	if a, ok := Match(ids...); ok {
		return a
	}
	return catalog[DefaultName]
}

// ForSystem picks the art for a probed system. goos (runtime.GOOS) is only
// consulted once none of the OS identifiers matched, exactly or by
// substring; otherwise "linux" would shadow every distribution family.
func ForSystem(goos string, ids ...string) ArtBlock {
	if a, ok := Match(ids...); ok {
		return a
	}
	return Lookup(goos)
}

// Override returns the art explicitly requested by name. Unlike Lookup it
// never falls back to the default.
func Override(name string) (ArtBlock, error) {
	resolved, ok := resolve(name)
	if !ok {
		return ArtBlock{}, fmt.Errorf("%w %q", ErrUnknownArt, name)
	}
	return catalog[resolved], nil
}

// Names lists the catalog entries in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

package ascii

import (
	"errors"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"exact id", []string{"ubuntu"}, "ubuntu"},
		{"pretty name", []string{"Arch Linux"}, "arch"},
		{"versioned name", []string{"Ubuntu 22.04"}, "ubuntu"},
		{"server edition", []string{"Windows Server 2022 Datacenter"}, "windows_server"},
		{"client edition", []string{"Windows 11 Pro"}, "windows"},
		{"alias", []string{"darwin"}, "macos"},
		{"alias with spaces", []string{"Mac OS X"}, "macos"},
		{"id_like beats substring", []string{"linuxmint", "Linux Mint", "ubuntu", "debian"}, "ubuntu"},
		{"alias on an earlier id wins", []string{"Manjaro Linux", "arch"}, "manjaro"},
		{"manjaro rule precedes arch", []string{"Manjaro ARM Edition"}, "manjaro"},
		{"unknown", []string{"plan9"}, DefaultName},
		{"nothing", nil, DefaultName},
		{"blank", []string{"", "   "}, DefaultName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lookup(tc.ids...); got.Name != tc.want {
				t.Fatalf("Lookup(%q) = %q; want %q", tc.ids, got.Name, tc.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	if _, ok := Match("plan9", "Plan 9 from Bell Labs"); ok {
		t.Fatal("Match found art for plan9")
	}
	if art, ok := Match("ubuntu-core", "Ubuntu Core 22"); !ok || art.Name != "ubuntu" {
		t.Fatalf("Match(ubuntu-core) = %q, %v; want ubuntu", art.Name, ok)
	}
}

func TestForSystem(t *testing.T) {
	tests := []struct {
		name string
		goos string
		ids  []string
		want string
	}{
		{"substring rule beats platform", "linux", []string{"ubuntu-core", "Ubuntu Core", "Ubuntu Core 22"}, "ubuntu"},
		{"derivative name", "linux", []string{"archcraft", "Archcraft"}, "arch"},
		{"exact id", "linux", []string{"fedora"}, "fedora"},
		{"platform when nothing matches", "darwin", []string{"haiku"}, "macos"},
		{"platform when os unreadable", "windows", nil, "windows"},
		{"default for unknown platform", "plan9", nil, DefaultName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ForSystem(tc.goos, tc.ids...); got.Name != tc.want {
				t.Fatalf("ForSystem(%q, %q) = %q; want %q", tc.goos, tc.ids, got.Name, tc.want)
			}
		})
	}
}

func TestOverride(t *testing.T) {
	art, err := Override("Windows_Compact")
	if err != nil {
		t.Fatalf("Override: %v", err)
	}
	if art.Name != "windows_compact" {
		t.Fatalf("Override returned %q", art.Name)
	}

	if art, err := Override("osx"); err != nil || art.Name != "macos" {
		t.Fatalf("Override(osx) = %q, %v", art.Name, err)
	}

	_, err = Override("plan9")
	if !errors.Is(err, ErrUnknownArt) {
		t.Fatalf("Override(plan9) error = %v; want ErrUnknownArt", err)
	}
	if err.Error() != `unknown ascii name "plan9"` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNames(t *testing.T) {
	want := []string{
		"alpine", "arch", "debian", "fedora", "freebsd", "linux",
		"macos", "manjaro", "ubuntu", "windows", "windows_compact", "windows_server",
	}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Names() = %v; want %v", got, want)
	}
}

func TestCatalogEntriesAreWellFormed(t *testing.T) {
	for _, a := range builtin {
		if len(a.Lines) == 0 {
			t.Errorf("%s has no lines", a.Name)
		}
		if len(a.Colors) == 0 {
			t.Errorf("%s has no palette", a.Name)
		}
		for _, c := range a.Colors {
			if c < 0 || c > 255 {
				t.Errorf("%s palette index %d out of range", a.Name, c)
			}
		}
		for i, line := range a.Lines {
			if strings.Contains(line, "\x1b") {
				t.Errorf("%s line %d contains an escape sequence", a.Name, i)
			}
		}
	}
}

func TestArtBlockColorCycles(t *testing.T) {
	a := ArtBlock{Colors: []int{1, 2}}
	for i, want := range []int{1, 2, 1, 2} {
		if got := a.Color(i); got != want {
			t.Errorf("Color(%d) = %d; want %d", i, got, want)
		}
	}
	if got := (ArtBlock{}).Color(3); got != 7 {
		t.Errorf("empty palette Color = %d; want 7", got)
	}
}

func TestCanonicalize(t *testing.T) {
	tests := map[string]string{
		"  Arch Linux ":         "arch_linux",
		"Mac OS X":              "mac_os_x",
		"windows--server__2022": "windows_server_2022",
		"":                      "",
	}
	for in, want := range tests {
		if got := canonicalize(in); got != want {
			t.Errorf("canonicalize(%q) = %q; want %q", in, got, want)
		}
	}
}

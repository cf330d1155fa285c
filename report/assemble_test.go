package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"nfetch/ascii"
	"nfetch/config"
	"nfetch/sysinfo"
)

var errProbe = errors.New("probe failed")

// fakeProber returns canned results. Unset results are unavailable.
type fakeProber struct {
	user       sysinfo.Result[string]
	hostname   sysinfo.Result[string]
	fqdn       sysinfo.Result[string]
	os         sysinfo.Result[sysinfo.OSInfo]
	host       sysinfo.Result[string]
	kernel     sysinfo.Result[string]
	uptime     sysinfo.Result[time.Duration]
	packages   []sysinfo.PackageCount
	shell      sysinfo.Result[sysinfo.ShellInfo]
	resolution sysinfo.Result[string]
	de         sysinfo.Result[string]
	wm         sysinfo.Result[string]
	wmTheme    sysinfo.Result[string]
	terminal   sysinfo.Result[string]
	cpu        sysinfo.Result[sysinfo.CPUInfo]
	cores      map[bool]sysinfo.Result[int]
	speed      map[sysinfo.SpeedStat]sysinfo.Result[float64]
	memory     sysinfo.Result[sysinfo.MemoryInfo]

	panicOn string
}

func (f *fakeProber) hit(name string) {
	if f.panicOn == name {
		panic(name + " exploded")
	}
}

func (f *fakeProber) User() sysinfo.Result[string]     { f.hit("user"); return f.user }
func (f *fakeProber) Hostname() sysinfo.Result[string] { f.hit("hostname"); return f.hostname }
func (f *fakeProber) FQDN(context.Context) sysinfo.Result[string] {
	f.hit("fqdn")
	return f.fqdn
}
func (f *fakeProber) OS() sysinfo.Result[sysinfo.OSInfo] { f.hit("os"); return f.os }
func (f *fakeProber) Host(context.Context) sysinfo.Result[string] {
	f.hit("host")
	return f.host
}
func (f *fakeProber) Kernel() sysinfo.Result[string]        { f.hit("kernel"); return f.kernel }
func (f *fakeProber) Uptime() sysinfo.Result[time.Duration] { f.hit("uptime"); return f.uptime }
func (f *fakeProber) Packages(context.Context) []sysinfo.PackageCount {
	f.hit("packages")
	return f.packages
}
func (f *fakeProber) Shell(_ context.Context, withVersion bool) sysinfo.Result[sysinfo.ShellInfo] {
	f.hit("shell")
	sh, ok := f.shell.Get()
	if ok && !withVersion {
		sh.Version = ""
		return sysinfo.Available(sh)
	}
	return f.shell
}
func (f *fakeProber) Resolution(context.Context) sysinfo.Result[string] {
	f.hit("resolution")
	return f.resolution
}
func (f *fakeProber) DE() sysinfo.Result[string] { f.hit("de"); return f.de }
func (f *fakeProber) WM() sysinfo.Result[string] { f.hit("wm"); return f.wm }
func (f *fakeProber) WMTheme(context.Context) sysinfo.Result[string] {
	f.hit("wm_theme")
	return f.wmTheme
}
func (f *fakeProber) Terminal() sysinfo.Result[string] { f.hit("terminal"); return f.terminal }
func (f *fakeProber) CPU() sysinfo.Result[sysinfo.CPUInfo] { f.hit("cpu"); return f.cpu }
func (f *fakeProber) CPUCores(physical bool) sysinfo.Result[int] {
	f.hit("cpu_cores")
	return f.cores[physical]
}
func (f *fakeProber) CPUSpeed(stat sysinfo.SpeedStat) sysinfo.Result[float64] {
	f.hit("cpu_speed")
	return f.speed[stat]
}
func (f *fakeProber) Memory() sysinfo.Result[sysinfo.MemoryInfo] { f.hit("memory"); return f.memory }

func healthyProber() *fakeProber {
	return &fakeProber{
		user:     sysinfo.Available("ada"),
		hostname: sysinfo.Available("lovelace.example.org"),
		fqdn:     sysinfo.Available("lovelace.example.org"),
		os: sysinfo.Available(sysinfo.OSInfo{
			Pretty:  "Ubuntu 22.04.3 LTS",
			Name:    "Ubuntu",
			Version: "22.04",
			ID:      "ubuntu",
			IDLike:  []string{"debian"},
			Arch:    "x86_64",
		}),
		host:   sysinfo.Available("ThinkPad X1 Carbon Gen 9"),
		kernel: sysinfo.Available("6.5.0-14-generic"),
		uptime: sysinfo.Available(2*24*time.Hour + 3*time.Hour + 14*time.Minute + 9*time.Second),
		packages: []sysinfo.PackageCount{
			{Manager: "dpkg", Count: sysinfo.Available(1203)},
			{Manager: "flatpak", Count: sysinfo.Available(12)},
		},
		shell:      sysinfo.Available(sysinfo.ShellInfo{Path: "/bin/bash", Name: "bash", Version: "5.2.15"}),
		resolution: sysinfo.Available("1920x1080 @ 60Hz"),
		de:         sysinfo.Available("GNOME"),
		wm:         sysinfo.Available("Mutter"),
		wmTheme:    sysinfo.Available("Adwaita"),
		terminal:   sysinfo.Available("xterm-256color"),
		cpu:        sysinfo.Available(sysinfo.CPUInfo{Model: "Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz"}),
		cores: map[bool]sysinfo.Result[int]{
			false: sysinfo.Available(8),
			true:  sysinfo.Available(4),
		},
		speed: map[sysinfo.SpeedStat]sysinfo.Result[float64]{
			sysinfo.SpeedCurrent: sysinfo.Available(2400.0),
			sysinfo.SpeedMax:     sysinfo.Available(4000.0),
		},
		memory: sysinfo.Available(sysinfo.MemoryInfo{Total: 16000000000, Used: 8000000000}),
	}
}

func assemble(t *testing.T, cfg *config.Config, p sysinfo.Prober) *Report {
	t.Helper()
	require.NoError(t, cfg.Validate())
	return NewAssembler(cfg, p, zaptest.NewLogger(t)).Assemble(context.Background())
}

func fields(r *Report) []config.Field {
	var out []config.Field
	for _, e := range r.Entries {
		out = append(out, e.Field)
	}
	return out
}

func value(t *testing.T, r *Report, f config.Field) string {
	t.Helper()
	e, ok := r.Get(f)
	require.True(t, ok, "entry %s missing", f)
	require.True(t, e.Available(), "entry %s unavailable: %v", f, e.Err)
	return e.Value
}

func TestAssembleDefaults(t *testing.T) {
	rep := assemble(t, config.Default(), healthyProber())

	assert.Equal(t, config.AllFields, fields(rep))
	assert.Equal(t, "ada@lovelace.example.org", value(t, rep, config.FieldTitle))
	assert.Equal(t, "------------------------", value(t, rep, config.FieldUnderline))
	assert.Equal(t, "Ubuntu 22.04.3 LTS x86_64", value(t, rep, config.FieldOS))
	assert.Equal(t, "ThinkPad X1 Carbon Gen 9", value(t, rep, config.FieldHost))
	assert.Equal(t, "6.5.0-14-generic", value(t, rep, config.FieldKernel))
	assert.Equal(t, "2 days, 3 hours, 14 mins", value(t, rep, config.FieldUptime))
	assert.Equal(t, "1203 (dpkg), 12 (flatpak)", value(t, rep, config.FieldPackages))
	assert.Equal(t, "bash 5.2.15", value(t, rep, config.FieldShell))
	assert.Equal(t, "1920x1080 @ 60Hz", value(t, rep, config.FieldResolution))
	assert.Equal(t, "GNOME", value(t, rep, config.FieldDE))
	assert.Equal(t, "Mutter", value(t, rep, config.FieldWM))
	assert.Equal(t, "Adwaita", value(t, rep, config.FieldWMTheme))
	assert.Equal(t, "xterm-256color", value(t, rep, config.FieldTerminal))
	assert.Equal(t, "Intel Core i7-8550U (8) @ 2400MHz", value(t, rep, config.FieldCPU))
	assert.Equal(t, "7629MiB / 15259MiB", value(t, rep, config.FieldMemory))

	e, _ := rep.Get(config.FieldOS)
	assert.Equal(t, "OS", e.Label)
	e, _ = rep.Get(config.FieldWMTheme)
	assert.Equal(t, "WM Theme", e.Label)
	assert.Equal(t, Title{User: "ada", Host: "lovelace.example.org"}, rep.Title)
	assert.Equal(t, []string{"ubuntu", "Ubuntu", "Ubuntu 22.04.3 LTS", "debian"}, rep.OSCandidates)
}

func TestAssembleOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Info.DistroShorthand = config.ShorthandOn
	cfg.Info.OSArch = false
	cfg.Info.KernelShorthand = true
	cfg.Info.UptimeShorthand = config.ShorthandTiny
	cfg.Info.PackageManagers = config.ShorthandTiny
	cfg.Info.ShellPath = true
	cfg.Info.ShellVersion = false
	cfg.Info.CPUCores = config.CoresPhysical
	cfg.Info.SpeedType = config.SpeedMax
	cfg.Info.SpeedShorthand = true
	cfg.Info.MemoryUnit = config.UnitGiB
	cfg.Info.MemoryPercent = true
	cfg.Info.UnderlineChar = "="

	rep := assemble(t, cfg, healthyProber())

	assert.Equal(t, "========================", value(t, rep, config.FieldUnderline))
	assert.Equal(t, "Ubuntu 22.04", value(t, rep, config.FieldOS))
	assert.Equal(t, "6.5.0", value(t, rep, config.FieldKernel))
	assert.Equal(t, "2d 3h 14m", value(t, rep, config.FieldUptime))
	assert.Equal(t, "1215 (dpkg, flatpak)", value(t, rep, config.FieldPackages))
	assert.Equal(t, "/bin/bash", value(t, rep, config.FieldShell))
	assert.Equal(t, "Intel Core i7-8550U (4) @ 4.0GHz", value(t, rep, config.FieldCPU))
	assert.Equal(t, "7.45GiB / 14.90GiB (50%)", value(t, rep, config.FieldMemory))

	cfg.Info.DistroShorthand = config.ShorthandTiny
	cfg.Info.CPUCores = config.CoresOff
	cfg.Info.CPUSpeed = false
	rep = assemble(t, cfg, healthyProber())
	assert.Equal(t, "Ubuntu", value(t, rep, config.FieldOS))
	assert.Equal(t, "Intel Core i7-8550U", value(t, rep, config.FieldCPU))
}

func TestAssembleTitleFQDNFallsBackToShortHost(t *testing.T) {
	cfg := config.Default()
	cfg.Info.TitleFQDN = true

	p := healthyProber()
	p.fqdn = sysinfo.Unavailable[string](errProbe)
	rep := assemble(t, cfg, p)
	assert.Equal(t, "ada@lovelace", value(t, rep, config.FieldTitle))
	assert.Equal(t, "------------", value(t, rep, config.FieldUnderline))

	p.fqdn = sysinfo.Available("lovelace.corp.example.org")
	rep = assemble(t, cfg, p)
	assert.Equal(t, "ada@lovelace.corp.example.org", value(t, rep, config.FieldTitle))
}

func TestAssembleUnavailableFieldsKeepTheirSlot(t *testing.T) {
	p := healthyProber()
	p.kernel = sysinfo.Unavailable[string](errProbe)
	p.memory = sysinfo.Unavailable[sysinfo.MemoryInfo](errProbe)
	p.packages = []sysinfo.PackageCount{{Manager: "rpm", Count: sysinfo.Unavailable[int](errProbe)}}
	p.resolution = sysinfo.Unavailable[string](errProbe)
	p.speed = nil

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	rep := NewAssembler(cfg, p, zap.New(core)).Assemble(context.Background())

	for _, f := range []config.Field{config.FieldKernel, config.FieldMemory, config.FieldPackages} {
		e, ok := rep.Get(f)
		require.True(t, ok, "%s should keep its slot", f)
		assert.False(t, e.Available())
		assert.Error(t, e.Err)
	}
	e, _ := rep.Get(config.FieldKernel)
	assert.ErrorIs(t, e.Err, errProbe)
	e, _ = rep.Get(config.FieldPackages)
	assert.ErrorIs(t, e.Err, errProbe)

	_, ok := rep.Get(config.FieldResolution)
	assert.False(t, ok, "resolution is only shown when available")

	assert.Equal(t, "Intel Core i7-8550U (8) @ unavailable", value(t, rep, config.FieldCPU))

	var logged []string
	for _, entry := range logs.FilterMessage("field unavailable").All() {
		logged = append(logged, entry.ContextMap()["field"].(string))
	}
	assert.Subset(t, logged, []string{"kernel", "memory", "packages", "resolution", "cpu_speed"})
}

func TestAssembleIsolatesPanickingProbe(t *testing.T) {
	p := healthyProber()
	p.panicOn = "host"

	core, logs := observer.New(zapcore.WarnLevel)
	rep := NewAssembler(config.Default(), p, zap.New(core)).Assemble(context.Background())

	e, ok := rep.Get(config.FieldHost)
	require.True(t, ok)
	assert.False(t, e.Available())
	assert.Equal(t, "6.5.0-14-generic", value(t, rep, config.FieldKernel))
	assert.Equal(t, 1, logs.FilterMessage("probe panicked").Len())
}

func TestAssembleDisablers(t *testing.T) {
	cfg := config.Default()
	cfg.Info.PackageManagers = config.ShorthandOff
	cfg.Info.Underline = false
	cfg.Format.ColorBlocks = false

	rep := assemble(t, cfg, healthyProber())
	assert.Equal(t, []config.Field{
		config.FieldTitle,
		config.FieldOS,
		config.FieldHost,
		config.FieldKernel,
		config.FieldUptime,
		config.FieldShell,
		config.FieldResolution,
		config.FieldDE,
		config.FieldWM,
		config.FieldWMTheme,
		config.FieldTerminal,
		config.FieldCPU,
		config.FieldMemory,
	}, fields(rep))
}

func TestAssembleFieldSubsetKeepsCanonicalOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Info.Fields = []config.Field{config.FieldMemory, config.FieldOS, config.FieldTitle}

	rep := assemble(t, cfg, healthyProber())
	assert.Equal(t, []config.Field{config.FieldTitle, config.FieldOS, config.FieldMemory}, fields(rep))
}

func TestAssembleNoFields(t *testing.T) {
	cfg := config.Default()
	cfg.Info.Fields = []config.Field{}

	rep := assemble(t, cfg, healthyProber())
	assert.Empty(t, rep.Entries)
	assert.NotEmpty(t, rep.OSCandidates, "the OS is still read to pick the art")
}

var errUndetected = errors.New("not detected")

func TestAssembleOptionalFieldsOnlyWhenDetected(t *testing.T) {
	p := healthyProber()
	p.de = sysinfo.Unavailable[string](errUndetected)
	p.wmTheme = sysinfo.Unavailable[string](errUndetected)
	p.terminal = sysinfo.Unavailable[string](errUndetected)

	core, logs := observer.New(zapcore.DebugLevel)
	rep := NewAssembler(config.Default(), p, zap.New(core)).Assemble(context.Background())

	for _, f := range []config.Field{config.FieldDE, config.FieldWMTheme, config.FieldTerminal} {
		_, ok := rep.Get(f)
		assert.False(t, ok, "%s has no line when it was not detected", f)
	}
	assert.Equal(t, "Mutter", value(t, rep, config.FieldWM))

	var logged []string
	for _, entry := range logs.FilterMessage("field unavailable").All() {
		logged = append(logged, entry.ContextMap()["field"].(string))
	}
	assert.Subset(t, logged, []string{"de", "wm_theme", "terminal"})
}

func TestAssembleOptionalFieldsSkippedWhenDisabled(t *testing.T) {
	p := healthyProber()
	p.panicOn = "wm_theme"

	cfg := config.Default()
	cfg.Info.Fields = []config.Field{config.FieldTerminal, config.FieldKernel}

	core, logs := observer.New(zapcore.WarnLevel)
	rep := NewAssembler(cfg, p, zap.New(core)).Assemble(context.Background())
	assert.Equal(t, []config.Field{config.FieldKernel, config.FieldTerminal}, fields(rep))
	assert.Zero(t, logs.Len(), "a disabled field is never queried")
}

func TestAssembleUnreadableOSHasNoCandidates(t *testing.T) {
	p := healthyProber()
	p.os = sysinfo.Unavailable[sysinfo.OSInfo](errUndetected)

	rep := assemble(t, config.Default(), p)
	assert.Empty(t, rep.OSCandidates)
	assert.Equal(t, "windows", ascii.ForSystem("windows", rep.OSCandidates...).Name)
	assert.Equal(t, ascii.DefaultName, ascii.ForSystem("plan9", rep.OSCandidates...).Name)
}

func TestAssembledCandidatesSelectFamilyArt(t *testing.T) {
	tests := []struct {
		name string
		os   sysinfo.OSInfo
		goos string
		want string
	}{
		{
			name: "substring of the pretty name",
			os:   sysinfo.OSInfo{ID: "ubuntu-core", Name: "Ubuntu Core", Pretty: "Ubuntu Core 22"},
			goos: "linux",
			want: "ubuntu",
		},
		{
			name: "family listed in ID_LIKE",
			os:   sysinfo.OSInfo{ID: "archcraft", Name: "Archcraft", Pretty: "Archcraft", IDLike: []string{"arch"}},
			goos: "linux",
			want: "arch",
		},
		{
			name: "substring of the name",
			os:   sysinfo.OSInfo{ID: "archcraft", Name: "Archcraft", Pretty: "Archcraft"},
			goos: "linux",
			want: "arch",
		},
		{
			name: "unknown distribution",
			os:   sysinfo.OSInfo{ID: "gentoo", Name: "Gentoo", Pretty: "Gentoo Linux"},
			goos: "linux",
			want: "linux",
		},
		{
			name: "unrelated system falls back to the platform",
			os:   sysinfo.OSInfo{ID: "haiku", Name: "Haiku", Pretty: "Haiku R1"},
			goos: "darwin",
			want: "macos",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := healthyProber()
			p.os = sysinfo.Available(tt.os)
			rep := assemble(t, config.Default(), p)
			assert.Equal(t, tt.want, ascii.ForSystem(tt.goos, rep.OSCandidates...).Name)
		})
	}
}

// Package config holds the resolved nfetch configuration: the [info], [display]
// and [format] tables of the TOML file, their defaults and validation.
package config

import (
	"fmt"
	"slices"
	"strings"
)

// Field identifies one line of the report. The order of AllFields is the
// canonical display order.
type Field string

const (
	FieldTitle      Field = "title"
	FieldUnderline  Field = "underline"
	FieldOS         Field = "os"
	FieldHost       Field = "host"
	FieldKernel     Field = "kernel"
	FieldUptime     Field = "uptime"
	FieldPackages   Field = "packages"
	FieldShell      Field = "shell"
	FieldResolution Field = "resolution"
	FieldDE         Field = "de"
	FieldWM         Field = "wm"
	FieldWMTheme    Field = "wm_theme"
	FieldTerminal   Field = "terminal"
	FieldCPU        Field = "cpu"
	FieldMemory     Field = "memory"
	FieldColors     Field = "colors"
)

// AllFields lists every field in canonical order.
var AllFields = []Field{
	FieldTitle,
	FieldUnderline,
	FieldOS,
	FieldHost,
	FieldKernel,
	FieldUptime,
	FieldPackages,
	FieldShell,
	FieldResolution,
	FieldDE,
	FieldWM,
	FieldWMTheme,
	FieldTerminal,
	FieldCPU,
	FieldMemory,
	FieldColors,
}

// Shorthand is the three-way on/off/tiny switch used by several options.
type Shorthand string

const (
	ShorthandOn   Shorthand = "on"
	ShorthandOff  Shorthand = "off"
	ShorthandTiny Shorthand = "tiny"
)

// MemoryUnit selects the binary unit used for the memory field.
type MemoryUnit string

const (
	UnitKiB MemoryUnit = "kib"
	UnitMiB MemoryUnit = "mib"
	UnitGiB MemoryUnit = "gib"
	UnitTiB MemoryUnit = "tib"
)

// CoreMode selects which CPU core count is shown.
type CoreMode string

const (
	CoresLogical  CoreMode = "logical"
	CoresPhysical CoreMode = "physical"
	CoresOff      CoreMode = "off"
)

// SpeedType selects the CPU frequency statistic.
type SpeedType string

const (
	SpeedCurrent SpeedType = "current"
	SpeedMin     SpeedType = "min"
	SpeedMax     SpeedType = "max"
)

// Backend selects whether ASCII art is drawn.
type Backend string

const (
	BackendASCII Backend = "ascii"
	BackendOff   Backend = "off"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// OutputMode is chosen on the command line only.
type OutputMode string

const (
	OutputText   OutputMode = "text"
	OutputStdout OutputMode = "stdout"
	OutputJSON   OutputMode = "json"
)

// Config is the fully resolved configuration. It is read-only once Validate
// has succeeded.
type Config struct {
	Info    InfoConfig    `toml:"info"`
	Display DisplayConfig `toml:"display"`
	Format  FormatConfig  `toml:"format"`

	Output  OutputMode `toml:"-"`
	Verbose bool       `toml:"-"`
}

// InfoConfig is the [info] table.
type InfoConfig struct {
	Fields          []Field    `toml:"fields"`
	TitleFQDN       bool       `toml:"title_fqdn"`
	PackageManagers Shorthand  `toml:"package_managers"`
	OSArch          bool       `toml:"os_arch"`
	DistroShorthand Shorthand  `toml:"distro_shorthand"`
	CPUCores        CoreMode   `toml:"cpu_cores"`
	CPUSpeed        bool       `toml:"cpu_speed"`
	SpeedType       SpeedType  `toml:"speed_type"`
	SpeedShorthand  bool       `toml:"speed_shorthand"`
	KernelShorthand bool       `toml:"kernel_shorthand"`
	UptimeShorthand Shorthand  `toml:"uptime_shorthand"`
	ShellPath       bool       `toml:"shell_path"`
	ShellVersion    bool       `toml:"shell_version"`
	MemoryUnit      MemoryUnit `toml:"memory_unit"`
	MemoryPercent   bool       `toml:"memory_percent"`
	Underline       bool       `toml:"underline"`
	UnderlineChar   string     `toml:"underline_char"`
	Separator       string     `toml:"separator"`
}

// DisplayConfig is the [display] table.
type DisplayConfig struct {
	Backend     Backend   `toml:"backend"`
	ASCII       string    `toml:"ascii"`
	ASCIIColors []int     `toml:"ascii_colors"`
	ASCIIBold   bool      `toml:"ascii_bold"`
	Gap         int       `toml:"gap"`
	Color       ColorMode `toml:"color"`
}

// FormatConfig is the [format] table.
type FormatConfig struct {
	ColorBlocks bool  `toml:"color_blocks"`
	BlockRange  []int `toml:"block_range"`
	BlockWidth  int   `toml:"block_width"`
	BlockHeight int   `toml:"block_height"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Info: InfoConfig{
			Fields:          slices.Clone(AllFields),
			TitleFQDN:       false,
			PackageManagers: ShorthandOn,
			OSArch:          true,
			DistroShorthand: ShorthandOff,
			CPUCores:        CoresLogical,
			CPUSpeed:        true,
			SpeedType:       SpeedCurrent,
			KernelShorthand: false,
			UptimeShorthand: ShorthandOn,
			ShellPath:       false,
			ShellVersion:    true,
			MemoryUnit:      UnitMiB,
			MemoryPercent:   false,
			Underline:       true,
			UnderlineChar:   "-",
			Separator:       ":",
		},
		Display: DisplayConfig{
			Backend:   BackendASCII,
			ASCIIBold: true,
			Gap:       3,
			Color:     ColorAuto,
		},
		Format: FormatConfig{
			ColorBlocks: true,
			BlockRange:  []int{0, 15},
			BlockWidth:  3,
			BlockHeight: 1,
		},
		Output: OutputText,
	}
}

// Enabled reports whether f is listed in info.fields.
func (c *Config) Enabled(f Field) bool {
	return slices.Contains(c.Info.Fields, f)
}

// Error describes an invalid option value.
type Error struct {
	Key    string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid value %v for %s: %s", formatValue(e.Value), e.Key, e.Reason)
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

func oneOf[T ~string](key string, v T, allowed ...T) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return &Error{Key: key, Value: string(v), Reason: "must be one of " + strings.Join(names, ", ")}
}

// Validate checks every enumerated and ranged option. The first problem found
// is returned as an *Error.
func (c *Config) Validate() error {
	for _, f := range c.Info.Fields {
		if !slices.Contains(AllFields, f) {
			return &Error{Key: "info.fields", Value: string(f), Reason: "unknown field"}
		}
	}

	checks := []error{
		oneOf("info.package_managers", c.Info.PackageManagers, ShorthandOn, ShorthandOff, ShorthandTiny),
		oneOf("info.distro_shorthand", c.Info.DistroShorthand, ShorthandOn, ShorthandOff, ShorthandTiny),
		oneOf("info.uptime_shorthand", c.Info.UptimeShorthand, ShorthandOn, ShorthandOff, ShorthandTiny),
		oneOf("info.cpu_cores", c.Info.CPUCores, CoresLogical, CoresPhysical, CoresOff),
		oneOf("info.speed_type", c.Info.SpeedType, SpeedCurrent, SpeedMin, SpeedMax),
		oneOf("info.memory_unit", c.Info.MemoryUnit, UnitKiB, UnitMiB, UnitGiB, UnitTiB),
		oneOf("display.backend", c.Display.Backend, BackendASCII, BackendOff),
		oneOf("display.color", c.Display.Color, ColorAuto, ColorAlways, ColorNever),
		oneOf("output", c.Output, OutputText, OutputStdout, OutputJSON),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if c.Info.Underline && c.Info.UnderlineChar == "" {
		return &Error{Key: "info.underline_char", Value: c.Info.UnderlineChar, Reason: "must not be empty"}
	}
	for _, idx := range c.Display.ASCIIColors {
		if idx < 0 || idx > 255 {
			return &Error{Key: "display.ascii_colors", Value: idx, Reason: "color index must be between 0 and 255"}
		}
	}
	if c.Display.Gap < 0 {
		return &Error{Key: "display.gap", Value: c.Display.Gap, Reason: "must not be negative"}
	}

	if len(c.Format.BlockRange) != 2 {
		return &Error{Key: "format.block_range", Value: c.Format.BlockRange, Reason: "must have exactly two entries"}
	}
	lo, hi := c.Format.BlockRange[0], c.Format.BlockRange[1]
	if lo < 0 || hi > 255 || lo > hi {
		return &Error{Key: "format.block_range", Value: c.Format.BlockRange, Reason: "must satisfy 0 <= start <= end <= 255"}
	}
	if c.Format.BlockWidth < 1 {
		return &Error{Key: "format.block_width", Value: c.Format.BlockWidth, Reason: "must be at least 1"}
	}
	if c.Format.BlockHeight < 1 {
		return &Error{Key: "format.block_height", Value: c.Format.BlockHeight, Reason: "must be at least 1"}
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, AllFields, cfg.Info.Fields)
	assert.Equal(t, 3, cfg.Display.Gap)
	assert.Equal(t, []int{0, 15}, cfg.Format.BlockRange)
	assert.Equal(t, UnitMiB, cfg.Info.MemoryUnit)
	assert.Equal(t, ShorthandOn, cfg.Info.UptimeShorthand)
}

func TestDefaultFieldsAreACopy(t *testing.T) {
	cfg := Default()
	cfg.Info.Fields[0] = FieldMemory
	assert.Equal(t, FieldTitle, AllFields[0])
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	data := []byte(`
[info]
memory_unit = "gib"
memory_percent = true
fields = ["os", "memory"]

[display]
gap = 5
ascii = "arch"

[format]
block_range = [0, 7]
`)
	cfg, err := Parse(data, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, UnitGiB, cfg.Info.MemoryUnit)
	assert.True(t, cfg.Info.MemoryPercent)
	assert.Equal(t, []Field{FieldOS, FieldMemory}, cfg.Info.Fields)
	assert.Equal(t, 5, cfg.Display.Gap)
	assert.Equal(t, "arch", cfg.Display.ASCII)
	assert.Equal(t, []int{0, 7}, cfg.Format.BlockRange)

	// untouched keys keep their defaults
	assert.Equal(t, ShorthandOn, cfg.Info.PackageManagers)
	assert.True(t, cfg.Display.ASCIIBold)
	assert.Equal(t, 3, cfg.Format.BlockWidth)
}

func TestParse_UnknownKeysWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	data := []byte(`
[info]
memory_unit = "kib"
bogus_option = true
`)
	cfg, err := Parse(data, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, UnitKiB, cfg.Info.MemoryUnit)

	warned := false
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			if f.Key == "key" && strings.Contains(f.String, "bogus_option") {
				warned = true
			}
		}
	}
	assert.True(t, warned, "expected a warning naming the unknown key")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("[info\nmemory_unit = "), zap.NewNop())
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nbackend = \"off\"\n"), 0o600))

	cfg, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, BackendOff, cfg.Display.Backend)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"memory unit", func(c *Config) { c.Info.MemoryUnit = "pib" }, "info.memory_unit"},
		{"package managers", func(c *Config) { c.Info.PackageManagers = "maybe" }, "info.package_managers"},
		{"uptime shorthand", func(c *Config) { c.Info.UptimeShorthand = "short" }, "info.uptime_shorthand"},
		{"cpu cores", func(c *Config) { c.Info.CPUCores = "virtual" }, "info.cpu_cores"},
		{"speed type", func(c *Config) { c.Info.SpeedType = "bios" }, "info.speed_type"},
		{"backend", func(c *Config) { c.Display.Backend = "sixel" }, "display.backend"},
		{"unknown field", func(c *Config) { c.Info.Fields = []Field{"gpu"} }, "info.fields"},
		{"block range length", func(c *Config) { c.Format.BlockRange = []int{1} }, "format.block_range"},
		{"block range order", func(c *Config) { c.Format.BlockRange = []int{9, 2} }, "format.block_range"},
		{"block width", func(c *Config) { c.Format.BlockWidth = 0 }, "format.block_width"},
		{"ascii colors", func(c *Config) { c.Display.ASCIIColors = []int{300} }, "display.ascii_colors"},
		{"gap", func(c *Config) { c.Display.Gap = -1 }, "display.gap"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			var cerr *Error
			require.True(t, errors.As(err, &cerr), "expected *Error, got %v", err)
			assert.Equal(t, tc.key, cerr.Key)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestEnabled(t *testing.T) {
	cfg := Default()
	cfg.Info.Fields = []Field{FieldCPU}
	assert.True(t, cfg.Enabled(FieldCPU))
	assert.False(t, cfg.Enabled(FieldTitle))
}

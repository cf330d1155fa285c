package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/nfetch/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nfetch", "config.toml"), nil
}

// LoadDefault loads the per-user config file when it exists and returns the
// defaults otherwise.
func LoadDefault(logger *zap.Logger) (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		logger.Debug("no user config directory", zap.Error(err))
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path, logger)
}

// Load reads the TOML file at path on top of the defaults. Keys the file sets
// replace the defaults; unknown keys are reported through logger and ignored.
func Load(path string, logger *zap.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	cfg, err := Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML content on top of the defaults.
func Parse(data []byte, logger *zap.Logger) (*Config, error) {
	for _, key := range unknownKeys(data) {
		logger.Warn("ignoring unknown configuration key", zap.String("key", key))
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("error parsing config file at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// unknownKeys runs a strict decode purely to collect keys that do not map to
// a Config field. Syntax errors are left for the lenient decode to report.
func unknownKeys(data []byte) []string {
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()

	var scratch Config
	err := d.Decode(&scratch)

	var missing *toml.StrictMissingError
	if !errors.As(err, &missing) {
		return nil
	}
	keys := make([]string, 0, len(missing.Errors))
	for _, e := range missing.Errors {
		keys = append(keys, strings.Join(e.Key(), "."))
	}
	return keys
}

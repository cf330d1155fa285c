package sysinfo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	name    string
	present bool
	count   int
	err     error
	panics  bool
}

func (f fakeManager) Name() string  { return f.name }
func (f fakeManager) Present() bool { return f.present }
func (f fakeManager) Count(context.Context) (int, error) {
	if f.panics {
		panic("corrupt database")
	}
	return f.count, f.err
}

func TestCountPackagesIsolatesFailures(t *testing.T) {
	managers := []PackageManager{
		fakeManager{name: "dpkg", present: true, count: 1203},
		fakeManager{name: "rpm", present: false, count: 99},
		fakeManager{name: "flatpak", present: true, err: errors.New("exit status 1")},
		fakeManager{name: "snap", present: true, panics: true},
		fakeManager{name: "nix", present: true, count: 12},
	}

	counts := CountPackages(context.Background(), managers)
	require.Len(t, counts, 4, "absent managers are skipped")

	assert.Equal(t, "dpkg", counts[0].Manager)
	n, ok := counts[0].Count.Get()
	assert.True(t, ok)
	assert.Equal(t, 1203, n)

	assert.Equal(t, "flatpak", counts[1].Manager)
	assert.False(t, counts[1].Count.OK())
	assert.Contains(t, counts[1].Count.Err().Error(), "flatpak")

	assert.Equal(t, "snap", counts[2].Manager)
	assert.False(t, counts[2].Count.OK())
	assert.Contains(t, counts[2].Count.Err().Error(), "panic")

	n, ok = counts[3].Count.Get()
	assert.True(t, ok)
	assert.Equal(t, 12, n)
}

func TestCountPackagesNoManagers(t *testing.T) {
	assert.Empty(t, CountPackages(context.Background(), nil))
}

func TestParseDpkgStatus(t *testing.T) {
	status := `Package: bash
Status: install ok installed
Version: 5.2

Package: removed-thing
Status: deinstall ok config-files

Package: coreutils
Status: install ok installed
`
	n, err := parseDpkgStatus(strings.NewReader(status))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDpkgManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status")
	m := dpkgManager{status: path}
	assert.False(t, m.Present())

	require.NoError(t, os.WriteFile(path, []byte("Status: install ok installed\n"), 0o644))
	assert.True(t, m.Present())
	n, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDirManager(t *testing.T) {
	root := t.TempDir()
	cellar := filepath.Join(root, "Cellar")
	cask := filepath.Join(root, "Caskroom")
	for _, d := range []string{
		filepath.Join(cellar, "git"),
		filepath.Join(cellar, "wget"),
		filepath.Join(cellar, ".keepme"),
		filepath.Join(cask, "firefox"),
	} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(cellar, "README"), nil, 0o644))

	m := dirManager{name: "brew", dirs: []string{cellar, cask, filepath.Join(root, "missing")}}
	assert.Equal(t, "brew", m.Name())
	assert.True(t, m.Present())
	n, err := m.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n, "hidden directories and plain files are not packages")

	absent := dirManager{name: "scoop", dirs: []string{filepath.Join(root, "nope")}}
	assert.False(t, absent.Present())
}

func TestCommandManagerAbsentBinary(t *testing.T) {
	m := commandManager{name: "ghost", bin: "definitely-not-a-real-package-manager"}
	assert.False(t, m.Present())
}

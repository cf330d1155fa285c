package sysinfo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PackageManager counts the packages installed through one package manager.
type PackageManager interface {
	// Name is the label shown next to the count, e.g. "dpkg"
	Name() string

	// Present reports whether the manager is installed on this machine
	Present() bool

	// Count returns the number of installed packages
	Count(ctx context.Context) (int, error)
}

// PackageCount is the count for a single package manager.
type PackageCount struct {
	Manager string
	Count   Result[int]
}

// CountPackages counts packages for each manager that is present. Managers
// that are absent are skipped; a manager that fails or panics only loses its
// own count.
func CountPackages(ctx context.Context, managers []PackageManager) []PackageCount {
	var counts []PackageCount
	for _, m := range managers {
		if !m.Present() {
			continue
		}
		counts = append(counts, PackageCount{Manager: m.Name(), Count: countSafely(ctx, m)})
	}
	return counts
}

func countSafely(ctx context.Context, m PackageManager) (res Result[int]) {
	defer func() {
		if r := recover(); r != nil {
			res = Unavailable[int](fmt.Errorf("%s: panic: %v", m.Name(), r))
		}
	}()
	n, err := m.Count(ctx)
	if err != nil {
		return Unavailable[int](fmt.Errorf("%s: %w", m.Name(), err))
	}
	return Available(n)
}

// commandManager counts the lines printed by a listing command.
type commandManager struct {
	name   string
	bin    string
	args   []string
	header int // leading lines that are not packages
}

func (m commandManager) Name() string { return m.name }

func (m commandManager) Present() bool {
	_, err := exec.LookPath(m.bin)
	return err == nil
}

func (m commandManager) Count(ctx context.Context) (int, error) {
	out, err := runCommand(ctx, m.bin, m.args...)
	if err != nil {
		return 0, err
	}
	n := countLines(out) - m.header
	if n < 0 {
		n = 0
	}
	return n, nil
}

// dirManager counts entries in the directories a manager installs into.
type dirManager struct {
	name string
	dirs []string
}

func (m dirManager) Name() string { return m.name }

func (m dirManager) Present() bool {
	for _, d := range m.dirs {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			return true
		}
	}
	return false
}

func (m dirManager) Count(context.Context) (int, error) {
	total := 0
	for _, d := range m.dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				total++
			}
		}
	}
	return total, nil
}

// dpkgManager parses the dpkg status database directly, which is much
// faster than running dpkg-query.
type dpkgManager struct {
	status string
}

func (m dpkgManager) Name() string { return "dpkg" }

func (m dpkgManager) Present() bool {
	_, err := os.Stat(m.status)
	return err == nil
}

func (m dpkgManager) Count(context.Context) (int, error) {
	f, err := os.Open(m.status)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return parseDpkgStatus(f)
}

// parseDpkgStatus counts stanzas whose status is "install ok installed".
func parseDpkgStatus(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "Status: install ok installed" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read dpkg status: %w", err)
	}
	return n, nil
}

// homeDir returns the user's home directory or "" if unknown.
func homeDir() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}

// nixManager counts store paths referenced by the user and system profiles.
type nixManager struct{}

func (nixManager) Name() string { return "nix" }

func (nixManager) Present() bool {
	_, err := exec.LookPath("nix-store")
	return err == nil
}

func (nixManager) Count(ctx context.Context) (int, error) {
	profiles := []string{"/run/current-system/sw"}
	if h := homeDir(); h != "" {
		profiles = append(profiles, filepath.Join(h, ".nix-profile"))
	}
	total := 0
	found := false
	for _, p := range profiles {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		found = true
		out, err := runCommand(ctx, "nix-store", "-q", "--requisites", p)
		if err != nil {
			return 0, err
		}
		total += countLines(out)
	}
	if !found {
		return 0, fmt.Errorf("no nix profile found")
	}
	return total, nil
}

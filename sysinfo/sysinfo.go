// Package sysinfo provides cross-platform system information retrieval capabilities.
// Every probe returns a Result: either the value or the reason it could not be
// read. A failing probe never affects any other probe.
package sysinfo

import (
	"context"
	"time"
)

// SpeedStat selects which CPU frequency statistic to read.
type SpeedStat int

const (
	SpeedCurrent SpeedStat = iota
	SpeedMin
	SpeedMax
)

func (s SpeedStat) String() string {
	switch s {
	case SpeedMin:
		return "min"
	case SpeedMax:
		return "max"
	default:
		return "current"
	}
}

// OSInfo describes the installed operating system or distribution.
type OSInfo struct {
	// Pretty is the full display name, e.g. "Ubuntu 22.04.3 LTS"
	Pretty string

	// Name is the bare distribution name, e.g. "Ubuntu"
	Name string

	// Version is the short version, e.g. "22.04"
	Version string

	// ID is the machine-readable identifier, e.g. "ubuntu"
	ID string

	// IDLike lists identifiers of related distributions
	IDLike []string

	// Arch is the machine architecture, e.g. "x86_64"
	Arch string
}

// CPUInfo holds the processor model as reported by the platform.
type CPUInfo struct {
	Model string
}

// MemoryInfo holds physical memory usage in bytes.
type MemoryInfo struct {
	Total uint64
	Used  uint64
}

// ShellInfo describes the user's login shell.
type ShellInfo struct {
	// Path is the full executable path, e.g. "/bin/bash"
	Path string

	// Name is the executable base name, e.g. "bash"
	Name string

	// Version is empty when it was not requested or could not be read
	Version string
}

// Prober is implemented once per platform. The rest of the program depends
// only on this interface.
type Prober interface {
	User() Result[string]
	Hostname() Result[string]
	FQDN(ctx context.Context) Result[string]
	OS() Result[OSInfo]
	Host(ctx context.Context) Result[string]
	Kernel() Result[string]
	Uptime() Result[time.Duration]
	Packages(ctx context.Context) []PackageCount
	Shell(ctx context.Context, withVersion bool) Result[ShellInfo]
	Resolution(ctx context.Context) Result[string]
	DE() Result[string]
	WM() Result[string]
	WMTheme(ctx context.Context) Result[string]
	Terminal() Result[string]
	CPU() Result[CPUInfo]
	CPUCores(physical bool) Result[int]
	CPUSpeed(stat SpeedStat) Result[float64]
	Memory() Result[MemoryInfo]
}

// HostProber reads information about the machine the process runs on.
type HostProber struct {
	managers []PackageManager
}

// Compile-time interface guard.
var _ Prober = (*HostProber)(nil)

// NewProber returns the prober for the current platform.
func NewProber() *HostProber {
	return &HostProber{managers: platformManagers()}
}

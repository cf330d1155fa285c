//go:build !linux && !darwin && !windows

package sysinfo

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

func platformOS() Result[OSInfo] {
	platform, _, version, err := host.PlatformInformation()
	if err != nil || platform == "" {
		platform = runtime.GOOS
	}
	name := platform
	switch strings.ToLower(platform) {
	case "freebsd":
		name = "FreeBSD"
	case "openbsd":
		name = "OpenBSD"
	case "netbsd":
		name = "NetBSD"
	case "dragonfly":
		name = "DragonFly"
	case "solaris", "illumos":
		name = "SunOS"
	}
	return Available(OSInfo{
		Pretty:  strings.TrimSpace(name + " " + version),
		Name:    name,
		Version: version,
		ID:      strings.ToLower(platform),
		Arch:    gopsutilArch(),
	})
}

func platformKernel() Result[string] { return gopsutilKernel() }

func platformUptime() Result[time.Duration] { return gopsutilUptime() }

func platformHost(context.Context) Result[string] {
	return Unavailable[string](ErrUnsupported)
}

func platformCPUModel() Result[string] {
	return Unavailable[string](ErrUnsupported)
}

func platformCPUSpeed(SpeedStat) Result[float64] {
	return Unavailable[float64](ErrUnsupported)
}

func platformShell(ctx context.Context, withVersion bool) Result[ShellInfo] {
	return envShell(ctx, withVersion)
}

func platformResolution(context.Context) Result[string] {
	return Unavailable[string](errors.New("no display found"))
}

func platformManagers() []PackageManager {
	return []PackageManager{
		commandManager{name: "pkg", bin: "pkg", args: []string{"info"}},
		dirManager{name: "pkg_add", dirs: []string{"/var/db/pkg"}},
	}
}

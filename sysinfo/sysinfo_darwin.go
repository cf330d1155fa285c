//go:build darwin

package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

func platformOS() Result[OSInfo] {
	_, _, version, err := host.PlatformInformation()
	if err != nil {
		return Unavailable[OSInfo](err)
	}
	name := "macOS"
	if strings.HasPrefix(version, "10.") && !strings.HasPrefix(version, "10.1") {
		name = "Mac OS X"
	}
	return Available(OSInfo{
		Pretty:  strings.TrimSpace(name + " " + version),
		Name:    name,
		Version: version,
		ID:      "macos",
		IDLike:  []string{"darwin"},
		Arch:    gopsutilArch(),
	})
}

func platformKernel() Result[string] {
	if k := gopsutilKernel(); k.OK() {
		return k
	}
	return From(unix.Sysctl("kern.osrelease"))
}

func platformUptime() Result[time.Duration] {
	if u := gopsutilUptime(); u.OK() {
		return u
	}
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return Unavailable[time.Duration](fmt.Errorf("sysctl kern.boottime: %w", err))
	}
	return Available(time.Since(time.Unix(tv.Unix())).Truncate(time.Second))
}

func platformHost(context.Context) Result[string] {
	model, err := unix.Sysctl("hw.model")
	if err != nil {
		return Unavailable[string](fmt.Errorf("sysctl hw.model: %w", err))
	}
	if model = strings.TrimSpace(model); model == "" {
		return Unavailable[string](errors.New("empty hw.model"))
	}
	return Available(model)
}

func platformCPUModel() Result[string] {
	brand, err := unix.Sysctl("machdep.cpu.brand_string")
	if err != nil {
		return Unavailable[string](fmt.Errorf("sysctl machdep.cpu.brand_string: %w", err))
	}
	return Available(strings.TrimSpace(brand))
}

// Apple Silicon exposes no frequency sysctls, so every statistic is
// unavailable there.
func platformCPUSpeed(stat SpeedStat) Result[float64] {
	key := "hw.cpufrequency"
	switch stat {
	case SpeedMin:
		key = "hw.cpufrequency_min"
	case SpeedMax:
		key = "hw.cpufrequency_max"
	}
	hz, err := unix.SysctlUint64(key)
	if err != nil || hz == 0 {
		return Unavailable[float64](fmt.Errorf("sysctl %s: %w", key, ErrUnsupported))
	}
	return Available(float64(hz) / 1e6)
}

func platformShell(ctx context.Context, withVersion bool) Result[ShellInfo] {
	return envShell(ctx, withVersion)
}

var profilerResolution = regexp.MustCompile(`Resolution:\s*(\d+)\s*x\s*(\d+)`)

func platformResolution(ctx context.Context) Result[string] {
	out, err := runCommand(ctx, "system_profiler", "SPDisplaysDataType")
	if err != nil {
		return Unavailable[string](err)
	}
	var modes []string
	for _, m := range profilerResolution.FindAllStringSubmatch(out, -1) {
		modes = append(modes, m[1]+"x"+m[2])
	}
	if len(modes) == 0 {
		return Unavailable[string](errors.New("no display found"))
	}
	return Available(strings.Join(modes, ", "))
}

func platformDE() Result[string] { return Available("Aqua") }

func platformWM() Result[string] { return Available("Quartz Compositor") }

func platformWMTheme(ctx context.Context) Result[string] {
	return appearanceTheme(runCommand(ctx, "defaults", "read", "-g", "AppleInterfaceStyle"))
}

func platformManagers() []PackageManager {
	return []PackageManager{
		dirManager{name: "brew", dirs: []string{
			"/usr/local/Cellar", "/usr/local/Caskroom",
			"/opt/homebrew/Cellar", "/opt/homebrew/Caskroom",
		}},
		commandManager{name: "port", bin: "port", args: []string{"installed"}, header: 1},
		nixManager{},
		dirManager{name: "pkgsrc", dirs: []string{filepath.Join("/opt", "pkg", "pkgdb")}},
	}
}

package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

const lookupTimeout = time.Second

// versionRegex matches the first dotted version number in tool output.
var versionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// User returns the login name of the current user.
func (p *HostProber) User() Result[string] {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		// Windows reports DOMAIN\user
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
		return Available(name)
	}
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return Available(v)
		}
	}
	return Unavailable[string](errors.New("cannot determine current user"))
}

// Hostname returns the kernel's host name.
func (p *HostProber) Hostname() Result[string] {
	name, err := os.Hostname()
	if err != nil {
		return Unavailable[string](err)
	}
	if name == "" {
		return Unavailable[string](errors.New("empty hostname"))
	}
	return Available(name)
}

// FQDN resolves the fully-qualified domain name of this host.
func (p *HostProber) FQDN(ctx context.Context) Result[string] {
	name, err := os.Hostname()
	if err != nil {
		return Unavailable[string](err)
	}
	if strings.Contains(name, ".") {
		return Available(name)
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if cname, err := net.DefaultResolver.LookupCNAME(ctx, name); err == nil {
		if fqdn := strings.TrimSuffix(cname, "."); strings.Contains(fqdn, ".") {
			return Available(fqdn)
		}
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, name)
	if err != nil {
		return Unavailable[string](fmt.Errorf("resolve %s: %w", name, err))
	}
	for _, addr := range addrs {
		names, err := net.DefaultResolver.LookupAddr(ctx, addr)
		if err != nil {
			continue
		}
		for _, n := range names {
			if fqdn := strings.TrimSuffix(n, "."); strings.Contains(fqdn, ".") {
				return Available(fqdn)
			}
		}
	}
	return Unavailable[string](fmt.Errorf("no domain name found for %s", name))
}

// OS returns the distribution or operating system description.
func (p *HostProber) OS() Result[OSInfo] {
	return platformOS()
}

// Host returns the machine model.
func (p *HostProber) Host(ctx context.Context) Result[string] {
	return platformHost(ctx)
}

// Kernel returns the full kernel release string.
func (p *HostProber) Kernel() Result[string] {
	return platformKernel()
}

// Uptime returns the time since boot.
func (p *HostProber) Uptime() Result[time.Duration] {
	return platformUptime()
}

// Packages counts installed packages for every package manager present.
func (p *HostProber) Packages(ctx context.Context) []PackageCount {
	return CountPackages(ctx, p.managers)
}

// Shell returns the user's shell, optionally with its version.
func (p *HostProber) Shell(ctx context.Context, withVersion bool) Result[ShellInfo] {
	return platformShell(ctx, withVersion)
}

// Resolution returns the connected display resolutions.
func (p *HostProber) Resolution(ctx context.Context) Result[string] {
	return platformResolution(ctx)
}

// CPU returns the processor model name.
func (p *HostProber) CPU() Result[CPUInfo] {
	infos, err := cpu.Info()
	if err == nil && len(infos) > 0 {
		if model := strings.TrimSpace(infos[0].ModelName); model != "" {
			return Available(CPUInfo{Model: model})
		}
	}
	model := platformCPUModel()
	if m, ok := model.Get(); ok {
		return Available(CPUInfo{Model: m})
	}
	if err != nil {
		return Unavailable[CPUInfo](fmt.Errorf("cpu info: %w; fallback: %v", err, model.Err()))
	}
	return Unavailable[CPUInfo](model.Err())
}

// CPUCores returns the physical or logical core count.
func (p *HostProber) CPUCores(physical bool) Result[int] {
	n, err := cpu.Counts(!physical)
	if err == nil && n > 0 {
		return Available(n)
	}
	if !physical {
		return Available(runtime.NumCPU())
	}
	if err == nil {
		err = errors.New("physical core count not reported")
	}
	return Unavailable[int](err)
}

// CPUSpeed returns the requested frequency statistic in MHz. A statistic the
// platform does not expose is unavailable; no other statistic is substituted.
func (p *HostProber) CPUSpeed(stat SpeedStat) Result[float64] {
	return platformCPUSpeed(stat)
}

// Memory returns physical memory totals. Used memory is total minus
// available, which excludes reclaimable caches.
func (p *HostProber) Memory() Result[MemoryInfo] {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Unavailable[MemoryInfo](err)
	}
	if vm.Total == 0 {
		return Unavailable[MemoryInfo](errors.New("total memory reported as zero"))
	}
	used := vm.Used
	if vm.Available > 0 && vm.Available <= vm.Total {
		used = vm.Total - vm.Available
	}
	return Available(MemoryInfo{Total: vm.Total, Used: used})
}

// gopsutilKernel reads the kernel release through gopsutil.
func gopsutilKernel() Result[string] {
	v, err := host.KernelVersion()
	if err != nil {
		return Unavailable[string](err)
	}
	if v = strings.TrimSpace(v); v == "" {
		return Unavailable[string](errors.New("empty kernel version"))
	}
	return Available(v)
}

// gopsutilUptime reads the time since boot through gopsutil.
func gopsutilUptime() Result[time.Duration] {
	secs, err := host.Uptime()
	return From(time.Duration(secs)*time.Second, err)
}

// gopsutilArch returns the kernel architecture, e.g. "x86_64".
func gopsutilArch() string {
	if arch, err := host.KernelArch(); err == nil && arch != "" {
		return arch
	}
	return runtime.GOARCH
}

// envShell reads $SHELL and optionally asks the shell for its version.
func envShell(ctx context.Context, withVersion bool) Result[ShellInfo] {
	path := os.Getenv("SHELL")
	if path == "" {
		return Unavailable[ShellInfo](errors.New("$SHELL is not set"))
	}
	info := ShellInfo{Path: path, Name: filepath.Base(path)}
	if withVersion {
		info.Version = shellVersion(ctx, path)
	}
	return Available(info)
}

// shellVersion runs "<shell> --version" and extracts the version number.
// An empty string means the version could not be determined.
func shellVersion(ctx context.Context, path string) string {
	out, err := runCommand(ctx, path, "--version")
	if err != nil {
		return ""
	}
	return parseVersion(out)
}

// parseVersion returns the first dotted version found on the first
// non-empty line of out.
func parseVersion(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return versionRegex.FindString(line)
	}
	return ""
}

//go:build linux

package sysinfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/acobaugh/osrelease"
	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

func platformOS() Result[OSInfo] {
	release, err := osrelease.Read()
	if err != nil || len(release) == 0 {
		// Fall back to gopsutil's detection, which also knows lsb-release
		platform, _, version, perr := host.PlatformInformation()
		if perr != nil || platform == "" {
			if err == nil {
				err = perr
			}
			if err == nil {
				err = errors.New("no release information")
			}
			return Unavailable[OSInfo](fmt.Errorf("os-release: %w", err))
		}
		name := strings.ToUpper(platform[:1]) + platform[1:]
		return Available(OSInfo{
			Pretty:  strings.TrimSpace(name + " " + version),
			Name:    name,
			Version: version,
			ID:      platform,
			Arch:    gopsutilArch(),
		})
	}
	info := osInfoFromRelease(release)
	info.Arch = gopsutilArch()
	return Available(info)
}

// osInfoFromRelease maps os-release fields onto OSInfo.
func osInfoFromRelease(release map[string]string) OSInfo {
	info := OSInfo{
		Pretty:  release["PRETTY_NAME"],
		Name:    release["NAME"],
		Version: release["VERSION_ID"],
		ID:      strings.ToLower(release["ID"]),
	}
	if like := release["ID_LIKE"]; like != "" {
		info.IDLike = strings.Fields(strings.ToLower(like))
	}
	if info.Name == "" {
		info.Name = "Linux"
	}
	if info.Pretty == "" {
		info.Pretty = strings.TrimSpace(info.Name + " " + info.Version)
	}
	if info.ID == "" {
		info.ID = "linux"
	}
	return info
}

func platformKernel() Result[string] {
	if k := gopsutilKernel(); k.OK() {
		return k
	}
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return Unavailable[string](fmt.Errorf("uname: %w", err))
	}
	return Available(unix.ByteSliceToString(uts.Release[:]))
}

func platformUptime() Result[time.Duration] {
	if u := gopsutilUptime(); u.OK() {
		return u
	}
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return Unavailable[time.Duration](fmt.Errorf("sysinfo: %w", err))
	}
	return Available(time.Duration(info.Uptime) * time.Second)
}

func platformHost(context.Context) Result[string] {
	return hostFromFirmware("/")
}

// Placeholder strings vendors leave in DMI tables.
var dmiJunk = []string{
	"To be filled by O.E.M.",
	"To Be Filled By O.E.M.",
	"OEM",
	"Not Applicable",
	"System Product Name",
	"System Version",
	"Undefined",
	"Default string",
	"Not Specified",
	"Type1ProductConfigId",
	"INVALID",
	"All Series",
	"�",
}

// hostFromFirmware builds the machine model from DMI, falling back to the
// device tree model found on ARM boards. root is "/" outside tests.
func hostFromFirmware(root string) Result[string] {
	dmi := filepath.Join(root, "sys", "devices", "virtual", "dmi", "id")
	var model string
	if name := readTrim(filepath.Join(dmi, "product_name")); name != "" {
		model = strings.TrimSpace(name + " " + readTrim(filepath.Join(dmi, "product_version")))
	} else if board := readTrim(filepath.Join(dmi, "board_name")); board != "" {
		model = strings.TrimSpace(readTrim(filepath.Join(dmi, "board_vendor")) + " " + board)
	} else if dt := readTrim(filepath.Join(root, "sys", "firmware", "devicetree", "base", "model")); dt != "" {
		model = dt
	} else if tmp := readTrim(filepath.Join(root, "tmp", "sysinfo", "model")); tmp != "" {
		model = tmp
	}
	model = cleanDMI(model)
	if model == "" {
		return Unavailable[string](errors.New("no DMI or device tree model"))
	}
	return Available(model)
}

func cleanDMI(s string) string {
	for _, junk := range dmiJunk {
		s = strings.ReplaceAll(s, junk, "")
	}
	s = strings.Trim(s, "\x00")
	return strings.Join(strings.Fields(s), " ")
}

func readTrim(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(string(b), "\x00"))
}

func platformCPUModel() Result[string] {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return Unavailable[string](err)
	}
	defer f.Close()
	return parseCPUModel(f)
}

// parseCPUModel extracts the model from /proc/cpuinfo. Architectures name
// the field differently.
func parseCPUModel(r io.Reader) Result[string] {
	keys := []string{"model name", "Hardware", "Processor", "cpu model", "chip type", "cpu type", "uarch", "cpu"}
	found := map[string]string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, seen := found[key]; !seen {
			found[key] = value
		}
	}
	for _, k := range keys {
		if v, ok := found[k]; ok {
			return Available(v)
		}
	}
	return Unavailable[string](errors.New("no model field in cpuinfo"))
}

func platformCPUSpeed(stat SpeedStat) Result[float64] {
	return cpuFreqFromSysfs("/", stat)
}

// cpuFreqFromSysfs reads cpu0's frequency in kHz and returns MHz.
func cpuFreqFromSysfs(root string, stat SpeedStat) Result[float64] {
	dir := filepath.Join(root, "sys", "devices", "system", "cpu", "cpu0", "cpufreq")
	var names []string
	switch stat {
	case SpeedMin:
		names = []string{"scaling_min_freq", "cpuinfo_min_freq"}
	case SpeedMax:
		names = []string{"scaling_max_freq", "cpuinfo_max_freq"}
	default:
		names = []string{"scaling_cur_freq", "cpuinfo_cur_freq"}
	}
	for _, name := range names {
		s := readTrim(filepath.Join(dir, name))
		if s == "" {
			continue
		}
		khz, err := strconv.ParseFloat(s, 64)
		if err != nil || khz <= 0 {
			continue
		}
		return Available(khz / 1000)
	}
	if stat == SpeedCurrent {
		if mhz := cpuinfoMHz(filepath.Join(root, "proc", "cpuinfo")); mhz > 0 {
			return Available(mhz)
		}
	}
	return Unavailable[float64](fmt.Errorf("%s frequency not exposed by cpufreq", stat))
}

func cpuinfoMHz(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if ok && strings.TrimSpace(key) == "cpu MHz" {
			mhz, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
			return mhz
		}
	}
	return 0
}

func platformShell(ctx context.Context, withVersion bool) Result[ShellInfo] {
	return envShell(ctx, withVersion)
}

var (
	xrandrMode = regexp.MustCompile(`^\s+(\d+)x(\d+)\S*\s`)
	xrandrRate = regexp.MustCompile(`(\d+(?:\.\d+)?)\*`)
)

func platformResolution(ctx context.Context) Result[string] {
	if os.Getenv("DISPLAY") != "" {
		if _, err := exec.LookPath("xrandr"); err == nil {
			if out, err := runCommand(ctx, "xrandr", "--nograb", "--current"); err == nil {
				if res := parseXrandr(out); res != "" {
					return Available(res)
				}
			}
		}
	}
	if res := drmModes("/"); res != "" {
		return Available(res)
	}
	return Unavailable[string](errors.New("no display found"))
}

// parseXrandr lists the active mode of each connected output.
func parseXrandr(out string) string {
	var modes []string
	for _, line := range strings.Split(out, "\n") {
		m := xrandrMode.FindStringSubmatch(line)
		r := xrandrRate.FindStringSubmatch(line)
		if m == nil || r == nil {
			continue
		}
		hz, _ := strconv.ParseFloat(r[1], 64)
		mode := m[1] + "x" + m[2]
		if hz > 0 {
			mode += fmt.Sprintf(" @ %dHz", int(hz+0.5))
		}
		modes = append(modes, mode)
	}
	return strings.Join(modes, ", ")
}

// drmModes reads the preferred mode of every connected DRM connector.
func drmModes(root string) string {
	matches, _ := filepath.Glob(filepath.Join(root, "sys", "class", "drm", "card*-*", "status"))
	var modes []string
	for _, status := range matches {
		if readTrim(status) != "connected" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(filepath.Dir(status), "modes"))
		if err != nil {
			continue
		}
		if first, _, _ := strings.Cut(string(b), "\n"); strings.TrimSpace(first) != "" {
			modes = append(modes, strings.TrimSpace(first))
		}
	}
	return strings.Join(modes, ", ")
}

func platformManagers() []PackageManager {
	managers := []PackageManager{
		dpkgManager{status: "/var/lib/dpkg/status"},
		dirManager{name: "pacman", dirs: []string{"/var/lib/pacman/local"}},
		commandManager{name: "rpm", bin: "rpm", args: []string{"-qa"}},
		commandManager{name: "apk", bin: "apk", args: []string{"info"}},
		commandManager{name: "xbps", bin: "xbps-query", args: []string{"-l"}},
		commandManager{name: "flatpak", bin: "flatpak", args: []string{"list", "--app", "--columns=application"}},
		commandManager{name: "snap", bin: "snap", args: []string{"list"}, header: 1},
		nixManager{},
	}
	if h := homeDir(); h != "" {
		managers = append(managers, dirManager{name: "brew", dirs: []string{
			"/home/linuxbrew/.linuxbrew/Cellar",
			filepath.Join(h, ".linuxbrew", "Cellar"),
		}})
	}
	return managers
}

package report

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"nfetch/config"
	"nfetch/sysinfo"
)

var unitMultiplier = map[config.MemoryUnit]float64{
	config.UnitKiB: 1 << 10,
	config.UnitMiB: 1 << 20,
	config.UnitGiB: 1 << 30,
	config.UnitTiB: 1 << 40,
}

var unitLabel = map[config.MemoryUnit]string{
	config.UnitKiB: "KiB",
	config.UnitMiB: "MiB",
	config.UnitGiB: "GiB",
	config.UnitTiB: "TiB",
}

// ConvertBytes converts a byte count to the given binary unit.
//
// Example: ConvertBytes(1536, config.UnitKiB) returns 1.5
func ConvertBytes(b uint64, unit config.MemoryUnit) float64 {
	m, ok := unitMultiplier[unit]
	if !ok {
		m = unitMultiplier[config.UnitMiB]
	}
	return float64(b) / m
}

// ToBytes is the inverse of ConvertBytes.
func ToBytes(v float64, unit config.MemoryUnit) uint64 {
	m, ok := unitMultiplier[unit]
	if !ok {
		m = unitMultiplier[config.UnitMiB]
	}
	return uint64(math.Round(v * m))
}

// FormatMemory renders used and total memory in unit. KiB and MiB print whole
// numbers; GiB and TiB print two decimals.
//
// Example: 8e9 used of 16e9 in GiB with percent returns "7.45GiB / 14.90GiB (50%)"
func FormatMemory(m sysinfo.MemoryInfo, unit config.MemoryUnit, percent bool) string {
	label, ok := unitLabel[unit]
	if !ok {
		unit, label = config.UnitMiB, unitLabel[config.UnitMiB]
	}
	verb := "%.0f"
	if unit == config.UnitGiB || unit == config.UnitTiB {
		verb = "%.2f"
	}
	used := fmt.Sprintf(verb, ConvertBytes(m.Used, unit))
	total := fmt.Sprintf(verb, ConvertBytes(m.Total, unit))

	s := used + label + " / " + total + label
	if percent && m.Total > 0 {
		s += fmt.Sprintf(" (%d%%)", int(math.Round(float64(m.Used)/float64(m.Total)*100)))
	}
	return s
}

type uptimeUnit struct {
	secs           int64
	on, onPlural   string
	off, offPlural string
	tiny           string
}

var uptimeUnits = []uptimeUnit{
	{86400, "day", "days", "day", "days", "d"},
	{3600, "hour", "hours", "hour", "hours", "h"},
	{60, "min", "mins", "minute", "minutes", "m"},
}

// FormatUptime renders d in days, hours and minutes. Seconds are dropped and
// zero units are omitted.
//
// Example: FormatUptime(93784*time.Second, config.ShorthandTiny) returns "1d 2h 3m"
func FormatUptime(d time.Duration, mode config.Shorthand) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}

	var parts []string
	for i, u := range uptimeUnits {
		n := secs / u.secs
		secs %= u.secs
		last := i == len(uptimeUnits)-1
		if n == 0 && !(last && len(parts) == 0) {
			continue
		}
		switch mode {
		case config.ShorthandTiny:
			parts = append(parts, fmt.Sprintf("%d%s", n, u.tiny))
		case config.ShorthandOff:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, u.off, u.offPlural)))
		default:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, u.on, u.onPlural)))
		}
	}

	if mode == config.ShorthandTiny {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts, ", ")
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

var kernelVersion = regexp.MustCompile(`^\d+(?:\.\d+)*`)

// ShortenKernel trims a kernel release to its leading numeric version.
//
// Example: ShortenKernel("6.5.0-14-generic") returns "6.5.0"
func ShortenKernel(k string) string {
	if v := kernelVersion.FindString(k); v != "" {
		return v
	}
	return k
}

var cpuNoise = strings.NewReplacer(
	"(R)", "",
	"(r)", "",
	"(TM)", "",
	"(tm)", "",
	"®", "",
	"™", "",
)

var cpuWords = regexp.MustCompile(`(?i)\b(?:CPU|Processor)\b`)

// CleanCPUName strips trademark marks, the words CPU and Processor, any
// built-in "@ N.NNGHz" suffix and repeated spaces from a model name.
//
// Example: CleanCPUName("Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz") returns "Intel Core i7-8550U"
func CleanCPUName(model string) string {
	s := cpuNoise.Replace(model)
	if i := strings.Index(s, "@"); i >= 0 {
		s = s[:i]
	}
	s = cpuWords.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, " with Radeon Graphics")
}

// FormatSpeed prints mhz as whole MHz, or as GHz with one decimal when
// shorthand is set.
func FormatSpeed(mhz float64, shorthand bool) string {
	if shorthand {
		return fmt.Sprintf("%.1fGHz", mhz/1000)
	}
	return fmt.Sprintf("%.0fMHz", mhz)
}

// FormatPackages summarizes per-manager counts. Managers that failed or
// counted zero are left out. It returns false when no manager counted
// anything.
//
// Examples: "1203 (dpkg), 12 (flatpak)" for ShorthandOn and
// "1215 (dpkg, flatpak)" for ShorthandTiny.
func FormatPackages(counts []sysinfo.PackageCount, mode config.Shorthand) (string, bool) {
	var (
		parts []string
		names []string
		total int
	)
	for _, pc := range counts {
		n, ok := pc.Count.Get()
		if !ok || n <= 0 {
			continue
		}
		total += n
		names = append(names, pc.Manager)
		parts = append(parts, fmt.Sprintf("%d (%s)", n, pc.Manager))
	}
	if total == 0 {
		return "", false
	}
	if mode == config.ShorthandTiny {
		return fmt.Sprintf("%d (%s)", total, strings.Join(names, ", ")), true
	}
	return strings.Join(parts, ", "), true
}

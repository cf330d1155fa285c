package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"nfetch/config"
	"nfetch/sysinfo"
)

var errNoPackages = errors.New("no package manager reported a count")

// Assembler runs the probes needed by a configuration and builds the Report.
type Assembler struct {
	cfg    *config.Config
	prober sysinfo.Prober
	logger *zap.Logger
}

// NewAssembler returns an Assembler. cfg must already be validated.
func NewAssembler(cfg *config.Config, prober sysinfo.Prober, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{cfg: cfg, prober: prober, logger: logger}
}

// snapshot holds one slot per probe. Each goroutine writes only its own slot.
type snapshot struct {
	user       sysinfo.Result[string]
	hostname   sysinfo.Result[string]
	fqdn       sysinfo.Result[string]
	os         sysinfo.Result[sysinfo.OSInfo]
	host       sysinfo.Result[string]
	kernel     sysinfo.Result[string]
	uptime     sysinfo.Result[time.Duration]
	packages   []sysinfo.PackageCount
	shell      sysinfo.Result[sysinfo.ShellInfo]
	resolution sysinfo.Result[string]
	de         sysinfo.Result[string]
	wm         sysinfo.Result[string]
	wmTheme    sysinfo.Result[string]
	terminal   sysinfo.Result[string]
	cpu        sysinfo.Result[sysinfo.CPUInfo]
	cores      sysinfo.Result[int]
	speed      sysinfo.Result[float64]
	memory     sysinfo.Result[sysinfo.MemoryInfo]
}

// optional returns the slot of a field that is only shown when detected.
func (s *snapshot) optional(f config.Field) sysinfo.Result[string] {
	switch f {
	case config.FieldResolution:
		return s.resolution
	case config.FieldDE:
		return s.de
	case config.FieldWM:
		return s.wm
	case config.FieldWMTheme:
		return s.wmTheme
	default:
		return s.terminal
	}
}

// Assemble probes every enabled field concurrently and returns the entries in
// canonical order. It never fails: a probe that errors or panics produces an
// unavailable entry.
func (a *Assembler) Assemble(ctx context.Context) *Report {
	snap := a.probe(ctx)

	rep := &Report{}
	info := &a.cfg.Info

	title := a.title(snap, rep)
	for _, f := range config.AllFields {
		if !a.cfg.Enabled(f) {
			continue
		}
		var e Entry
		switch f {
		case config.FieldTitle:
			e = title
		case config.FieldUnderline:
			if !info.Underline {
				continue
			}
			width := runewidth.StringWidth(title.Value)
			if !title.Available() {
				width = runewidth.StringWidth(Unavailable)
			}
			e = Entry{Value: strings.Repeat(info.UnderlineChar, width)}
		case config.FieldOS:
			e = a.osEntry(snap.os)
		case config.FieldHost:
			e = fromResult(snap.host, func(s string) string { return s })
		case config.FieldKernel:
			e = fromResult(snap.kernel, func(k string) string {
				if info.KernelShorthand {
					return ShortenKernel(k)
				}
				return k
			})
		case config.FieldUptime:
			e = fromResult(snap.uptime, func(d time.Duration) string {
				return FormatUptime(d, info.UptimeShorthand)
			})
		case config.FieldPackages:
			if info.PackageManagers == config.ShorthandOff {
				continue
			}
			if v, ok := FormatPackages(snap.packages, info.PackageManagers); ok {
				e = Entry{Value: v}
			} else {
				e = Entry{Err: packagesError(snap.packages)}
			}
		case config.FieldShell:
			e = fromResult(snap.shell, a.formatShell)
		case config.FieldResolution, config.FieldDE, config.FieldWM, config.FieldWMTheme, config.FieldTerminal:
			// Only shown when detected.
			r := snap.optional(f)
			v, ok := r.Get()
			if !ok {
				a.logUnavailable(f, r.Err())
				continue
			}
			e = Entry{Value: v}
		case config.FieldCPU:
			e = a.cpuEntry(snap)
		case config.FieldMemory:
			e = fromResult(snap.memory, func(m sysinfo.MemoryInfo) string {
				return FormatMemory(m, info.MemoryUnit, info.MemoryPercent)
			})
		case config.FieldColors:
			if !a.cfg.Format.ColorBlocks {
				continue
			}
		}
		e.Field = f
		e.Label = Label(f)
		if !e.Available() {
			a.logUnavailable(f, e.Err)
		}
		rep.Entries = append(rep.Entries, e)
	}

	rep.OSCandidates = osCandidates(snap.os)
	return rep
}

func (a *Assembler) probe(ctx context.Context) *snapshot {
	var (
		snap snapshot
		wg   sync.WaitGroup
		cfg  = a.cfg
		info = &cfg.Info
	)

	run := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				// The slot keeps its zero value, which is unavailable.
				if r := recover(); r != nil {
					a.logger.Warn("probe panicked", zap.String("probe", name), zap.Any("panic", r))
				}
			}()
			fn()
		}()
	}

	if cfg.Enabled(config.FieldTitle) || (cfg.Enabled(config.FieldUnderline) && info.Underline) {
		run("user", func() { snap.user = a.prober.User() })
		run("hostname", func() { snap.hostname = a.prober.Hostname() })
		if info.TitleFQDN {
			run("fqdn", func() { snap.fqdn = a.prober.FQDN(ctx) })
		}
	}
	// The OS is also needed to pick the art.
	if cfg.Enabled(config.FieldOS) || (cfg.Display.Backend == config.BackendASCII && cfg.Display.ASCII == "") {
		run("os", func() { snap.os = a.prober.OS() })
	}
	if cfg.Enabled(config.FieldHost) {
		run("host", func() { snap.host = a.prober.Host(ctx) })
	}
	if cfg.Enabled(config.FieldKernel) {
		run("kernel", func() { snap.kernel = a.prober.Kernel() })
	}
	if cfg.Enabled(config.FieldUptime) {
		run("uptime", func() { snap.uptime = a.prober.Uptime() })
	}
	if cfg.Enabled(config.FieldPackages) && info.PackageManagers != config.ShorthandOff {
		run("packages", func() { snap.packages = a.prober.Packages(ctx) })
	}
	if cfg.Enabled(config.FieldShell) {
		run("shell", func() { snap.shell = a.prober.Shell(ctx, info.ShellVersion) })
	}
	if cfg.Enabled(config.FieldResolution) {
		run("resolution", func() { snap.resolution = a.prober.Resolution(ctx) })
	}
	if cfg.Enabled(config.FieldDE) {
		run("de", func() { snap.de = a.prober.DE() })
	}
	if cfg.Enabled(config.FieldWM) {
		run("wm", func() { snap.wm = a.prober.WM() })
	}
	if cfg.Enabled(config.FieldWMTheme) {
		run("wm_theme", func() { snap.wmTheme = a.prober.WMTheme(ctx) })
	}
	if cfg.Enabled(config.FieldTerminal) {
		run("terminal", func() { snap.terminal = a.prober.Terminal() })
	}
	if cfg.Enabled(config.FieldCPU) {
		run("cpu", func() { snap.cpu = a.prober.CPU() })
		if info.CPUCores != config.CoresOff {
			run("cpu_cores", func() { snap.cores = a.prober.CPUCores(info.CPUCores == config.CoresPhysical) })
		}
		if info.CPUSpeed {
			run("cpu_speed", func() { snap.speed = a.prober.CPUSpeed(speedStat(info.SpeedType)) })
		}
	}
	if cfg.Enabled(config.FieldMemory) {
		run("memory", func() { snap.memory = a.prober.Memory() })
	}

	wg.Wait()
	return &snap
}

func (a *Assembler) title(snap *snapshot, rep *Report) Entry {
	user, userOK := snap.user.Get()
	host, hostOK := snap.hostname.Get()
	if !userOK {
		return Entry{Err: fmt.Errorf("user: %w", snap.user.Err())}
	}
	if !hostOK {
		return Entry{Err: fmt.Errorf("hostname: %w", snap.hostname.Err())}
	}
	if a.cfg.Info.TitleFQDN {
		if fqdn, ok := snap.fqdn.Get(); ok {
			host = fqdn
		} else {
			a.logUnavailable("fqdn", snap.fqdn.Err())
			host, _, _ = strings.Cut(host, ".")
		}
	}
	rep.Title = Title{User: user, Host: host}
	return Entry{Value: user + "@" + host}
}

func (a *Assembler) osEntry(r sysinfo.Result[sysinfo.OSInfo]) Entry {
	info := &a.cfg.Info
	return fromResult(r, func(o sysinfo.OSInfo) string {
		var s string
		switch info.DistroShorthand {
		case config.ShorthandOn:
			s = strings.TrimSpace(o.Name + " " + o.Version)
		case config.ShorthandTiny:
			s = o.Name
		default:
			s = o.Pretty
		}
		if s == "" {
			s = o.Pretty
		}
		if info.OSArch && o.Arch != "" {
			s += " " + o.Arch
		}
		return s
	})
}

func (a *Assembler) cpuEntry(snap *snapshot) Entry {
	info := &a.cfg.Info
	return fromResult(snap.cpu, func(c sysinfo.CPUInfo) string {
		s := CleanCPUName(c.Model)
		if info.CPUCores != config.CoresOff {
			if n, ok := snap.cores.Get(); ok {
				s += fmt.Sprintf(" (%d)", n)
			} else {
				a.logUnavailable("cpu_cores", snap.cores.Err())
			}
		}
		if info.CPUSpeed {
			if mhz, ok := snap.speed.Get(); ok {
				s += " @ " + FormatSpeed(mhz, info.SpeedShorthand)
			} else {
				a.logUnavailable("cpu_speed", snap.speed.Err())
				s += " @ " + Unavailable
			}
		}
		return s
	})
}

func (a *Assembler) formatShell(sh sysinfo.ShellInfo) string {
	s := sh.Name
	if a.cfg.Info.ShellPath && sh.Path != "" {
		s = sh.Path
	}
	if a.cfg.Info.ShellVersion && sh.Version != "" {
		s += " " + sh.Version
	}
	return s
}

func (a *Assembler) logUnavailable(field config.Field, err error) {
	a.logger.Debug("field unavailable", zap.String("field", string(field)), zap.Error(err))
}

func fromResult[T any](r sysinfo.Result[T], format func(T) string) Entry {
	v, ok := r.Get()
	if !ok {
		return Entry{Err: r.Err()}
	}
	return Entry{Value: format(v)}
}

func packagesError(counts []sysinfo.PackageCount) error {
	var errs []error
	for _, pc := range counts {
		if err := pc.Count.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return errNoPackages
	}
	return fmt.Errorf("%w: %w", errNoPackages, errors.Join(errs...))
}

func speedStat(t config.SpeedType) sysinfo.SpeedStat {
	switch t {
	case config.SpeedMin:
		return sysinfo.SpeedMin
	case config.SpeedMax:
		return sysinfo.SpeedMax
	default:
		return sysinfo.SpeedCurrent
	}
}

// osCandidates lists art identifiers from most to least specific. It is
// empty when the OS could not be read.
func osCandidates(r sysinfo.Result[sysinfo.OSInfo]) []string {
	o, ok := r.Get()
	if !ok {
		return nil
	}
	var ids []string
	for _, id := range append([]string{o.ID, o.Name, o.Pretty}, o.IDLike...) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"nfetch/ascii"
	"nfetch/config"
	"nfetch/render"
	"nfetch/report"
	"nfetch/sysinfo"
)

// options are the flags that steer the command itself rather than the
// configuration.
type options struct {
	configPath string
	noConfig   bool
	json       bool
	stdout     bool
	verbose    bool
	listASCII  bool
}

// overrides hold the configuration flags. A value is copied into the config
// only when its flag was given on the command line.
type overrides struct {
	fields          []string
	titleFQDN       bool
	packageManagers string
	osArch          bool
	distroShorthand string
	memoryUnit      string
	memoryPercent   bool
	cpuCores        string
	cpuSpeed        bool
	speedType       string
	speedShorthand  bool
	kernelShorthand bool
	uptimeShorthand string
	shellPath       bool
	shellVersion    bool

	ascii       string
	asciiBold   bool
	asciiColors []int
	backend     string
	gap         int
	color       string

	colorBlocks bool
	blockRange  []int
	blockWidth  int
	blockHeight int
}

func newRootCmd(prober sysinfo.Prober) *cobra.Command {
	var (
		opts options
		ov   overrides
	)

	cmd := &cobra.Command{
		Use:   "nfetch",
		Short: "Show system information next to an ASCII logo",
		Long: `nfetch prints a short summary of the running system (OS, host, kernel,
uptime, packages, shell, desktop, terminal, CPU and memory) next to the logo
of the detected operating system.

Options are read from ~/.config/nfetch/config.toml when it exists; flags given
on the command line take precedence over the file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, &ov, prober)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitConfig, err: err}
	})

	fs := cmd.Flags()
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	fs.BoolVar(&opts.noConfig, "no-config", false, "ignore the config file and use the defaults")
	fs.BoolVar(&opts.json, "json", false, "print the report as a JSON object")
	fs.BoolVar(&opts.stdout, "stdout", false, "print plain \"Label: value\" lines without art or color")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr and show why fields are unavailable")
	fs.BoolVar(&opts.listASCII, "list-ascii", false, "list the built-in logos and exit")

	registerOverrides(fs, &ov, config.Default())
	return cmd
}

// registerOverrides defines the configuration flags with the built-in
// defaults shown in the help text.
func registerOverrides(fs *pflag.FlagSet, ov *overrides, def *config.Config) {
	fieldNames := make([]string, len(def.Info.Fields))
	for i, f := range def.Info.Fields {
		fieldNames[i] = string(f)
	}

	fs.StringSliceVar(&ov.fields, "fields", fieldNames, "fields to show, in canonical order")
	fs.BoolVar(&ov.titleFQDN, "title-fqdn", def.Info.TitleFQDN, "use the fully qualified hostname in the title")
	fs.StringVar(&ov.packageManagers, "package-managers", string(def.Info.PackageManagers), "package manager breakdown: on, off or tiny")
	fs.BoolVar(&ov.osArch, "os-arch", def.Info.OSArch, "append the architecture to the OS")
	fs.StringVar(&ov.distroShorthand, "distro-shorthand", string(def.Info.DistroShorthand), "OS name length: on, off or tiny")
	fs.StringVar(&ov.memoryUnit, "memory-unit", string(def.Info.MemoryUnit), "memory unit: kib, mib, gib or tib")
	fs.BoolVar(&ov.memoryPercent, "memory-percent", def.Info.MemoryPercent, "append the memory usage percentage")
	fs.StringVar(&ov.cpuCores, "cpu-cores", string(def.Info.CPUCores), "core count: logical, physical or off")
	fs.BoolVar(&ov.cpuSpeed, "cpu-speed", def.Info.CPUSpeed, "show the CPU frequency")
	fs.StringVar(&ov.speedType, "speed-type", string(def.Info.SpeedType), "CPU frequency statistic: current, min or max")
	fs.BoolVar(&ov.speedShorthand, "speed-shorthand", def.Info.SpeedShorthand, "round the CPU frequency")
	fs.BoolVar(&ov.kernelShorthand, "kernel-shorthand", def.Info.KernelShorthand, "show only the numeric kernel version")
	fs.StringVar(&ov.uptimeShorthand, "uptime-shorthand", string(def.Info.UptimeShorthand), "uptime units: on, off or tiny")
	fs.BoolVar(&ov.shellPath, "shell-path", def.Info.ShellPath, "show the full path of the shell")
	fs.BoolVar(&ov.shellVersion, "shell-version", def.Info.ShellVersion, "show the shell version")

	fs.StringVar(&ov.ascii, "ascii", def.Display.ASCII, "logo to draw instead of the detected one (see --list-ascii)")
	fs.BoolVar(&ov.asciiBold, "ascii-bold", def.Display.ASCIIBold, "draw the logo in bold")
	fs.IntSliceVar(&ov.asciiColors, "ascii-colors", def.Display.ASCIIColors, "palette indices for the logo lines")
	fs.StringVar(&ov.backend, "backend", string(def.Display.Backend), "image backend: ascii or off")
	fs.IntVar(&ov.gap, "gap", def.Display.Gap, "spaces between the logo and the info column")
	fs.StringVar(&ov.color, "color", string(def.Display.Color), "when to use color: auto, always or never")

	fs.BoolVar(&ov.colorBlocks, "color-blocks", def.Format.ColorBlocks, "draw the terminal palette under the info")
	fs.IntSliceVar(&ov.blockRange, "block-range", def.Format.BlockRange, "first and last palette index of the color blocks")
	fs.IntVar(&ov.blockWidth, "block-width", def.Format.BlockWidth, "width of one color block")
	fs.IntVar(&ov.blockHeight, "block-height", def.Format.BlockHeight, "height of one color block")
}

// applyOverrides copies every flag that was set on the command line into cfg.
func applyOverrides(fs *pflag.FlagSet, ov *overrides, cfg *config.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	info, display, format := &cfg.Info, &cfg.Display, &cfg.Format

	set("fields", func() {
		info.Fields = make([]config.Field, len(ov.fields))
		for i, f := range ov.fields {
			info.Fields[i] = config.Field(f)
		}
	})
	set("title-fqdn", func() { info.TitleFQDN = ov.titleFQDN })
	set("package-managers", func() { info.PackageManagers = config.Shorthand(ov.packageManagers) })
	set("os-arch", func() { info.OSArch = ov.osArch })
	set("distro-shorthand", func() { info.DistroShorthand = config.Shorthand(ov.distroShorthand) })
	set("memory-unit", func() { info.MemoryUnit = config.MemoryUnit(ov.memoryUnit) })
	set("memory-percent", func() { info.MemoryPercent = ov.memoryPercent })
	set("cpu-cores", func() { info.CPUCores = config.CoreMode(ov.cpuCores) })
	set("cpu-speed", func() { info.CPUSpeed = ov.cpuSpeed })
	set("speed-type", func() { info.SpeedType = config.SpeedType(ov.speedType) })
	set("speed-shorthand", func() { info.SpeedShorthand = ov.speedShorthand })
	set("kernel-shorthand", func() { info.KernelShorthand = ov.kernelShorthand })
	set("uptime-shorthand", func() { info.UptimeShorthand = config.Shorthand(ov.uptimeShorthand) })
	set("shell-path", func() { info.ShellPath = ov.shellPath })
	set("shell-version", func() { info.ShellVersion = ov.shellVersion })

	set("ascii", func() { display.ASCII = ov.ascii })
	set("ascii-bold", func() { display.ASCIIBold = ov.asciiBold })
	set("ascii-colors", func() { display.ASCIIColors = ov.asciiColors })
	set("backend", func() { display.Backend = config.Backend(ov.backend) })
	set("gap", func() { display.Gap = ov.gap })
	set("color", func() { display.Color = config.ColorMode(ov.color) })

	set("color-blocks", func() { format.ColorBlocks = ov.colorBlocks })
	set("block-range", func() { format.BlockRange = ov.blockRange })
	set("block-width", func() { format.BlockWidth = ov.blockWidth })
	set("block-height", func() { format.BlockHeight = ov.blockHeight })
}

func loadConfig(opts *options, logger *zap.Logger) (*config.Config, error) {
	switch {
	case opts.noConfig:
		return config.Default(), nil
	case opts.configPath != "":
		return config.Load(opts.configPath, logger)
	default:
		return config.LoadDefault(logger)
	}
}

// resolveConfig loads the file, applies the command line on top and
// validates the result.
func resolveConfig(cmd *cobra.Command, opts *options, ov *overrides, logger *zap.Logger) (*config.Config, error) {
	if opts.json && opts.stdout {
		return nil, errors.New("--json and --stdout cannot be combined")
	}
	if opts.noConfig && opts.configPath != "" {
		return nil, errors.New("--config and --no-config cannot be combined")
	}

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return nil, err
	}
	applyOverrides(cmd.Flags(), ov, cfg)

	cfg.Verbose = opts.verbose
	switch {
	case opts.json:
		cfg.Output = config.OutputJSON
	case opts.stdout:
		cfg.Output = config.OutputStdout
	default:
		cfg.Output = config.OutputText
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, ov *overrides, prober sysinfo.Prober) error {
	out := cmd.OutOrStdout()

	if opts.listASCII {
		for _, name := range ascii.Names() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger, err := config.NewLogger(level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := resolveConfig(cmd, opts, ov, logger)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	// An explicit name is checked before any probe runs.
	var art *ascii.ArtBlock
	if cfg.Display.ASCII != "" {
		a, err := ascii.Override(cfg.Display.ASCII)
		if err != nil {
			return &exitError{code: exitUnknownArt, err: err}
		}
		art = &a
	}

	rep := report.NewAssembler(cfg, prober, logger).Assemble(cmd.Context())

	if cfg.Display.Backend == config.BackendOff {
		art = nil
	} else if art == nil {
		a := ascii.ForSystem(runtime.GOOS, rep.OSCandidates...)
		logger.Debug("selected ascii art", zap.String("name", a.Name), zap.Strings("candidates", rep.OSCandidates))
		art = &a
	}

	var text string
	switch cfg.Output {
	case config.OutputJSON:
		b, err := render.JSON(rep)
		if err != nil {
			return err
		}
		text = string(b)
	case config.OutputStdout:
		text = render.Stdout(rep, render.NewOptions(cfg, false))
	default:
		text = render.Text(rep, art, render.NewOptions(cfg, colorEnabled(cfg.Display.Color, out)))
	}

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// colorEnabled resolves the color mode. In auto mode color is used only when
// out is a terminal and NO_COLOR is unset.
func colorEnabled(mode config.ColorMode, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

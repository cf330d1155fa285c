package sysinfo

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	errNoDesktop  = errors.New("no desktop session detected")
	errNoWM       = errors.New("no window manager detected")
	errNoTerminal = errors.New("no terminal detected")
)

// DE returns the desktop environment of the current session.
func (p *HostProber) DE() Result[string] {
	return platformDE()
}

// WM returns the window manager of the current session.
func (p *HostProber) WM() Result[string] {
	return platformWM()
}

// WMTheme returns the window manager theme or system appearance.
func (p *HostProber) WMTheme(ctx context.Context) Result[string] {
	return platformWMTheme(ctx)
}

// Terminal returns the terminal emulator the process runs in.
func (p *HostProber) Terminal() Result[string] {
	return terminalFromEnv(os.Getenv)
}

// desktopFromEnv reads the desktop environment from the session variables
// set by display managers.
func desktopFromEnv(getenv func(string) string) Result[string] {
	if de := getenv("XDG_CURRENT_DESKTOP"); de != "" {
		// "ubuntu:GNOME" lists the flavour first and the desktop last
		parts := strings.Split(de, ":")
		return Available(parts[len(parts)-1])
	}
	if session := getenv("DESKTOP_SESSION"); session != "" {
		return Available(filepath.Base(session))
	}
	if getenv("GNOME_DESKTOP_SESSION_ID") != "" {
		return Available("GNOME")
	}
	if getenv("KDE_FULL_SESSION") != "" {
		return Available("KDE")
	}
	return Unavailable[string](errNoDesktop)
}

// Window managers that ship with a desktop, keyed by lower-case desktop name.
var desktopWMs = map[string]string{
	"gnome":    "Mutter",
	"kde":      "KWin",
	"plasma":   "KWin",
	"xfce":     "Xfwm4",
	"cinnamon": "Muffin",
	"mate":     "Marco",
	"lxqt":     "Openbox",
	"budgie":   "Mutter",
}

// Display names of standalone window managers started as a session.
var sessionWMs = map[string]string{
	"i3":       "i3",
	"sway":     "sway",
	"awesome":  "awesome",
	"bspwm":    "bspwm",
	"openbox":  "Openbox",
	"hyprland": "Hyprland",
	"dwm":      "dwm",
	"xmonad":   "xmonad",
}

// wmFromEnv infers the window manager from the session variables.
func wmFromEnv(getenv func(string) string) Result[string] {
	if getenv("GNOME_DESKTOP_SESSION_ID") != "" {
		return Available("Mutter")
	}
	if getenv("KDE_FULL_SESSION") != "" {
		return Available("KWin")
	}
	for _, de := range strings.Split(getenv("XDG_CURRENT_DESKTOP"), ":") {
		if wm, ok := desktopWMs[strings.ToLower(de)]; ok {
			return Available(wm)
		}
	}
	if session := getenv("DESKTOP_SESSION"); session != "" {
		session = filepath.Base(session)
		if wm, ok := sessionWMs[strings.ToLower(session)]; ok {
			return Available(wm)
		}
		if wm, ok := desktopWMs[strings.ToLower(session)]; ok {
			return Available(wm)
		}
		return Available(session)
	}
	return Unavailable[string](errNoWM)
}

// terminalFromEnv identifies the terminal emulator. Windows Terminal sets
// WT_SESSION, most others TERM_PROGRAM; TERM is the last resort.
func terminalFromEnv(getenv func(string) string) Result[string] {
	if getenv("WT_SESSION") != "" {
		return Available("Windows Terminal")
	}
	if term := getenv("TERM_PROGRAM"); term != "" {
		return Available(term)
	}
	if term := getenv("TERM"); term != "" && term != "dumb" {
		return Available(term)
	}
	return Unavailable[string](errNoTerminal)
}

// appearanceTheme maps the output of "defaults read -g AppleInterfaceStyle"
// to a theme name. The key only exists in dark mode, so a failed read means
// the light appearance.
func appearanceTheme(out string, err error) Result[string] {
	if errors.Is(err, exec.ErrNotFound) {
		return Unavailable[string](err)
	}
	if err == nil && strings.TrimSpace(out) == "Dark" {
		return Available("Blue (Dark)")
	}
	return Available("Blue (Light)")
}

// windowsShell names the Explorer design language of a Windows release.
func windowsShell(major, minor, build uint32) string {
	switch {
	case major >= 10 && build >= 22000:
		return "Fluent"
	case major >= 10, major == 6 && minor >= 2:
		return "Metro"
	default:
		return "Aero"
	}
}

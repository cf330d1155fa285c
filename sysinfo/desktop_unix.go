//go:build !darwin && !windows

package sysinfo

import (
	"context"
	"os"
)

func platformDE() Result[string] { return desktopFromEnv(os.Getenv) }

func platformWM() Result[string] { return wmFromEnv(os.Getenv) }

// X11 and Wayland window managers keep their theme in per-WM config files;
// there is no common place to read it from.
func platformWMTheme(context.Context) Result[string] {
	return Unavailable[string](ErrUnsupported)
}

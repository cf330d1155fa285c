//go:build windows

package sysinfo

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var psJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// runPowerShell runs a PowerShell command and returns raw stdout. The command
// runs with -NoProfile and a hidden window under commandTimeout.
func runPowerShell(ctx context.Context, cmd string) (string, error) {
	return runCommand(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", cmd)
}

// runPowerShellJSON runs a PowerShell command expected to emit JSON and
// decodes it into v.
func runPowerShellJSON(ctx context.Context, cmd string, v any) error {
	out, err := runPowerShell(ctx, cmd)
	if err != nil {
		return err
	}
	if err := psJSON.UnmarshalFromString(out, v); err != nil {
		return fmt.Errorf("decode powershell output: %w", err)
	}
	return nil
}

//go:build windows

package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"github.com/shirou/gopsutil/v4/cpu"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")
	moduser32   = windows.NewLazySystemDLL("user32.dll")

	procGetTickCount64           = modkernel32.NewProc("GetTickCount64")
	procGetSystemMetrics         = moduser32.NewProc("GetSystemMetrics")
	procRtlGetVersion            = windows.NewLazySystemDLL("ntdll.dll").NewProc("RtlGetVersion")
	procCreateToolhelp32Snapshot = modkernel32.NewProc("CreateToolhelp32Snapshot")
	procProcess32FirstW          = modkernel32.NewProc("Process32FirstW")
	procProcess32NextW           = modkernel32.NewProc("Process32NextW")
)

const currentVersionKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`

func platformOS() Result[OSInfo] {
	productName := getRegistryString(registry.LOCAL_MACHINE, currentVersionKey, "ProductName")
	if productName == "" {
		return Unavailable[OSInfo](errors.New("registry ProductName not found"))
	}
	displayVersion := getRegistryString(registry.LOCAL_MACHINE, currentVersionKey, "DisplayVersion")

	// Windows 11 still reports "Windows 10" in ProductName; the build number
	// tells them apart.
	if _, _, build, err := rtlGetVersion(); err == nil && build >= 22000 {
		productName = strings.Replace(productName, "Windows 10", "Windows 11", 1)
	}

	info := OSInfo{
		Pretty:  strings.TrimSpace(productName + " " + displayVersion),
		Name:    productName,
		Version: displayVersion,
		ID:      "windows",
		Arch:    gopsutilArch(),
	}
	if isWindowsServer(productName) {
		info.ID = "windows_server"
		info.IDLike = []string{"windows"}
	}
	return Available(info)
}

// isWindowsServer reports whether productName names a Server edition.
func isWindowsServer(productName string) bool {
	return strings.Contains(strings.ToLower(productName), "server")
}

func platformKernel() Result[string] {
	maj, mnr, build, err := rtlGetVersion()
	if err == nil {
		return Available(fmt.Sprintf("%d.%d.%d", maj, mnr, build))
	}
	if k := gopsutilKernel(); k.OK() {
		return k
	}
	return Unavailable[string](err)
}

func platformUptime() Result[time.Duration] {
	ret, _, _ := procGetTickCount64.Call()
	if ret != 0 {
		return Available((time.Duration(ret) * time.Millisecond).Truncate(time.Second))
	}
	return gopsutilUptime()
}

// platformHost prefers the registry, which is instant, and only starts
// PowerShell when the firmware left it empty.
func platformHost(ctx context.Context) Result[string] {
	const sysInfoKey = `SYSTEM\CurrentControlSet\Control\SystemInformation`
	const biosKey = `HARDWARE\DESCRIPTION\System\BIOS`

	manufacturer := getRegistryString(registry.LOCAL_MACHINE, sysInfoKey, "SystemManufacturer")
	model := getRegistryString(registry.LOCAL_MACHINE, sysInfoKey, "SystemProductName")
	if manufacturer == "" {
		manufacturer = getRegistryString(registry.LOCAL_MACHINE, biosKey, "SystemManufacturer")
	}
	if model == "" {
		model = getRegistryString(registry.LOCAL_MACHINE, biosKey, "SystemProductName")
	}

	if model == "" {
		var cs struct {
			Manufacturer string
			Model        string
		}
		psCmd := "Get-CimInstance Win32_ComputerSystem | Select-Object -First 1 -Property Manufacturer,Model | ConvertTo-Json -Compress"
		if err := runPowerShellJSON(ctx, psCmd, &cs); err == nil {
			manufacturer, model = cs.Manufacturer, cs.Model
		}
	}

	host := strings.Join(strings.Fields(manufacturer+" "+model), " ")
	if host == "" {
		return Unavailable[string](errors.New("system model not found"))
	}
	return Available(host)
}

func platformCPUModel() Result[string] {
	name := getRegistryString(registry.LOCAL_MACHINE, `HARDWARE\DESCRIPTION\System\CentralProcessor\0`, "ProcessorNameString")
	if name = strings.TrimSpace(name); name == "" {
		return Unavailable[string](errors.New("registry ProcessorNameString not found"))
	}
	return Available(name)
}

// Windows exposes the nominal speed (~MHz) and the rated maximum. There is
// no minimum.
func platformCPUSpeed(stat SpeedStat) Result[float64] {
	switch stat {
	case SpeedMin:
		return Unavailable[float64](fmt.Errorf("min frequency: %w", ErrUnsupported))
	case SpeedMax:
		infos, err := cpu.Info()
		if err != nil {
			return Unavailable[float64](err)
		}
		if len(infos) == 0 || infos[0].Mhz <= 0 {
			return Unavailable[float64](errors.New("max frequency not reported"))
		}
		return Available(infos[0].Mhz)
	default:
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DESCRIPTION\System\CentralProcessor\0`, registry.QUERY_VALUE)
		if err != nil {
			return Unavailable[float64](err)
		}
		defer func() { _ = k.Close() }()
		mhz, _, err := k.GetIntegerValue("~MHz")
		if err != nil {
			return Unavailable[float64](err)
		}
		return Available(float64(mhz))
	}
}

func platformShell(ctx context.Context, withVersion bool) Result[ShellInfo] {
	parent := getParentProcessName()
	lower := strings.ToLower(parent)
	switch {
	case strings.Contains(lower, "pwsh"), strings.Contains(lower, "powershell"):
		bin := strings.TrimSuffix(lower, ".exe")
		info := ShellInfo{Path: parent, Name: bin}
		if path, err := exec.LookPath(bin); err == nil {
			info.Path = path
		}
		if withVersion {
			info.Version = getPowerShellVersion(ctx, bin)
		}
		return Available(info)
	case strings.Contains(lower, "cmd"):
		path := os.Getenv("COMSPEC")
		if path == "" {
			path = parent
		}
		return Available(ShellInfo{Path: path, Name: "cmd"})
	case parent != "" && !strings.Contains(lower, "windowsterminal") && !strings.Contains(lower, "explorer"):
		// bash.exe, nu.exe and friends
		name := strings.TrimSuffix(filepath.Base(parent), filepath.Ext(parent))
		info := ShellInfo{Path: parent, Name: name}
		if withVersion {
			info.Version = shellVersion(ctx, parent)
		}
		return Available(info)
	}
	if os.Getenv("SHELL") != "" {
		return envShell(ctx, withVersion)
	}
	if comspec := os.Getenv("COMSPEC"); comspec != "" {
		return Available(ShellInfo{Path: comspec, Name: "cmd"})
	}
	return Unavailable[ShellInfo](errors.New("parent shell not found"))
}

// getPowerShellVersion returns $PSVersionTable.PSVersion for bin ("pwsh" or
// "powershell"), or "" on failure.
func getPowerShellVersion(ctx context.Context, bin string) string {
	out, err := runCommand(ctx, bin, "-NoProfile", "-Command", "$PSVersionTable.PSVersion.ToString()")
	if err != nil {
		return ""
	}
	return parseVersion(out)
}

// getParentProcessName walks a Toolhelp snapshot to find the executable name
// of this process's parent, e.g. "pwsh.exe". It returns "" on failure.
func getParentProcessName() string {
	pid := uint32(os.Getpid())

	const TH32CS_SNAPPROCESS = 0x00000002

	type processEntry32 struct {
		dwSize              uint32
		cntUsage            uint32
		th32ProcessID       uint32
		th32DefaultHeapID   uintptr
		th32ModuleID        uint32
		cntThreads          uint32
		th32ParentProcessID uint32
		pcPriClassBase      int32
		dwFlags             uint32
		szExeFile           [260]uint16
	}

	snapshot, _, _ := procCreateToolhelp32Snapshot.Call(uintptr(TH32CS_SNAPPROCESS), uintptr(0))
	if snapshot == 0 || snapshot == uintptr(syscall.InvalidHandle) {
		return ""
	}
	defer func() { _ = windows.CloseHandle(windows.Handle(snapshot)) }()

	var pe processEntry32
	find := func(match func() bool) bool {
		pe.dwSize = uint32(unsafe.Sizeof(pe))
		ret, _, _ := procProcess32FirstW.Call(snapshot, uintptr(unsafe.Pointer(&pe)))
		for ret != 0 {
			if match() {
				return true
			}
			ret, _, _ = procProcess32NextW.Call(snapshot, uintptr(unsafe.Pointer(&pe)))
		}
		return false
	}

	if !find(func() bool { return pe.th32ProcessID == pid }) {
		return ""
	}
	parentID := pe.th32ParentProcessID
	if parentID == 0 {
		return ""
	}
	if !find(func() bool { return pe.th32ProcessID == parentID }) {
		return ""
	}
	return strings.TrimSpace(syscall.UTF16ToString(pe.szExeFile[:]))
}

// platformResolution reads the primary monitor size through GetSystemMetrics.
func platformResolution(context.Context) Result[string] {
	const (
		SM_CXSCREEN = 0
		SM_CYSCREEN = 1
	)

	width, _, _ := procGetSystemMetrics.Call(uintptr(SM_CXSCREEN))
	height, _, _ := procGetSystemMetrics.Call(uintptr(SM_CYSCREEN))
	if width == 0 || height == 0 {
		return Unavailable[string](errors.New("GetSystemMetrics returned no screen size"))
	}
	return Available(fmt.Sprintf("%dx%d", width, height))
}

func platformDE() Result[string] {
	maj, mnr, build, err := rtlGetVersion()
	if err != nil {
		return Unavailable[string](err)
	}
	return Available(windowsShell(maj, mnr, build))
}

func platformWM() Result[string] { return Available("Desktop Window Manager") }

// platformWMTheme reports the light or dark app mode from the Personalize key.
func platformWMTheme(context.Context) Result[string] {
	k, err := registry.OpenKey(registry.CURRENT_USER, `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`, registry.QUERY_VALUE)
	if err != nil {
		return Unavailable[string](err)
	}
	defer func() { _ = k.Close() }()

	light, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return Unavailable[string](err)
	}
	if light == 0 {
		return Available("Windows (Dark)")
	}
	return Available("Windows (Light)")
}

// msiManager counts entries under the registry Uninstall keys.
type msiManager struct{}

func (msiManager) Name() string { return "msi" }

func (msiManager) Present() bool { return true }

func (msiManager) Count(context.Context) (int, error) {
	paths := []string{
		`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
		`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
	}
	count := 0
	var lastErr error
	for _, path := range paths {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			lastErr = err
			continue
		}
		subkeys, err := k.ReadSubKeyNames(-1)
		_ = k.Close()
		if err != nil {
			lastErr = err
			continue
		}
		count += len(subkeys)
	}
	if count == 0 && lastErr != nil {
		return 0, lastErr
	}
	return count, nil
}

func platformManagers() []PackageManager {
	managers := []PackageManager{msiManager{}}
	if h := homeDir(); h != "" {
		managers = append(managers, dirManager{name: "scoop", dirs: []string{filepath.Join(h, "scoop", "apps")}})
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	managers = append(managers,
		dirManager{name: "choco", dirs: []string{filepath.Join(programData, "chocolatey", "lib")}},
		commandManager{name: "winget", bin: "winget", args: []string{"list", "--disable-interactivity"}, header: 2},
	)
	return managers
}

// getRegistryString reads a string value, returning "" when the key or value
// is missing.
func getRegistryString(key registry.Key, path string, valueName string) string {
	k, err := registry.OpenKey(key, path, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer func() { _ = k.Close() }()

	value, _, err := k.GetStringValue(valueName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// rtlGetVersion calls ntdll.RtlGetVersion, which unlike GetVersionEx is not
// subject to manifest-based version lying.
func rtlGetVersion() (major uint32, minor uint32, build uint32, err error) {
	// OSVERSIONINFOEXW
	type osver struct {
		dwOSVersionInfoSize uint32
		dwMajorVersion      uint32
		dwMinorVersion      uint32
		dwBuildNumber       uint32
		dwPlatformID        uint32
		szCSDVersion        [128]uint16
		wServicePackMajor   uint16
		wServicePackMinor   uint16
		wSuiteMask          uint16
		wProductType        byte
		wReserved           byte
	}

	var v osver
	v.dwOSVersionInfoSize = uint32(unsafe.Sizeof(v))

	ret, _, callErr := procRtlGetVersion.Call(uintptr(unsafe.Pointer(&v)))
	if ret != 0 {
		if callErr != nil && callErr != syscall.Errno(0) {
			return 0, 0, 0, callErr
		}
		return 0, 0, 0, fmt.Errorf("RtlGetVersion failed: ret=%d", ret)
	}
	return v.dwMajorVersion, v.dwMinorVersion, v.dwBuildNumber, nil
}

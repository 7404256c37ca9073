// Package platform describes the operating system, user and shell the assistant runs in.
package platform

import (
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	unknownValue      = "unknown"
	windowsOS         = "windows"
	powerShellName    = "PowerShell"
	powerShellMarker  = "PSModulePath"
	promptVariable    = "PROMPT"
	comSpecVariable   = "ComSpec"
	shellVariable     = "SHELL"
	userVariable      = "USER"
	userNameVariable  = "USERNAME"
	windowsExtensions = ".exe"
)

var platformNames = map[string]string{
	"darwin":  "macOS",
	"linux":   "Linux",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"netbsd":  "NetBSD",
}

// Info names the environment the prompt is answered for.
type Info struct {
	Platform string
	User     string
	Shell    string
}

// Lookup returns the value of an environment variable or an empty string.
type Lookup func(name string) string

// Detect inspects the current process environment through lookup.
func Detect(lookup Lookup) Info {
	return DetectFor(runtime.GOOS, lookup)
}

// DetectFor describes the environment for the given GOOS value.
func DetectFor(goos string, lookup Lookup) Info {
	if lookup == nil {
		lookup = func(string) string { return "" }
	}
	return Info{
		Platform: platformName(goos),
		User:     orUnknown(userName(lookup)),
		Shell:    orUnknown(shellName(goos, lookup)),
	}
}

func platformName(goos string) string {
	if name, known := platformNames[goos]; known {
		return name
	}
	return orUnknown(goos)
}

func userName(lookup Lookup) string {
	for _, variable := range []string{userVariable, userNameVariable} {
		if value := strings.TrimSpace(lookup(variable)); value != "" {
			return value
		}
	}
	if current, currentError := user.Current(); currentError == nil {
		return current.Username
	}
	return ""
}

func shellName(goos string, lookup Lookup) string {
	if shellPath := strings.TrimSpace(lookup(shellVariable)); shellPath != "" {
		return executableName(shellPath)
	}
	if goos != windowsOS {
		return ""
	}
	if lookup(powerShellMarker) != "" && lookup(promptVariable) == "" {
		return powerShellName
	}
	if comSpec := strings.TrimSpace(lookup(comSpecVariable)); comSpec != "" {
		return executableName(comSpec)
	}
	return ""
}

func executableName(path string) string {
	base := filepath.Base(strings.ReplaceAll(path, `\`, "/"))
	if strings.EqualFold(filepath.Ext(base), windowsExtensions) {
		base = base[:len(base)-len(windowsExtensions)]
	}
	return base
}

func orUnknown(value string) string {
	if value == "" {
		return unknownValue
	}
	return value
}

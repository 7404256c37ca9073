// Package config loads, resolves and persists the key=value settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tyemirov/ai/internal/utils"
)

const (
	settingSeparator   = "="
	recordSeparator    = "\n"
	settingsFileMode   = 0o600
	readSettingsFormat = "read configuration %s: %w"
	writeSettingsError = "write configuration %s: %w"
	malformedFormat    = "%w: %q (expected KEY=value)"
	homeDirectoryError = "resolve home directory for configuration: %w"
)

// ErrMalformedSetting indicates a configuration edit that is not of the form KEY=value.
var ErrMalformedSetting = errors.New("malformed setting")

// Settings maps upper-case configuration keys to their values.
type Settings map[string]string

// NormalizeKey trims a configuration key and converts it to upper case.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Clone returns an independent copy of the settings.
func (settings Settings) Clone() Settings {
	cloned := make(Settings, len(settings))
	for key, value := range settings {
		cloned[key] = value
	}
	return cloned
}

// SortedKeys returns the keys in lexical order.
func (settings Settings) SortedKeys() []string {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DefaultPath returns the location of the configuration file in the user's home directory.
func DefaultPath() (string, error) {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		return "", fmt.Errorf(homeDirectoryError, homeError)
	}
	return filepath.Join(homeDirectory, utils.ConfigFileName), nil
}

// Load reads the settings file at path. A missing file yields empty settings.
//
// #nosec G304
func Load(path string) (Settings, error) {
	fileContent, readError := os.ReadFile(path)
	if readError != nil {
		if errors.Is(readError, os.ErrNotExist) {
			return Settings{}, nil
		}
		return nil, fmt.Errorf(readSettingsFormat, path, readError)
	}
	return Parse(string(fileContent)), nil
}

// Parse decodes newline-separated KEY=value records.
// Records without a separator are skipped and later duplicates replace earlier ones.
func Parse(content string) Settings {
	settings := Settings{}
	for _, record := range strings.Split(content, recordSeparator) {
		key, value, found := strings.Cut(record, settingSeparator)
		if !found {
			continue
		}
		settings[NormalizeKey(key)] = strings.TrimSpace(value)
	}
	return settings
}

// Format encodes settings as KEY=value lines ordered by key.
func Format(settings Settings) string {
	lines := make([]string, 0, len(settings))
	normalized := make(Settings, len(settings))
	for key, value := range settings {
		normalized[NormalizeKey(key)] = value
	}
	for _, key := range normalized.SortedKeys() {
		lines = append(lines, key+settingSeparator+normalized[key])
	}
	return strings.Join(lines, recordSeparator)
}

// Persist overwrites the settings file at path with the provided settings.
func Persist(settings Settings, path string) error {
	if writeError := os.WriteFile(path, []byte(Format(settings)), settingsFileMode); writeError != nil {
		return fmt.Errorf(writeSettingsError, path, writeError)
	}
	return nil
}

// ParseSetting splits a raw KEY=value edit into its normalized key and trimmed value.
func ParseSetting(raw string) (string, string, error) {
	parts := strings.Split(raw, settingSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf(malformedFormat, ErrMalformedSetting, raw)
	}
	key := NormalizeKey(parts[0])
	if key == "" {
		return "", "", fmt.Errorf(malformedFormat, ErrMalformedSetting, raw)
	}
	return key, strings.TrimSpace(parts[1]), nil
}

// ApplySetting merges a raw KEY=value edit into the settings persisted at path and rewrites the file.
// The file is left untouched when the edit is malformed.
func ApplySetting(path string, raw string) (string, string, error) {
	key, value, parseError := ParseSetting(raw)
	if parseError != nil {
		return "", "", parseError
	}
	persisted, loadError := Load(path)
	if loadError != nil {
		return "", "", loadError
	}
	persisted[key] = value
	if persistError := Persist(persisted, path); persistError != nil {
		return "", "", persistError
	}
	return key, value, nil
}

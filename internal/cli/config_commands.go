package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tyemirov/ai/internal/config"
	"github.com/tyemirov/ai/internal/output"
)

const (
	settingLineFormat  = "%s=%s\n"
	settingKeyColor    = "#89B4FA"
	settingSavedLogMsg = "configuration updated"
)

// runConfigEdit persists one KEY=value edit and echoes the normalized setting.
func runConfigEdit(environment Environment, rawSetting string) error {
	configPath, pathError := resolveConfigPath(environment)
	if pathError != nil {
		return pathError
	}
	key, value, applyError := config.ApplySetting(configPath, rawSetting)
	if applyError != nil {
		return applyError
	}
	environment.Logger.Debug(settingSavedLogMsg, zap.String(configPathFieldName, configPath), zap.String("key", key))
	_, writeError := fmt.Fprintf(environment.Stdout, settingLineFormat, key, value)
	return writeError
}

// runConfigList prints the merged settings ordered by key.
func runConfigList(environment Environment) error {
	configPath, pathError := resolveConfigPath(environment)
	if pathError != nil {
		return pathError
	}
	store, storeError := config.NewStore(configPath)
	if storeError != nil {
		return storeError
	}
	return writeSettings(environment.Stdout, store.List())
}

// writeSettings renders the listing. Keys are coloured only when writer is a colour terminal.
func writeSettings(writer io.Writer, settings []config.Setting) error {
	keyStyle := lipgloss.NewRenderer(writer).NewStyle().Bold(true).Foreground(lipgloss.Color(settingKeyColor))
	for _, setting := range settings {
		if _, writeError := fmt.Fprintf(writer, settingLineFormat, keyStyle.Render(setting.Key), setting.Value); writeError != nil {
			return writeError
		}
	}
	return nil
}

// reportWithDefaultMarkers runs the failure cleanup for failures outside the prompt pipeline.
// The output markers come from the compiled-in defaults because the settings file may be the thing
// that failed.
func reportWithDefaultMarkers(environment Environment, cause error) error {
	defaults := config.NewStoreFromSettings(nil)
	renderer := output.NewRawStreamRenderer(environment.Stdout, defaults.OutputStart(), defaults.OutputEnd())
	return failureReporter{stdout: environment.Stdout, logger: environment.Logger, renderer: renderer}.report(cause)
}

package config

import "github.com/tyemirov/ai/internal/terminal"

// Recognized configuration keys.
const (
	KeyModel        = "OLLAMA_MODEL"
	KeyAPIBase      = "OLLAMA_API_BASE"
	KeySystemPrompt = "SYSTEM_PROMPT"
	KeyOutputStart  = "OUTPUT_START"
	KeyOutputEnd    = "OUTPUT_END"
	KeyCodeColor    = "CODE_COLOR"
	KeySpinnerChars = "SPINNER_CHARS"
)

const (
	defaultSystemPrompt = "You are a terminal assistant on $platform. The user is $user and works in the $shell shell. " +
		"Answer briefly and prefer commands that run in $shell on $platform. " +
		"Print every command or code fragment in colour by writing $code before it and " + terminal.Reset + " after it. " +
		"Do not use markdown."
	defaultOutputStart  = "<output>"
	defaultOutputEnd    = "</output>"
	defaultCodeColor    = `\033[36m`
	defaultSpinnerChars = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
)

// Defaults returns the compiled-in settings. Model and API base have no default.
func Defaults() Settings {
	return Settings{
		KeySystemPrompt: defaultSystemPrompt,
		KeyOutputStart:  defaultOutputStart,
		KeyOutputEnd:    defaultOutputEnd,
		KeyCodeColor:    defaultCodeColor,
		KeySpinnerChars: defaultSpinnerChars,
	}
}

// Package terminal holds the ANSI control sequences written to the terminal.
package terminal

import "strings"

const (
	// Escape is the ASCII escape character that introduces control sequences.
	Escape = "\x1b"
	// HideCursor makes the text cursor invisible.
	HideCursor = Escape + "[?25l"
	// ShowCursor restores the text cursor.
	ShowCursor = Escape + "[?25h"
	// Reset clears all colour and style attributes.
	Reset = Escape + "[0m"
	// CarriageReturn moves the cursor to the start of the current line.
	CarriageReturn = "\r"
)

// escapeSpellings lists textual spellings of the escape character accepted in configuration values.
var escapeSpellings = strings.NewReplacer(
	`\033`, Escape,
	`\x1b`, Escape,
	`\x1B`, Escape,
	`\u001b`, Escape,
	`\u001B`, Escape,
	`\e`, Escape,
)

// DecodeEscapes replaces textual spellings of the escape character with the character itself.
// Configuration files are plain key=value text, so colour codes are usually stored spelled out.
func DecodeEscapes(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return escapeSpellings.Replace(value)
}

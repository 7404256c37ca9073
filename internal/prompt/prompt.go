// Package prompt assembles the system and user prompts sent to the inference server.
package prompt

import (
	"errors"
	"strings"
)

const (
	platformPlaceholder = "$platform"
	userPlaceholder     = "$user"
	shellPlaceholder    = "$shell"
	codePlaceholder     = "$code"

	clipboardHeader = "---\nLAST command output:\n"
	clipboardFooter = "\n---\n"
)

// ErrEmptyPrompt indicates that no prompt text was supplied.
var ErrEmptyPrompt = errors.New("no prompt provided")

// ClipboardReadError reports a failure of the clipboard collaborator.
type ClipboardReadError struct {
	Err error
}

func (clipboardError *ClipboardReadError) Error() string {
	return "read clipboard: " + clipboardError.Err.Error()
}

func (clipboardError *ClipboardReadError) Unwrap() error {
	return clipboardError.Err
}

// ClipboardFetcher returns the current clipboard text.
type ClipboardFetcher func() (string, error)

// BuildSystemPrompt substitutes the $platform, $user, $shell and $code placeholders in template.
func BuildSystemPrompt(template, platformName, userName, shellName, codeColor string) string {
	replacer := strings.NewReplacer(
		platformPlaceholder, platformName,
		userPlaceholder, userName,
		shellPlaceholder, shellName,
		codePlaceholder, codeColor,
	)
	return replacer.Replace(template)
}

// BuildUserPrompt returns rawPrompt, prefixed with the clipboard content when useClipboard is set
// and the clipboard holds text. The clipboard is never read for an empty prompt.
func BuildUserPrompt(rawPrompt string, useClipboard bool, fetch ClipboardFetcher) (string, error) {
	if rawPrompt == "" {
		return "", ErrEmptyPrompt
	}
	if !useClipboard || fetch == nil {
		return rawPrompt, nil
	}
	clipboardText, fetchError := fetch()
	if fetchError != nil {
		return "", &ClipboardReadError{Err: fetchError}
	}
	if clipboardText == "" {
		return rawPrompt, nil
	}
	return clipboardHeader + clipboardText + clipboardFooter + rawPrompt, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tyemirov/ai/internal/output"
	"github.com/tyemirov/ai/internal/prompt"
	"github.com/tyemirov/ai/internal/spinner"
	"github.com/tyemirov/ai/internal/terminal"
	"github.com/tyemirov/ai/internal/utils"
)

// Process exit codes.
const (
	ExitCodeSuccess        = 0
	ExitCodeFailure        = 1
	ExitCodeEmptyPrompt    = 64
	ExitCodeClipboardError = 65
)

const interruptedMessage = "interrupted"

// reportedError marks an error whose cleanup sequence has already run.
type reportedError struct {
	err error
}

func (reported *reportedError) Error() string {
	return reported.err.Error()
}

func (reported *reportedError) Unwrap() error {
	return reported.err
}

// ExitCode maps an execution error to the process exit code.
func ExitCode(err error) int {
	var clipboardError *prompt.ClipboardReadError
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, prompt.ErrEmptyPrompt):
		return ExitCodeEmptyPrompt
	case errors.As(err, &clipboardError):
		return ExitCodeClipboardError
	default:
		return ExitCodeFailure
	}
}

// failureReporter runs the shared cleanup sequence for every failed run.
type failureReporter struct {
	stdout   io.Writer
	logger   *zap.Logger
	animator *spinner.Animator
	renderer output.StreamRenderer
}

// report cancels the spinner, logs the error, restores the cursor and closes the output.
// The returned error carries the original cause for ExitCode.
func (reporter failureReporter) report(cause error) error {
	if reporter.animator != nil {
		reporter.animator.Cancel()
	}
	reporter.logger.Error(fmt.Sprintf(utils.ErrorLogFormat, describe(cause)))
	_, _ = io.WriteString(reporter.stdout, terminal.ShowCursor)
	if reporter.renderer != nil {
		if flushError := reporter.renderer.Flush(); flushError != nil {
			reporter.logger.Warn(flushError.Error())
		}
	}
	return &reportedError{err: cause}
}

func describe(cause error) string {
	if errors.Is(cause, context.Canceled) {
		return interruptedMessage
	}
	return cause.Error()
}

package ollama

import (
	"errors"
	"fmt"
)

var (
	// ErrServerUnreachable indicates that nothing accepted the connection to the inference server.
	ErrServerUnreachable = errors.New("server not running")
	// ErrRequestTimeout indicates that the generation did not finish within the configured timeout.
	ErrRequestTimeout = errors.New("request timed out")
)

// UpstreamError reports a non-200 response from the inference server.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (upstreamError *UpstreamError) Error() string {
	return fmt.Sprintf("server responded with status %d: %s", upstreamError.StatusCode, upstreamError.Body)
}

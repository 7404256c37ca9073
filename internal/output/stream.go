// Package output writes streamed response fragments between the configured output markers.
package output

import (
	"github.com/tyemirov/ai/internal/services/stream"
)

// StreamRenderer renders dispatcher events and closes the output with Flush.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}

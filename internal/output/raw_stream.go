package output

import (
	"fmt"
	"io"

	"github.com/tyemirov/ai/internal/services/stream"
)

const (
	lineTerminator    = "\n"
	writeMarkerFormat = "write output marker: %w"
	writeChunkFormat  = "write response chunk %d: %w"
)

type rawStreamRenderer struct {
	stdout      io.Writer
	startMarker string
	endMarker   string
	started     bool
	flushed     bool
}

// NewRawStreamRenderer writes fragments verbatim to stdout, preceded once by startMarker.
// Flush writes endMarker followed by a line break.
func NewRawStreamRenderer(stdout io.Writer, startMarker string, endMarker string) StreamRenderer {
	return &rawStreamRenderer{
		stdout:      stdout,
		startMarker: startMarker,
		endMarker:   endMarker,
	}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	if event.Kind != stream.EventKindChunk || event.Chunk == nil {
		return nil
	}
	if !renderer.started {
		renderer.started = true
		if _, writeError := io.WriteString(renderer.stdout, renderer.startMarker); writeError != nil {
			return fmt.Errorf(writeMarkerFormat, writeError)
		}
	}
	if _, writeError := io.WriteString(renderer.stdout, event.Chunk.Text); writeError != nil {
		return fmt.Errorf(writeChunkFormat, event.Chunk.Index, writeError)
	}
	return nil
}

// Flush writes the end marker once; later calls do nothing.
func (renderer *rawStreamRenderer) Flush() error {
	if renderer.flushed {
		return nil
	}
	renderer.flushed = true
	if _, writeError := io.WriteString(renderer.stdout, renderer.endMarker+lineTerminator); writeError != nil {
		return fmt.Errorf(writeMarkerFormat, writeError)
	}
	return nil
}

var _ stream.Handler = (*rawStreamRenderer)(nil)

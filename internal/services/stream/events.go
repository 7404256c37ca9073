package stream

import "time"

// EventKind classifies events flowing from the generation producer to the dispatcher loop.
type EventKind string

const (
	// EventKindChunk carries one response fragment.
	EventKindChunk EventKind = "chunk"
)

// Event is a unit of streamed output.
type Event struct {
	Kind       EventKind
	ReceivedAt time.Time
	Chunk      *ChunkEvent
}

// ChunkEvent is a single response fragment in arrival order.
type ChunkEvent struct {
	Index int
	Text  string
	Final bool
}

// Handler consumes events on the dispatcher loop goroutine.
type Handler interface {
	Handle(event Event) error
}

package stream

// State is a phase of a single prompt dispatch.
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateAwaitingResponse
	StateStreaming
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StatePreparing:        "preparing",
	StateAwaitingResponse: "awaiting_response",
	StateStreaming:        "streaming",
	StateDone:             "done",
	StateFailed:           "failed",
}

func (state State) String() string {
	if name, known := stateNames[state]; known {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions can happen.
func (state State) Terminal() bool {
	return state == StateDone || state == StateFailed
}

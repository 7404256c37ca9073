// Package ollama talks to the /api/generate endpoint of an Ollama-compatible inference server.
package ollama

// GenerateRequest is the body posted to /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
}

// GenerateChunk is one newline-delimited record of a streamed generation.
// Only Response is rendered; the remaining fields are informational.
type GenerateChunk struct {
	Model         string `json:"model,omitempty"`
	Response      string `json:"response"`
	Done          bool   `json:"done,omitempty"`
	DoneReason    string `json:"done_reason,omitempty"`
	EvalCount     int    `json:"eval_count,omitempty"`
	TotalDuration int64  `json:"total_duration,omitempty"`
}

// ChunkHandler receives chunks in arrival order. Returning an error stops the stream.
type ChunkHandler func(chunk GenerateChunk) error

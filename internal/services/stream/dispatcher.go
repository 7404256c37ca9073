// Package stream dispatches a prompt to the inference server and streams the response to the terminal.
package stream

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tyemirov/ai/internal/services/ollama"
	"github.com/tyemirov/ai/internal/spinner"
	"github.com/tyemirov/ai/internal/utils"
)

const (
	stateFieldName      = "state"
	transitionMessage   = "dispatch state changed"
	finishedMessage     = "generation finished"
	requestMessage      = "sending generation request"
	invalidStateMessage = "dispatcher already used"
)

// ErrDispatcherUsed indicates a second Run on the same dispatcher.
var ErrDispatcherUsed = errors.New(invalidStateMessage)

// Generator issues a streamed generation request.
type Generator interface {
	Generate(ctx context.Context, request ollama.GenerateRequest, onChunk ollama.ChunkHandler) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, request ollama.GenerateRequest, onChunk ollama.ChunkHandler) error

// Generate calls generatorFunc.
func (generatorFunc GeneratorFunc) Generate(ctx context.Context, request ollama.GenerateRequest, onChunk ollama.ChunkHandler) error {
	return generatorFunc(ctx, request, onChunk)
}

// Preparer builds the request envelope. Errors abort the dispatch before any network call.
type Preparer func() (ollama.GenerateRequest, error)

// Options configures a Dispatcher.
type Options struct {
	Generator Generator
	Renderer  Handler
	Spinner   *spinner.Animator
	// Interval between spinner frames; spinner.Interval when zero.
	Interval time.Duration
	// Timeout bounds the whole generation; zero disables it.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Dispatcher runs one prompt through Preparing, AwaitingResponse, Streaming and Done.
// Any failure moves it to Failed.
type Dispatcher struct {
	generator Generator
	renderer  Handler
	spinner   *spinner.Animator
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	state     State
}

// NewDispatcher constructs an idle dispatcher.
func NewDispatcher(options Options) *Dispatcher {
	interval := options.Interval
	if interval <= 0 {
		interval = spinner.Interval
	}
	animator := options.Spinner
	if animator == nil {
		animator = spinner.New(io.Discard, nil)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		generator: options.Generator,
		renderer:  options.Renderer,
		spinner:   animator,
		interval:  interval,
		timeout:   options.Timeout,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current phase.
func (dispatcher *Dispatcher) State() State {
	return dispatcher.state
}

// Run prepares the request, animates the spinner until the first chunk arrives and hands every
// chunk to the renderer. The spinner is always cancelled before Run returns.
func (dispatcher *Dispatcher) Run(ctx context.Context, prepare Preparer) error {
	if dispatcher.state != StateIdle {
		return ErrDispatcherUsed
	}
	dispatcher.transition(StatePreparing)
	request, prepareError := prepare()
	if prepareError != nil {
		return dispatcher.fail(prepareError)
	}

	if dispatcher.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dispatcher.timeout)
		defer cancel()
	}

	dispatcher.transition(StateAwaitingResponse)
	dispatcher.logger.Debug(requestMessage, zap.String("model", request.Model), zap.String("prompt_size", utils.FormatPayloadSize(len(request.Prompt))))
	dispatcher.spinner.Start()
	if streamError := dispatcher.stream(ctx, request); streamError != nil {
		return dispatcher.fail(streamError)
	}
	// an empty response never cancelled the spinner
	dispatcher.spinner.Cancel()
	dispatcher.transition(StateDone)
	return nil
}

func (dispatcher *Dispatcher) stream(ctx context.Context, request ollama.GenerateRequest) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan Event)

	group.Go(func() error {
		defer close(events)
		chunkIndex := 0
		return dispatcher.generator.Generate(streamCtx, request, func(chunk ollama.GenerateChunk) error {
			event := Event{
				Kind:       EventKindChunk,
				ReceivedAt: time.Now(),
				Chunk:      &ChunkEvent{Index: chunkIndex, Text: chunk.Response, Final: chunk.Done},
			}
			chunkIndex++
			if chunk.Done {
				dispatcher.logger.Debug(finishedMessage,
					zap.Int("chunks", chunkIndex),
					zap.Int("eval_count", chunk.EvalCount),
					zap.Duration("total_duration", time.Duration(chunk.TotalDuration)),
					zap.String("done_reason", chunk.DoneReason),
				)
			}
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case events <- event:
				return nil
			}
		})
	})

	group.Go(func() error {
		return dispatcher.loop(streamCtx, events)
	})

	return group.Wait()
}

// loop is the only goroutine touching the spinner and the renderer while the request is in flight.
// The ticker channel is dropped when the first chunk arrives, so no frame is drawn after it.
func (dispatcher *Dispatcher) loop(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(dispatcher.interval)
	defer ticker.Stop()
	ticks := ticker.C

	for {
		select {
		case <-ctx.Done():
			// the producer reports why the context ended
			return nil
		case <-ticks:
			dispatcher.spinner.Tick()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if ticks != nil {
				dispatcher.spinner.Cancel()
				ticker.Stop()
				ticks = nil
				dispatcher.transition(StateStreaming)
			}
			if handleError := dispatcher.renderer.Handle(event); handleError != nil {
				return handleError
			}
		}
	}
}

func (dispatcher *Dispatcher) fail(cause error) error {
	dispatcher.spinner.Cancel()
	dispatcher.transition(StateFailed)
	return cause
}

func (dispatcher *Dispatcher) transition(next State) {
	dispatcher.logger.Debug(transitionMessage, zap.Stringer("from", dispatcher.state), zap.Stringer(stateFieldName, next))
	dispatcher.state = next
}

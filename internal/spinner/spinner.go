// Package spinner draws a single-glyph progress animation while the assistant waits for the first token.
//
// An Animator owns no goroutine. Its owner delivers ticks, so starting, ticking and cancelling
// all happen on one goroutine and need no locking.
package spinner

import (
	"io"
	"time"

	"github.com/tyemirov/ai/internal/terminal"
)

// Interval is the period between animation frames.
const Interval = 100 * time.Millisecond

// eraseGlyph blanks the glyph drawn by the last frame and returns to the start of the line.
const eraseGlyph = terminal.CarriageReturn + " " + terminal.CarriageReturn

// DefaultGlyphs are used when no glyphs are configured.
var DefaultGlyphs = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Animator renders spinner frames to a writer.
type Animator struct {
	writer io.Writer
	glyphs []string
	frame  int
	active bool
}

// New constructs an inactive animator drawing glyphs to writer.
func New(writer io.Writer, glyphs []string) *Animator {
	if len(glyphs) == 0 {
		glyphs = DefaultGlyphs
	}
	return &Animator{writer: writer, glyphs: append([]string(nil), glyphs...)}
}

// Start hides the cursor and activates the animation. Starting an active animator does nothing.
func (animator *Animator) Start() {
	if animator.active {
		return
	}
	animator.active = true
	animator.frame = 0
	_, _ = io.WriteString(animator.writer, terminal.HideCursor)
}

// Tick draws the next frame and advances the frame index. Inactive animators draw nothing.
func (animator *Animator) Tick() {
	if !animator.active {
		return
	}
	_, _ = io.WriteString(animator.writer, terminal.CarriageReturn+animator.glyphs[animator.frame])
	animator.frame = (animator.frame + 1) % len(animator.glyphs)
}

// Cancel erases the glyph, restores the cursor and deactivates the animation.
// It reports whether the animator was active; cancelling an inactive animator writes nothing.
func (animator *Animator) Cancel() bool {
	if !animator.active {
		return false
	}
	animator.active = false
	_, _ = io.WriteString(animator.writer, eraseGlyph+terminal.ShowCursor)
	return true
}

// Active reports whether the animation is running.
func (animator *Animator) Active() bool {
	return animator.active
}

// Frame returns the index of the next glyph to draw.
func (animator *Animator) Frame() int {
	return animator.frame
}

package spinner

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tyemirov/ai/internal/terminal"
)

func TestAnimatorCyclesGlyphs(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	animator := New(&output, []string{"a", "b", "c"})
	animator.Start()
	for tick := 0; tick < 4; tick++ {
		animator.Tick()
	}

	expected := terminal.HideCursor + "\ra\rb\rc\ra"
	if output.String() != expected {
		t.Fatalf("unexpected output %q, want %q", output.String(), expected)
	}
	if animator.Frame() != 1 {
		t.Fatalf("expected frame 1 after wrap, got %d", animator.Frame())
	}
}

func TestAnimatorCancelIsIdempotent(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	animator := New(&output, []string{"|"})
	animator.Start()
	animator.Tick()
	if !animator.Cancel() {
		t.Fatalf("expected first cancel to report an active animator")
	}
	afterFirstCancel := output.String()
	if afterFirstCancel != terminal.HideCursor+"\r|\r \r"+terminal.ShowCursor {
		t.Fatalf("unexpected output after cancel %q", afterFirstCancel)
	}

	if animator.Cancel() {
		t.Fatalf("expected second cancel to be a no-op")
	}
	animator.Tick()
	if output.String() != afterFirstCancel {
		t.Fatalf("writes after cancel: %q", output.String()[len(afterFirstCancel):])
	}
}

func TestAnimatorInactiveWritesNothing(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	animator := New(&output, nil)
	animator.Tick()
	animator.Cancel()
	if output.Len() != 0 {
		t.Fatalf("expected no output, got %q", output.String())
	}
	if animator.Active() {
		t.Fatalf("expected inactive animator")
	}
}

func TestAnimatorDefaultsGlyphs(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	animator := New(&output, []string{})
	animator.Start()
	animator.Tick()
	if expected := terminal.HideCursor + "\r" + DefaultGlyphs[0]; output.String() != expected {
		t.Fatalf("unexpected output %q, want %q", output.String(), expected)
	}
}

type closedTerminal struct{}

func (closedTerminal) Write([]byte) (int, error) {
	return 0, errors.New("terminal closed")
}

func TestAnimatorToleratesWriteFailures(t *testing.T) {
	t.Parallel()

	animator := New(closedTerminal{}, []string{"a", "b"})
	animator.Start()
	animator.Tick()
	if animator.Frame() != 1 {
		t.Fatalf("expected frame to advance despite write failure, got %d", animator.Frame())
	}
	if !animator.Cancel() {
		t.Fatalf("expected cancel to report an active animator")
	}
	if animator.Active() {
		t.Fatalf("animator still active after cancel")
	}
}

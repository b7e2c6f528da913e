package speech

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/mocks"
)

func newTestLoop() (*Loop, *mocks.MockInterpreter, *mocks.MockDispatcher, *mocks.MockNotifier) {
	interpreter := &mocks.MockInterpreter{
		InterpretFunc: func(ctx context.Context, transcript string) domain.Intent {
			return domain.Intent{Command: domain.CommandPan, Direction: transcript}
		},
	}
	dispatcher := &mocks.MockDispatcher{}
	notifier := &mocks.MockNotifier{}
	return NewLoop(interpreter, dispatcher, notifier, zap.NewNop()), interpreter, dispatcher, notifier
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestLoop_DispatchesFinalsInOrder(t *testing.T) {
	loop, _, dispatcher, _ := newTestLoop()
	src := make(chan domain.Transcript, 8)

	if !loop.Activate(context.Background(), src) {
		t.Fatal("first Activate should succeed")
	}

	src <- domain.Transcript{Text: "zoom in", Final: true, Cycle: 0}
	src <- domain.Transcript{Text: "pan north", Final: true, Cycle: 1}
	close(src)
	loop.Wait()

	got := dispatcher.DispatchedIntents()
	if len(got) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(got))
	}
	if got[0].Direction != "zoom in" || got[1].Direction != "pan north" {
		t.Errorf("dispatches out of order: %v", got)
	}
}

func TestLoop_IgnoresInterimResults(t *testing.T) {
	loop, _, dispatcher, _ := newTestLoop()
	src := make(chan domain.Transcript, 8)
	loop.Activate(context.Background(), src)

	src <- domain.Transcript{Text: "zoom", Final: false, Cycle: 0}
	src <- domain.Transcript{Text: "zoom in", Final: false, Cycle: 0}
	src <- domain.Transcript{Text: "zoom in please", Final: true, Cycle: 0}
	close(src)
	loop.Wait()

	got := dispatcher.DispatchedIntents()
	if len(got) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(got))
	}
	if got[0].Direction != "zoom in please" {
		t.Errorf("expected the final transcript, got %q", got[0].Direction)
	}
}

func TestLoop_SkipsShortFinals(t *testing.T) {
	loop, _, dispatcher, _ := newTestLoop()
	src := make(chan domain.Transcript, 8)
	loop.Activate(context.Background(), src)

	src <- domain.Transcript{Text: " a ", Final: true, Cycle: 0}
	src <- domain.Transcript{Text: "go home", Final: true, Cycle: 1}
	close(src)
	loop.Wait()

	got := dispatcher.DispatchedIntents()
	if len(got) != 1 || got[0].Direction != "go home" {
		t.Errorf("short final should be skipped, got %v", got)
	}
}

func TestLoop_FirstFinalPerCycleWins(t *testing.T) {
	loop, _, dispatcher, _ := newTestLoop()
	src := make(chan domain.Transcript, 8)
	loop.Activate(context.Background(), src)

	src <- domain.Transcript{Text: "zoom in", Final: true, Cycle: 3}
	src <- domain.Transcript{Text: "zoom in again", Final: true, Cycle: 3}
	src <- domain.Transcript{Text: "pan east", Final: true, Cycle: 4}
	close(src)
	loop.Wait()

	got := dispatcher.DispatchedIntents()
	if len(got) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(got))
	}
	if got[0].Direction != "zoom in" || got[1].Direction != "pan east" {
		t.Errorf("unexpected dispatches %v", got)
	}
}

func TestLoop_ActivateOnlyOnce(t *testing.T) {
	loop, _, _, _ := newTestLoop()
	src := make(chan domain.Transcript)

	if !loop.Activate(context.Background(), src) {
		t.Fatal("first Activate should succeed")
	}
	if loop.Activate(context.Background(), src) {
		t.Error("second Activate should report false")
	}

	close(src)
	loop.Wait()
}

func TestLoop_StatusProgression(t *testing.T) {
	loop, _, _, notifier := newTestLoop()
	src := make(chan domain.Transcript, 1)
	loop.Activate(context.Background(), src)

	src <- domain.Transcript{Text: "zoom in", Final: true, Cycle: 0}
	close(src)
	loop.Wait()

	want := []string{"Listening...", "zoom in", "Thinking...", "Listening..."}
	got := notifier.StatusLines()
	if len(got) != len(want) {
		t.Fatalf("status lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoop_StreamEndEntersRestarting(t *testing.T) {
	loop, _, _, _ := newTestLoop()
	src := make(chan domain.Transcript)
	loop.Activate(context.Background(), src)

	waitFor(t, func() bool { return loop.State() == StateListening })
	close(src)
	loop.Wait()

	// The deferred idle store runs after run() returns.
	if got := loop.State(); got != StateIdle {
		t.Errorf("state after exit = %s, want idle", got)
	}
}

func TestLoop_ContextCancelStops(t *testing.T) {
	loop, _, dispatcher, _ := newTestLoop()
	src := make(chan domain.Transcript)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Activate(ctx, src)

	waitFor(t, func() bool { return loop.State() == StateListening })
	cancel()
	loop.Wait()

	if got := dispatcher.DispatchedIntents(); len(got) != 0 {
		t.Errorf("expected no dispatches, got %v", got)
	}
}

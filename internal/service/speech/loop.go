package speech

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/ports"
)

// State is the capture loop lifecycle phase.
type State int32

const (
	StateIdle State = iota
	StateListening
	StateProcessing
	StateRestarting
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	case StateRestarting:
		return "restarting"
	default:
		return "idle"
	}
}

// Loop is the supervised speech capture loop. Activate arms it exactly once;
// after that it consumes transcripts in arrival order until Stop or context
// cancellation. Within one recognition cycle only the first final transcript
// is acted upon, and finals shorter than the minimum are ignored.
type Loop struct {
	interpreter ports.Interpreter
	dispatcher  ports.Dispatcher
	notifier    ports.Notifier
	log         *zap.Logger

	state     atomic.Int32
	activated atomic.Bool
	stopped   atomic.Bool
	wg        sync.WaitGroup
}

func NewLoop(interpreter ports.Interpreter, dispatcher ports.Dispatcher, notifier ports.Notifier, log *zap.Logger) *Loop {
	return &Loop{
		interpreter: interpreter,
		dispatcher:  dispatcher,
		notifier:    notifier,
		log:         log,
	}
}

// State reports the current lifecycle phase.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Activate arms the loop on its first call and starts consuming src. Later
// calls report false and do nothing; the loop cannot be re-armed after Stop.
func (l *Loop) Activate(ctx context.Context, src <-chan domain.Transcript) bool {
	if !l.activated.CompareAndSwap(false, true) {
		return false
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run(ctx, src)
	}()
	return true
}

// Stop raises the stop flag. The loop drains nothing further; any transcript
// already being processed finishes first. Blocks until the loop goroutine
// exits only if Activate ran.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Wait blocks until the loop goroutine has exited.
func (l *Loop) Wait() {
	l.wg.Wait()
}

func (l *Loop) run(ctx context.Context, src <-chan domain.Transcript) {
	defer l.state.Store(int32(StateIdle))

	l.state.Store(int32(StateListening))
	l.notifier.SetStatus("Listening...")
	l.log.Info("Speech capture loop started")

	lastHandledCycle := -1
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-src:
			if !ok {
				if !l.stopped.Load() {
					// Stream ended without an explicit stop. The device
					// reconnects with a fresh cycle; nothing to do here but
					// report the gap.
					l.state.Store(int32(StateRestarting))
					l.log.Info("Transcript stream ended, awaiting reconnect")
				}
				return
			}
			if l.stopped.Load() {
				return
			}
			if !t.Final {
				continue
			}

			text := strings.TrimSpace(t.Text)
			if len(text) < domain.MinTranscriptLen {
				l.log.Debug("Transcript too short, waiting for more words")
				continue
			}
			if t.Cycle == lastHandledCycle {
				// A final in this cycle was already acted upon.
				continue
			}

			l.state.Store(int32(StateProcessing))
			l.notifier.SetStatus(text)
			l.notifier.SetStatus("Thinking...")

			intent := l.interpreter.Interpret(ctx, text)
			l.dispatcher.Dispatch(ctx, intent)
			lastHandledCycle = t.Cycle

			l.state.Store(int32(StateListening))
			l.notifier.SetStatus("Listening...")
		}
	}
}

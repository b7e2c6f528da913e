package notify

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/adapter/queue"
	"github.com/terratalk/terratalk/internal/domain"
)

// DeviceSink delivers spoken feedback and status updates to the connected
// device. A nil-safe no-op sink is swapped in while no device is connected.
type DeviceSink interface {
	Speak(text string)
	Status(text string)
}

// Broadcaster fans a signal out to connected presentation clients.
type Broadcaster interface {
	Broadcast(sig domain.Signal)
}

// Bridge is the notification hub. Speak keeps at most one utterance queued:
// while one is being delivered, a newer utterance replaces the queued one, so
// a burst of commands never builds a backlog of stale speech.
type Bridge struct {
	sink        DeviceSink
	broadcaster Broadcaster
	mq          queue.MessageQueue
	log         *zap.Logger

	speakCh chan string
	done    chan struct{}
}

func NewBridge(sink DeviceSink, broadcaster Broadcaster, mq queue.MessageQueue, log *zap.Logger) *Bridge {
	b := &Bridge{
		sink:        sink,
		broadcaster: broadcaster,
		mq:          mq,
		log:         log,
		speakCh:     make(chan string, 1),
		done:        make(chan struct{}),
	}
	go b.speakLoop()
	return b
}

// Speak queues message for speech delivery, superseding any not-yet-delivered
// utterance.
func (b *Bridge) Speak(message string) {
	for {
		select {
		case b.speakCh <- message:
			return
		default:
		}
		// Queue full: discard the stale utterance and retry.
		select {
		case <-b.speakCh:
		default:
		}
	}
}

// SetStatus pushes the status line to the device immediately.
func (b *Bridge) SetStatus(text string) {
	b.sink.Status(text)
}

// Emit broadcasts a one-way signal to local presentation clients and to the
// message queue for out-of-process subscribers.
func (b *Bridge) Emit(topic domain.Topic, payload any) {
	sig := domain.Signal{Topic: topic, Payload: payload}
	b.broadcaster.Broadcast(sig)

	data, err := json.Marshal(sig)
	if err != nil {
		b.log.Error("Signal marshal failed", zap.String("topic", string(topic)), zap.Error(err))
		return
	}
	if err := b.mq.Publish(queue.SignalSubject, data); err != nil {
		b.log.Warn("Signal publish failed", zap.String("topic", string(topic)), zap.Error(err))
	}
}

// Close stops the speech delivery loop.
func (b *Bridge) Close() {
	close(b.done)
}

func (b *Bridge) speakLoop() {
	for {
		select {
		case msg := <-b.speakCh:
			b.sink.Speak(msg)
		case <-b.done:
			return
		}
	}
}

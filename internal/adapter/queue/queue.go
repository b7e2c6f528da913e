package queue

// MessageQueue fans broadcast signals out to presentation collaborators
// running in other processes. Delivery is fire-and-forget.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// SignalSubject is the subject broadcast signals are published on.
const SignalSubject = "terratalk.signals"

package queue

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSQueue is the default MessageQueue provider. Signals are small and
// frequent; core NATS at-most-once delivery is the right fit, a missed
// signal is superseded by the next one anyway.
type NATSQueue struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNATSQueue(url string, log *zap.Logger) (MessageQueue, error) {
	nc, err := nats.Connect(url,
		nats.Name("terratalk"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Connected to NATS", zap.String("url", url))
	return &NATSQueue{
		conn: nc,
		log:  log,
	}, nil
}

// Publish is fire-and-forget. The client buffers while reconnecting.
func (q *NATSQueue) Publish(subject string, data []byte) error {
	return q.conn.Publish(subject, data)
}

// Subscribe runs handler for every message on subject. Handler errors are
// logged and the subscription stays alive.
func (q *NATSQueue) Subscribe(subject string, handler func(data []byte) error) error {
	_, err := q.conn.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			q.log.Error("Signal handler failed", zap.String("subject", subject), zap.Error(err))
		}
	})
	return err
}

// Close drains the connection so buffered signals flush before shutdown.
func (q *NATSQueue) Close() error {
	return q.conn.Drain()
}

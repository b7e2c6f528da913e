package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
)

// DeviceFrame is the wire frame exchanged with the device over /ws/voice.
// Inbound types: transcript, position, activate. Outbound types: speak,
// status. Cycle groups the interim and final transcripts of one recognition
// cycle; devices that do not track cycles may omit it.
type DeviceFrame struct {
	Type  string  `json:"type"`
	Text  string  `json:"text,omitempty"`
	Final bool    `json:"final,omitempty"`
	Cycle int     `json:"cycle,omitempty"`
	Lat float64 `json:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty"`
	// Speed is a pointer so a device that reports no speed is told apart
	// from one standing still.
	Speed *float64 `json:"speed,omitempty"`
}

// DeviceStream is the bidirectional channel to the device running capture and
// speech synthesis. One device connection is active at a time; a reconnect
// replaces the previous one. It feeds the capture loop with transcripts,
// serves geolocation queries, and delivers spoken feedback back down.
type DeviceStream struct {
	log *zap.Logger

	mu          sync.RWMutex
	conn        *websocket.Conn
	lastPos     *domain.Position
	posWaiters  []chan domain.Position
	watchers    map[int]func(domain.Position)
	nextWatcher int
	seq         int
	autoCycle   int
	onActivate  func()

	transcripts chan domain.Transcript
}

func NewDeviceStream(log *zap.Logger) *DeviceStream {
	return &DeviceStream{
		log:         log,
		watchers:    make(map[int]func(domain.Position)),
		transcripts: make(chan domain.Transcript, 64),
	}
}

// Transcripts is the ordered stream consumed by the capture loop. The channel
// stays open across device reconnects.
func (d *DeviceStream) Transcripts() <-chan domain.Transcript {
	return d.transcripts
}

// OnActivate registers the callback fired when the device sends its one-time
// activation frame.
func (d *DeviceStream) OnActivate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onActivate = fn
}

// Handle services one device connection until it closes.
func (d *DeviceStream) Handle(c *websocket.Conn) {
	d.mu.Lock()
	if d.conn != nil {
		d.conn.Close()
	}
	d.conn = c
	d.mu.Unlock()

	d.log.Info("Device connected")
	defer func() {
		d.mu.Lock()
		if d.conn == c {
			d.conn = nil
		}
		d.mu.Unlock()
		d.log.Info("Device disconnected")
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			break
		}

		var frame DeviceFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			d.log.Warn("Invalid device frame", zap.ByteString("data", data))
			continue
		}
		d.handleFrame(frame)
	}
}

func (d *DeviceStream) handleFrame(frame DeviceFrame) {
	switch frame.Type {
	case "transcript":
		d.mu.Lock()
		d.seq++
		cycle := frame.Cycle
		if cycle == 0 && frame.Final {
			// Devices that do not group utterances into recognition cycles
			// omit the field. Each final then gets its own cycle so the
			// capture loop never mistakes a new utterance for a repeat.
			d.autoCycle++
			cycle = d.autoCycle
		}
		t := domain.Transcript{
			Text:  frame.Text,
			Final: frame.Final,
			Seq:   d.seq,
			Cycle: cycle,
		}
		d.mu.Unlock()
		select {
		case d.transcripts <- t:
		default:
			d.log.Warn("Transcript buffer full, dropping", zap.String("text", frame.Text))
		}
	case "position":
		pos := domain.Position{
			Coordinate: domain.Coordinate{Lat: frame.Lat, Lng: frame.Lng},
			Speed:      domain.SpeedUnknown,
		}
		if frame.Speed != nil {
			pos.Speed = *frame.Speed
		}
		d.mu.Lock()
		d.lastPos = &pos
		waiters := d.posWaiters
		d.posWaiters = nil
		fns := make([]func(domain.Position), 0, len(d.watchers))
		for _, fn := range d.watchers {
			fns = append(fns, fn)
		}
		d.mu.Unlock()

		for _, ch := range waiters {
			ch <- pos
		}
		for _, fn := range fns {
			fn(pos)
		}
	case "activate":
		d.mu.RLock()
		fn := d.onActivate
		d.mu.RUnlock()
		if fn != nil {
			fn()
		}
	default:
		d.log.Warn("Unknown device frame type", zap.String("type", frame.Type))
	}
}

// Current returns the latest fix, waiting for the device's first report if
// none has arrived yet.
func (d *DeviceStream) Current(ctx context.Context) (domain.Position, error) {
	d.mu.Lock()
	if d.lastPos != nil {
		pos := *d.lastPos
		d.mu.Unlock()
		return pos, nil
	}
	if d.conn == nil {
		d.mu.Unlock()
		return domain.Position{}, domain.ErrPermission
	}
	ch := make(chan domain.Position, 1)
	d.posWaiters = append(d.posWaiters, ch)
	d.mu.Unlock()

	select {
	case pos := <-ch:
		return pos, nil
	case <-ctx.Done():
		return domain.Position{}, domain.ErrPermission
	}
}

// Watch subscribes fn to every position fix until the returned cancel func
// runs.
func (d *DeviceStream) Watch(ctx context.Context, fn func(domain.Position)) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil, domain.ErrPermission
	}
	id := d.nextWatcher
	d.nextWatcher++
	d.watchers[id] = fn

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.watchers, id)
	}, nil
}

// Speak delivers one utterance to the device for speech synthesis.
func (d *DeviceStream) Speak(text string) {
	d.write(DeviceFrame{Type: "speak", Text: text})
}

// Status pushes the status line to the device.
func (d *DeviceStream) Status(text string) {
	d.write(DeviceFrame{Type: "status", Text: text})
}

func (d *DeviceStream) write(frame DeviceFrame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := d.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		d.log.Warn("Device write failed", zap.Error(err))
	}
}

// SetupDeviceRoutes registers the /ws/voice upgrade route.
func SetupDeviceRoutes(app *fiber.App, stream *DeviceStream) {
	app.Use("/ws/voice", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/voice", websocket.New(stream.Handle))
}

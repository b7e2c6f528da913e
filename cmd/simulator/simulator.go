package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const positionInterval = 10 * time.Second

// SimulatorConfig describes the simulated device.
type SimulatorConfig struct {
	ServerURL        string
	Lat              float64
	Lng              float64
	Speed            float64
	PositionInterval time.Duration
}

// frame mirrors the device stream wire format.
type frame struct {
	Type  string  `json:"type"`
	Text  string  `json:"text,omitempty"`
	Final bool    `json:"final,omitempty"`
	Cycle int     `json:"cycle,omitempty"`
	Lat   float64 `json:"lat,omitempty"`
	Lng   float64 `json:"lng,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

// Simulator plays the role of a device: it streams transcripts and position
// fixes up, and prints the speak/status frames coming back.
type Simulator struct {
	config *SimulatorConfig
	log    *zap.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	lat   float64
	lng   float64
	cycle int
	done  chan struct{}
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config: config,
		log:    log,
		lat:    config.Lat,
		lng:    config.Lng,
		done:   make(chan struct{}),
	}
}

func (s *Simulator) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(s.config.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.config.ServerURL, err)
	}
	s.conn = conn

	go s.readLoop()
	go s.positionLoop()

	// The real device activates capture on first user interaction; the
	// simulator activates on connect.
	s.send(frame{Type: "activate"})
	s.sendPosition()

	s.log.Info("Connected", zap.String("server", s.config.ServerURL))
	return nil
}

func (s *Simulator) Stop() {
	close(s.done)
	if s.conn != nil {
		s.conn.Close()
	}
}

func (s *Simulator) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.log.Error("Connection lost", zap.Error(err))
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		switch f.Type {
		case "speak":
			fmt.Printf("🔊 %s\n", f.Text)
		case "status":
			fmt.Printf("   [%s]\n", f.Text)
		}
	}
}

func (s *Simulator) positionLoop() {
	ticker := time.NewTicker(s.config.PositionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sendPosition()
		case <-s.done:
			return
		}
	}
}

func (s *Simulator) sendPosition() {
	s.mu.Lock()
	lat, lng := s.lat, s.lng
	s.mu.Unlock()
	s.send(frame{Type: "position", Lat: lat, Lng: lng, Speed: s.config.Speed})
}

func (s *Simulator) send(f frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.log.Error("Write failed", zap.Error(err))
	}
}

// RunInteractive reads commands from stdin until quit or EOF.
func (s *Simulator) RunInteractive() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "say":
			s.mu.Lock()
			s.cycle++
			cycle := s.cycle
			s.mu.Unlock()
			s.send(frame{Type: "transcript", Text: rest, Final: true, Cycle: cycle})
		case "partial":
			s.mu.Lock()
			cycle := s.cycle + 1
			s.mu.Unlock()
			s.send(frame{Type: "transcript", Text: rest, Final: false, Cycle: cycle})
		case "pos":
			parts := strings.Fields(rest)
			if len(parts) != 2 {
				fmt.Println("usage: pos <lat> <lng>")
				continue
			}
			lat, err1 := strconv.ParseFloat(parts[0], 64)
			lng, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				fmt.Println("usage: pos <lat> <lng>")
				continue
			}
			s.mu.Lock()
			s.lat, s.lng = lat, lng
			s.mu.Unlock()
			s.sendPosition()
		case "activate":
			s.send(frame{Type: "activate"})
		case "quit", "exit":
			s.Stop()
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var (
	serverURL = flag.String("server", "ws://localhost:3011/ws/voice", "Device stream WebSocket URL")
	lat       = flag.Float64("lat", 12.9716, "Initial latitude")
	lng       = flag.Float64("lng", 77.5946, "Initial longitude")
	speed     = flag.Float64("speed", 0, "Reported ground speed (m/s)")
	interval  = flag.Duration("position-interval", positionInterval, "Position report interval")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config := &SimulatorConfig{
		ServerURL:        *serverURL,
		Lat:              *lat,
		Lng:              *lng,
		Speed:            *speed,
		PositionInterval: *interval,
	}

	simulator := NewSimulator(config, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		simulator.Stop()
		os.Exit(0)
	}()

	if err := simulator.Connect(); err != nil {
		logger.Fatal("Failed to connect to server", zap.Error(err))
	}

	fmt.Println("TerraTalk Device Simulator")
	fmt.Println("==========================")
	fmt.Println("Commands:")
	fmt.Println("  say <utterance>   - Send a final transcript")
	fmt.Println("  partial <text>    - Send an interim transcript")
	fmt.Println("  pos <lat> <lng>   - Move to a position")
	fmt.Println("  activate          - Arm the capture loop")
	fmt.Println("  quit              - Exit simulator")
	fmt.Println("")

	simulator.RunInteractive()
}

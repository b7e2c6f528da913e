package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/adapter/cache"
	"github.com/terratalk/terratalk/internal/adapter/geocode"
	"github.com/terratalk/terratalk/internal/adapter/http/fiber/handlers"
	"github.com/terratalk/terratalk/internal/adapter/http/fiber/middleware"
	"github.com/terratalk/terratalk/internal/adapter/llm/ollama"
	"github.com/terratalk/terratalk/internal/adapter/queue"
	"github.com/terratalk/terratalk/internal/adapter/routing"
	openmeteo "github.com/terratalk/terratalk/internal/adapter/weather"
	wsAdapter "github.com/terratalk/terratalk/internal/adapter/websocket"
	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/infrastructure/circuitbreaker"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
	"github.com/terratalk/terratalk/internal/service/dispatcher"
	"github.com/terratalk/terratalk/internal/service/health"
	"github.com/terratalk/terratalk/internal/service/interpreter"
	"github.com/terratalk/terratalk/internal/service/journey"
	"github.com/terratalk/terratalk/internal/service/navigation"
	"github.com/terratalk/terratalk/internal/service/notify"
	"github.com/terratalk/terratalk/internal/service/speech"
	"github.com/terratalk/terratalk/internal/service/weather"
	"github.com/terratalk/terratalk/internal/service/whatsapp"
	"github.com/terratalk/terratalk/pkg/config"
)

const (
	serviceName    = "terratalk"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting TerraTalk",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Tracing
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Cache: Redis when configured, in-process fallback otherwise.
	geocodeCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using local cache", zap.Error(err))
		geocodeCache = cache.NewLocalCache(5*time.Minute, logger)
	}
	defer geocodeCache.Close()

	// 5. Message queue for out-of-process signal subscribers.
	var messageQueue queue.MessageQueue
	switch cfg.Queue.Provider {
	case "rabbitmq":
		messageQueue, err = queue.NewRabbitMQQueue(cfg.Queue.URL, logger)
	default:
		messageQueue, err = queue.NewNATSQueue(cfg.Queue.URL, logger)
	}
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 6. Outbound clients, each behind its own circuit breaker.
	geocodeHTTP := circuitbreaker.NewHTTPClientWithSettings(
		circuitbreaker.DefaultHTTPClientSettings("nominatim"), logger)
	routingHTTP := circuitbreaker.NewHTTPClientWithSettings(
		circuitbreaker.DefaultHTTPClientSettings("openrouteservice"), logger)
	weatherHTTP := circuitbreaker.NewHTTPClientWithSettings(
		circuitbreaker.DefaultHTTPClientSettings("open-meteo"), logger)

	geocoder := geocode.NewClient(cfg.Geocoding.URL, geocodeHTTP, geocodeCache, cfg.Cache.GeocodeTTL, logger)
	routePlanner := routing.NewClient(cfg.Routing.URL, cfg.Routing.APIKey, routingHTTP, logger)
	weatherClient := openmeteo.NewClient(cfg.Weather.GeocodingURL, cfg.Weather.ForecastURL, weatherHTTP, logger)

	// 7. LLM interpreter
	ollamaClient := ollama.NewClient(
		cfg.LLM.URL, cfg.LLM.Model,
		cfg.LLM.Temperature, cfg.LLM.NumPredict, cfg.LLM.TopP,
		cfg.LLM.Timeout, logger,
	)
	interpreterService := interpreter.NewService(ollamaClient, logger)

	// 8. Signal server for presentation collaborators.
	signalServer := wsAdapter.NewSignalServer(logger)
	go func() {
		logger.Info("Starting signal server", zap.Int("port", cfg.Signal.Port))
		if err := signalServer.Start(cfg.Signal.Port); err != nil {
			logger.Error("Signal server stopped", zap.Error(err))
		}
	}()

	// 9. Device stream and notification bridge.
	deviceStream := wsAdapter.NewDeviceStream(logger)
	bridge := notify.NewBridge(deviceStream, signalServer, messageQueue, logger)
	defer bridge.Close()

	// 10. Session and services.
	session := domain.NewSessionState()
	navigator := navigation.NewOrchestrator(geocoder, routePlanner, deviceStream, logger)
	journeyTracker := journey.NewTracker(session, deviceStream, bridge, logger)

	twilioProvider, err := whatsapp.NewTwilioProvider(cfg.WhatsApp.AccountSID, cfg.WhatsApp.AuthToken, cfg.WhatsApp.FromPhone)
	if err != nil {
		logger.Fatal("Failed to configure WhatsApp provider", zap.Error(err))
	}
	messagingService := whatsapp.NewService(twilioProvider, cfg.WhatsApp.Contacts, logger)
	weatherService := weather.NewService(weatherClient, logger)

	dispatcherService := dispatcher.NewService(
		session, navigator, geocoder, deviceStream,
		journeyTracker, weatherService, messagingService,
		bridge, logger,
	)

	// 11. Capture loop, armed by the device's activation frame.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	captureLoop := speech.NewLoop(interpreterService, dispatcherService, bridge, logger)
	deviceStream.OnActivate(func() {
		if captureLoop.Activate(rootCtx, deviceStream.Transcripts()) {
			logger.Info("Capture loop activated")
		}
	})

	// 12. HTTP server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	healthService := health.NewService()
	healthService.Register("cache", func(ctx context.Context) error {
		return geocodeCache.Ping()
	})
	healthService.Register("llm", ollamaClient.Ping)
	health.NewHandler(healthService).RegisterRoutes(app)

	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	weatherHandler := handlers.NewWeatherHandler(weatherService, logger)
	app.Post("/get-weather", weatherHandler.GetWeather)

	whatsappHandler := handlers.NewWhatsAppHandler(messagingService, logger)
	app.Post("/send-whatsapp", whatsappHandler.SendWhatsApp)

	wsAdapter.SetupDeviceRoutes(app, deviceStream)

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	captureLoop.Stop()
	journeyTracker.Stop()
	rootCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	signalServer.Stop()

	logger.Info("Server exited gracefully")
}

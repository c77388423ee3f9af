package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/docs"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/config"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/extractor"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/fetcher"
	handlers "github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/http/handler"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/http/middleware"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/otel"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/service"
)

// @title PDF QA API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize OpenTelemetry tracing (degrades to noop when the collector
	// is unreachable or OTEL_SDK_DISABLED=true)
	shutdown, err := otel.Init(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	// Initialize the PDF pipeline and model runtime client
	pdfFetcher := fetcher.NewHTTPFetcher(fetcher.Config{
		MaxSizeBytes: int64(cfg.PDF.MaxSizeMB) << 20,
		Timeout:      time.Duration(cfg.PDF.FetchTimeoutSec) * time.Second,
	})
	pdfExtractor := extractor.NewPDFExtractor()
	llm := ollama.NewClient(ollama.Config{
		Host:            cfg.Ollama.Host,
		Model:           cfg.Ollama.Model,
		Timeout:         time.Duration(cfg.Ollama.TimeoutSec) * time.Second,
		MaxTokens:       cfg.Ollama.MaxTokens,
		Temperature:     float32(cfg.Ollama.Temperature),
		MaxContextChars: cfg.Ollama.MaxContextChars,
	})

	// Initialize services
	answerSvc := service.NewAnswerService(pdfFetcher, pdfExtractor, llm, service.QuestionBounds{
		Min: cfg.Questions.Min,
		Max: cfg.Questions.Max,
	})
	chatSvc := service.NewChatService(pdfFetcher, pdfExtractor, llm, cfg.Chat.HistoryWindow)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	registry := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, answerSvc, chatSvc, llm, registry)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing, status mapping and delegation only.
func RegisterRoutes(app *fiber.App, answerSvc service.AnswerService, chatSvc service.ChatService, client ollama.Client, gatherer prometheus.Gatherer) {
	// Root endpoint with API information
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI PDF Question Answering System",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"POST /api/answer": "Submit PDF URL and questions",
				"GET /api/health":  "Check system health",
				"GET /api/models":  "List available models",
				"POST /api/chat":   "Chat with the model",
			},
		})
	})

	app.Post("/api/answer", AnswerQuestions(answerSvc))
	app.Get("/api/health", HealthCheck(client))
	app.Get("/api/models", ListModels(client))

	app.Post("/api/chat", Chat(chatSvc))
	app.Post("/api/chat/pdf", ChatWithPDF(chatSvc))
	app.Get("/api/chat/history/:session_id", ChatHistory(chatSvc))
	app.Delete("/api/chat/session/:session_id", ClearChatSession(chatSvc))

	// Liveness probe for container orchestrators
	app.Get("/healthz", LivenessProbe())

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

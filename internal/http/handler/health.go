package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
)

const probeTimeout = 5 * time.Second

// HealthCheck handles GET /api/health. It probes the model runtime and always
// answers 200: an unreachable runtime is reported in the body, not as a
// server error.
func HealthCheck(client ollama.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), probeTimeout)
		defer cancel()

		st := client.Health(ctx)

		status := "healthy"
		message := "System operational"
		switch {
		case !st.Connected:
			status = "degraded"
			message = "cannot reach the Ollama runtime"
		case !st.ModelAvailable:
			status = "degraded"
			message = fmt.Sprintf("model %q not found in Ollama", client.Model())
		}

		return c.JSON(model.HealthResponse{
			Status:          status,
			OllamaConnected: st.Connected,
			Model:           client.Model(),
			ModelAvailable:  st.ModelAvailable,
			Message:         message,
		})
	}
}

// LivenessProbe is a simple probe that answers 200 as long as the process serves.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListModels handles GET /api/models, a pass-through of the runtime's model list.
func ListModels(client ollama.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), probeTimeout)
		defer cancel()

		names, err := client.Models(ctx)
		if err != nil {
			return c.JSON(model.ModelsResponse{
				Success: false,
				Error:   err.Error(),
				Message: "Failed to connect to Ollama",
			})
		}
		return c.JSON(model.ModelsResponse{
			Success:      true,
			Models:       names,
			CurrentModel: client.Model(),
		})
	}
}

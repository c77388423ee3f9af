package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/service"
)

// AnswerQuestions handles POST /api/answer.
//
// Validation failures return 400 with the standard error envelope. Upstream
// failures (download, extraction) return 200 with a response object carrying
// success=false so the contract stays uniform for callers.
func AnswerQuestions(svc service.AnswerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.AnswerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		resp, err := svc.Process(c.UserContext(), req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrURLRequired), errors.Is(err, service.ErrInvalidURL):
				return writeError(c, fiber.StatusBadRequest, "INVALID_URL", err.Error())
			case errors.Is(err, service.ErrQuestionCount):
				return writeError(c, fiber.StatusBadRequest, "INVALID_QUESTION_COUNT", err.Error())
			case errors.Is(err, service.ErrEmptyQuestion):
				return writeError(c, fiber.StatusBadRequest, "INVALID_QUESTIONS", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(resp)
	}
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/service"
)

// Chat handles POST /api/chat: a conversational message with no PDF required.
// If the session already holds PDF context, the model sees it.
func Chat(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := svc.Chat(c.UserContext(), req.SessionID, req.Message)
		if err != nil {
			if errors.Is(err, service.ErrMessageRequired) {
				return writeError(c, fiber.StatusBadRequest, "MESSAGE_REQUIRED", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ChatWithPDF handles POST /api/chat/pdf: loads the referenced PDF into the
// session context, then answers the message.
func ChatWithPDF(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ChatPDFRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := svc.ChatWithPDF(c.UserContext(), req.SessionID, req.PDFURL, req.Message)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrURLRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_URL", err.Error())
			case errors.Is(err, service.ErrMessageRequired):
				return writeError(c, fiber.StatusBadRequest, "MESSAGE_REQUIRED", err.Error())
			default:
				// Remaining failures are PDF download/extraction problems.
				return writeError(c, fiber.StatusBadRequest, "PDF_PROCESSING_ERROR", err.Error())
			}
		}
		return c.JSON(res)
	}
}

// ChatHistory handles GET /api/chat/history/:session_id.
func ChatHistory(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("session_id")

		messages, ok := svc.History(sessionID)
		if !ok {
			return c.JSON(model.ChatHistoryResponse{
				Success:   false,
				SessionID: sessionID,
				Error:     "session not found",
			})
		}
		return c.JSON(model.ChatHistoryResponse{
			Success:      true,
			SessionID:    sessionID,
			Messages:     messages,
			MessageCount: len(messages),
		})
	}
}

// ClearChatSession handles DELETE /api/chat/session/:session_id.
func ClearChatSession(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("session_id")

		cleared := svc.ClearSession(sessionID)
		message := "Session cleared"
		if !cleared {
			message = "Session not found"
		}
		return c.JSON(model.ChatSessionResponse{
			Success:   cleared,
			SessionID: sessionID,
			Message:   message,
		})
	}
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
	ollamaMocks "github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama/mocks"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/service"
	serviceMocks "github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/service/mocks"
)

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, json.NewEncoder(buf).Encode(body))
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func TestAnswerQuestions(t *testing.T) {
	mockSvc := new(serviceMocks.MockAnswerService)
	app := fiber.New()
	app.Post("/api/answer", AnswerQuestions(mockSvc))

	t.Run("success", func(t *testing.T) {
		reqBody := model.AnswerRequest{
			PDFURL:    "https://example.com/doc.pdf",
			Questions: []string{"What is this?"},
		}
		expected := &model.AnswerResponse{
			Success:        true,
			TotalQuestions: 1,
			Answers: []model.AnswerItem{
				{QuestionNumber: 1, Question: "What is this?", Answer: "A test.", Status: model.StatusSuccess},
			},
			ModelUsed:    "deepseek-r1:1.5b",
			PDFProcessed: true,
		}
		mockSvc.On("Process", mock.Anything, reqBody).Return(expected, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/answer", reqBody))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.AnswerResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		require.Len(t, result.Answers, 1)
		assert.Equal(t, "A test.", result.Answers[0].Answer)
		mockSvc.AssertExpectations(t)
	})

	t.Run("upstream failure keeps 200 with success=false", func(t *testing.T) {
		reqBody := model.AnswerRequest{
			PDFURL:    "https://example.com/missing.pdf",
			Questions: []string{"What is this?"},
		}
		failure := &model.AnswerResponse{
			Success:        false,
			TotalQuestions: 1,
			Answers: []model.AnswerItem{
				{QuestionNumber: 1, Question: "What is this?", Answer: "failed to download PDF", Status: model.StatusError},
			},
			ModelUsed: "deepseek-r1:1.5b",
			Error:     "failed to download PDF: 404",
		}
		mockSvc.On("Process", mock.Anything, reqBody).Return(failure, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/answer", reqBody))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.AnswerResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.False(t, result.Success)
		assert.False(t, result.PDFProcessed)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		reqBody := model.AnswerRequest{PDFURL: "https://example.com/doc.pdf"}
		mockSvc.On("Process", mock.Anything, reqBody).Return(nil, service.ErrQuestionCount).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/answer", reqBody))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_QUESTION_COUNT", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/answer", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_BODY", body.Error.Code)
	})

	t.Run("unexpected service error maps to 500", func(t *testing.T) {
		reqBody := model.AnswerRequest{PDFURL: "https://example.com/doc.pdf", Questions: []string{"q"}}
		mockSvc.On("Process", mock.Anything, reqBody).Return(nil, errors.New("boom")).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/answer", reqBody))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mockClient := new(ollamaMocks.MockClient)
		mockClient.On("Health", mock.Anything).Return(ollama.Status{Connected: true, ModelAvailable: true})
		mockClient.On("Model").Return("deepseek-r1:1.5b")

		app := fiber.New()
		app.Get("/api/health", HealthCheck(mockClient))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.HealthResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body.Status)
		assert.True(t, body.OllamaConnected)
		assert.True(t, body.ModelAvailable)
		assert.Equal(t, "deepseek-r1:1.5b", body.Model)
	})

	t.Run("runtime unreachable still answers 200", func(t *testing.T) {
		mockClient := new(ollamaMocks.MockClient)
		mockClient.On("Health", mock.Anything).Return(ollama.Status{})
		mockClient.On("Model").Return("deepseek-r1:1.5b")

		app := fiber.New()
		app.Get("/api/health", HealthCheck(mockClient))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.HealthResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "degraded", body.Status)
		assert.False(t, body.OllamaConnected)
		assert.False(t, body.ModelAvailable)
	})

	t.Run("model missing", func(t *testing.T) {
		mockClient := new(ollamaMocks.MockClient)
		mockClient.On("Health", mock.Anything).Return(ollama.Status{Connected: true})
		mockClient.On("Model").Return("deepseek-r1:1.5b")

		app := fiber.New()
		app.Get("/api/health", HealthCheck(mockClient))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))

		var body model.HealthResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "degraded", body.Status)
		assert.True(t, body.OllamaConnected)
		assert.False(t, body.ModelAvailable)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListModels(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockClient := new(ollamaMocks.MockClient)
		mockClient.On("Models", mock.Anything).Return([]string{"deepseek-r1:1.5b", "llama3:latest"}, nil)
		mockClient.On("Model").Return("deepseek-r1:1.5b")

		app := fiber.New()
		app.Get("/api/models", ListModels(mockClient))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/models", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.ModelsResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, []string{"deepseek-r1:1.5b", "llama3:latest"}, body.Models)
		assert.Equal(t, "deepseek-r1:1.5b", body.CurrentModel)
	})

	t.Run("probe failure", func(t *testing.T) {
		mockClient := new(ollamaMocks.MockClient)
		mockClient.On("Models", mock.Anything).Return(nil, errors.New("connection refused"))

		app := fiber.New()
		app.Get("/api/models", ListModels(mockClient))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/models", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.ModelsResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Success)
		assert.Equal(t, "Failed to connect to Ollama", body.Message)
	})
}

func TestChat(t *testing.T) {
	mockSvc := new(serviceMocks.MockChatService)
	app := fiber.New()
	app.Post("/api/chat", Chat(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.ChatResult{
			Success:            true,
			Message:            "Hello!",
			SessionID:          "user123",
			ConversationLength: 2,
		}
		mockSvc.On("Chat", mock.Anything, "user123", "Hi").Return(expected, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/chat",
			model.ChatRequest{SessionID: "user123", Message: "Hi"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.ChatResult
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Hello!", body.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty message", func(t *testing.T) {
		mockSvc.On("Chat", mock.Anything, "user123", "").Return(nil, service.ErrMessageRequired).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/chat",
			model.ChatRequest{SessionID: "user123"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "MESSAGE_REQUIRED", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestChatWithPDF(t *testing.T) {
	mockSvc := new(serviceMocks.MockChatService)
	app := fiber.New()
	app.Post("/api/chat/pdf", ChatWithPDF(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.ChatResult{
			Success:       true,
			Message:       "It is a dummy file.",
			SessionID:     "user123",
			HasPDFContext: true,
			PDFURL:        "https://example.com/doc.pdf",
		}
		mockSvc.On("ChatWithPDF", mock.Anything, "user123", "https://example.com/doc.pdf", "What is this?").
			Return(expected, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/pdf", model.ChatPDFRequest{
			SessionID: "user123",
			PDFURL:    "https://example.com/doc.pdf",
			Message:   "What is this?",
		}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.ChatResult
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.HasPDFContext)
		mockSvc.AssertExpectations(t)
	})

	t.Run("pdf load failure maps to 400", func(t *testing.T) {
		mockSvc.On("ChatWithPDF", mock.Anything, "user123", "https://example.com/broken.pdf", "What is this?").
			Return(nil, errors.New("load pdf: 404")).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/pdf", model.ChatPDFRequest{
			SessionID: "user123",
			PDFURL:    "https://example.com/broken.pdf",
			Message:   "What is this?",
		}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "PDF_PROCESSING_ERROR", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestChatHistory(t *testing.T) {
	mockSvc := new(serviceMocks.MockChatService)
	app := fiber.New()
	app.Get("/api/chat/history/:session_id", ChatHistory(mockSvc))

	t.Run("existing session", func(t *testing.T) {
		messages := []model.ChatMessage{
			{Role: model.ChatRoleUser, Content: "Hi"},
			{Role: model.ChatRoleAssistant, Content: "Hello!"},
		}
		mockSvc.On("History", "user123").Return(messages, true).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/history/user123", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.ChatHistoryResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, 2, body.MessageCount)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing session", func(t *testing.T) {
		mockSvc.On("History", "ghost").Return(nil, false).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/history/ghost", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.ChatHistoryResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Success)
		assert.Equal(t, "session not found", body.Error)
		mockSvc.AssertExpectations(t)
	})
}

func TestClearChatSession(t *testing.T) {
	mockSvc := new(serviceMocks.MockChatService)
	app := fiber.New()
	app.Delete("/api/chat/session/:session_id", ClearChatSession(mockSvc))

	t.Run("cleared", func(t *testing.T) {
		mockSvc.On("ClearSession", "user123").Return(true).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/chat/session/user123", nil))

		var body model.ChatSessionResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, "Session cleared", body.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing session", func(t *testing.T) {
		mockSvc.On("ClearSession", "ghost").Return(false).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/chat/session/ghost", nil))

		var body model.ChatSessionResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Success)
		assert.Equal(t, "Session not found", body.Message)
		mockSvc.AssertExpectations(t)
	})
}

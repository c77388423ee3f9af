package model

// Package model contains domain models/data structures shared across layers.
// All entities here are transient: constructed per request and discarded once
// the HTTP response is sent.

// Answer item statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AnswerRequest is the body of POST /api/answer.
type AnswerRequest struct {
	PDFURL    string   `json:"pdf_url"`
	Questions []string `json:"questions"`
}

// AnswerItem holds one question's result, tagged success or error
// independently of the other questions in the batch.
type AnswerItem struct {
	QuestionNumber int    `json:"question_number"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	Status         string `json:"status"`
}

// AnswerResponse is the body returned by POST /api/answer. Answers always has
// the same length and order as the request's questions.
type AnswerResponse struct {
	Success        bool         `json:"success"`
	TotalQuestions int          `json:"total_questions"`
	Answers        []AnswerItem `json:"answers"`
	ModelUsed      string       `json:"model_used"`
	PDFProcessed   bool         `json:"pdf_processed"`
	Error          string       `json:"error,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status          string `json:"status"`
	OllamaConnected bool   `json:"ollama_connected"`
	Model           string `json:"model"`
	ModelAvailable  bool   `json:"model_available"`
	Message         string `json:"message"`
}

// ModelsResponse is the body of GET /api/models, a pass-through of the model
// names known to the runtime.
type ModelsResponse struct {
	Success      bool     `json:"success"`
	Models       []string `json:"models,omitempty"`
	CurrentModel string   `json:"current_model,omitempty"`
	Error        string   `json:"error,omitempty"`
	Message      string   `json:"message,omitempty"`
}

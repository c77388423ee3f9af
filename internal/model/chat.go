package model

import "time"

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatPDFRequest is the body of POST /api/chat/pdf. The referenced PDF is
// loaded into the session as context before the message is answered.
type ChatPDFRequest struct {
	SessionID string `json:"session_id"`
	PDFURL    string `json:"pdf_url"`
	Message   string `json:"message"`
}

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// RoleUserMessage builds a timestamped user message.
func RoleUserMessage(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleUser, Content: content, Timestamp: time.Now().UTC()}
}

// RoleAssistantMessage builds a timestamped assistant message.
func RoleAssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleAssistant, Content: content, Timestamp: time.Now().UTC()}
}

// ChatResult is the body returned by the chat endpoints.
type ChatResult struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	SessionID          string `json:"session_id"`
	HasPDFContext      bool   `json:"has_pdf_context"`
	PDFURL             string `json:"pdf_url,omitempty"`
	ConversationLength int    `json:"conversation_length"`
	Error              string `json:"error,omitempty"`
}

// ChatHistoryResponse is the body of GET /api/chat/history/:session_id.
type ChatHistoryResponse struct {
	Success      bool          `json:"success"`
	SessionID    string        `json:"session_id"`
	Messages     []ChatMessage `json:"messages,omitempty"`
	MessageCount int           `json:"message_count"`
	Error        string        `json:"error,omitempty"`
}

// ChatSessionResponse is the body of DELETE /api/chat/session/:session_id.
type ChatSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

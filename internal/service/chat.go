package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/extractor"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/fetcher"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
)

var ErrMessageRequired = errors.New("message is required")

const chatSystemPrompt = "You are a helpful AI assistant. Provide clear, accurate, and friendly responses."

// ChatService manages multi-turn conversations with optional PDF context.
// Sessions live in memory only and are lost on restart.
type ChatService interface {
	// Chat appends the user message to the session and returns the reply.
	Chat(ctx context.Context, sessionID, message string) (*model.ChatResult, error)
	// ChatWithPDF loads the PDF into the session context (once per URL),
	// then behaves like Chat.
	ChatWithPDF(ctx context.Context, sessionID, pdfURL, message string) (*model.ChatResult, error)
	// History returns the session's messages, or ok=false if it does not exist.
	History(sessionID string) ([]model.ChatMessage, bool)
	// ClearSession drops a session. Returns false if it did not exist.
	ClearSession(sessionID string) bool
}

// chatSession holds one conversation's state.
type chatSession struct {
	messages    []model.ChatMessage
	pdfURL      string
	pdfContext  string
	createdAt   time.Time
	lastUpdated time.Time
}

type chatService struct {
	fetch         fetcher.Fetcher
	extract       extractor.Extractor
	client        ollama.Client
	historyWindow int

	mu       sync.RWMutex
	sessions map[string]*chatSession
}

// NewChatService constructs a ChatService with injected collaborators.
func NewChatService(f fetcher.Fetcher, e extractor.Extractor, c ollama.Client, historyWindow int) ChatService {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	return &chatService{
		fetch:         f,
		extract:       e,
		client:        c,
		historyWindow: historyWindow,
		sessions:      make(map[string]*chatSession),
	}
}

func (s *chatService) Chat(ctx context.Context, sessionID, message string) (*model.ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}
	if sessionID == "" {
		sessionID = "default"
	}

	s.mu.Lock()
	session := s.getOrCreateLocked(sessionID)
	session.append(model.RoleUserMessage(message))
	msgs := s.buildConversationLocked(session)
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, msgs)
	if err != nil {
		return &model.ChatResult{
			Success:   false,
			Message:   "Sorry, I encountered an error processing your message.",
			SessionID: sessionID,
			Error:     err.Error(),
		}, nil
	}

	s.mu.Lock()
	session.append(model.RoleAssistantMessage(reply))
	result := &model.ChatResult{
		Success:            true,
		Message:            reply,
		SessionID:          sessionID,
		HasPDFContext:      session.pdfContext != "",
		PDFURL:             session.pdfURL,
		ConversationLength: len(session.messages),
	}
	s.mu.Unlock()

	return result, nil
}

func (s *chatService) ChatWithPDF(ctx context.Context, sessionID, pdfURL, message string) (*model.ChatResult, error) {
	if strings.TrimSpace(pdfURL) == "" {
		return nil, ErrURLRequired
	}
	if sessionID == "" {
		sessionID = "default"
	}

	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	loaded := ok && session.pdfURL == pdfURL
	s.mu.RUnlock()

	if !loaded {
		data, err := s.fetch.Fetch(ctx, pdfURL)
		if err != nil {
			return nil, fmt.Errorf("load pdf: %w", err)
		}
		text, err := s.extract.Extract(data)
		if err != nil {
			return nil, fmt.Errorf("load pdf: %w", err)
		}

		s.mu.Lock()
		session = s.getOrCreateLocked(sessionID)
		session.pdfURL = pdfURL
		session.pdfContext = text
		session.lastUpdated = time.Now().UTC()
		s.mu.Unlock()
	}

	return s.Chat(ctx, sessionID, message)
}

func (s *chatService) History(sessionID string) ([]model.ChatMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	out := make([]model.ChatMessage, len(session.messages))
	copy(out, session.messages)
	return out, true
}

func (s *chatService) ClearSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

func (s *chatService) getOrCreateLocked(sessionID string) *chatSession {
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	now := time.Now().UTC()
	session := &chatSession{createdAt: now, lastUpdated: now}
	s.sessions[sessionID] = session
	return session
}

// buildConversationLocked assembles the model conversation: system prompt,
// optional PDF context, then the most recent history window.
func (s *chatService) buildConversationLocked(session *chatSession) []ollama.Message {
	msgs := []ollama.Message{{Role: ollama.RoleSystem, Content: chatSystemPrompt}}

	if session.pdfContext != "" {
		msgs = append(msgs, ollama.Message{
			Role: ollama.RoleSystem,
			Content: fmt.Sprintf(
				"You have access to the following document (%s). Use it to answer questions when relevant.\n\n%s",
				session.pdfURL, session.pdfContext),
		})
	}

	history := session.messages
	if len(history) > s.historyWindow {
		history = history[len(history)-s.historyWindow:]
	}
	for _, m := range history {
		msgs = append(msgs, ollama.Message{Role: m.Role, Content: m.Content})
	}
	return msgs
}

func (cs *chatSession) append(msg model.ChatMessage) {
	cs.messages = append(cs.messages, msg)
	cs.lastUpdated = time.Now().UTC()
}

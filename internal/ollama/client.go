package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Package ollama talks to a locally hosted Ollama runtime. Generation goes
// through the runtime's OpenAI-compatible /v1 endpoint; model discovery and
// the health probe use the native /api/tags endpoint.

const (
	defaultHost  = "http://localhost:11434"
	defaultModel = "deepseek-r1:1.5b"

	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrUnavailable marks failures caused by the runtime being unreachable or
// the configured model not being loaded.
var ErrUnavailable = errors.New("ollama runtime unavailable")

const answerSystemPrompt = "You are a document question answering assistant. " +
	"Answer strictly based on the provided document content. " +
	"If the document does not contain the answer, say so. Be concise."

// Message is one turn of a model conversation.
type Message struct {
	Role    string
	Content string
}

// Status reports the outcome of a health probe.
type Status struct {
	Connected      bool
	ModelAvailable bool
}

// Client issues inference requests against the model runtime.
type Client interface {
	// Answer builds a grounded prompt from the document text and question and
	// returns the generated answer. One synchronous call, no streaming.
	Answer(ctx context.Context, docText, question string) (string, error)
	// Chat sends a multi-turn conversation and returns the reply.
	Chat(ctx context.Context, msgs []Message) (string, error)
	// Health probes the runtime. It never returns an error: probe failures
	// are reported as Connected=false.
	Health(ctx context.Context) Status
	// Models lists the model names known to the runtime.
	Models(ctx context.Context) ([]string, error)
	// Model reports the configured model name.
	Model() string
}

// Config provides client settings with sensible local defaults.
type Config struct {
	Host            string
	Model           string
	Timeout         time.Duration
	MaxTokens       int
	Temperature     float32
	MaxContextChars int
}

type apiClient struct {
	api             *openai.Client
	httpClient      *http.Client
	host            string
	model           string
	timeout         time.Duration
	maxTokens       int
	temperature     float32
	maxContextChars int
}

// NewClient builds a configured Ollama client.
func NewClient(cfg Config) Client {
	host := strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
	if host == "" {
		host = defaultHost
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	maxContextChars := cfg.MaxContextChars
	if maxContextChars <= 0 {
		maxContextChars = 10000
	}

	// Ollama ignores the API key but go-openai requires a bearer value.
	openaiCfg := openai.DefaultConfig("ollama")
	openaiCfg.BaseURL = host + "/v1"

	return &apiClient{
		api:             openai.NewClientWithConfig(openaiCfg),
		httpClient:      &http.Client{Timeout: timeout},
		host:            host,
		model:           model,
		timeout:         timeout,
		maxTokens:       maxTokens,
		temperature:     cfg.Temperature,
		maxContextChars: maxContextChars,
	}
}

func (c *apiClient) Model() string {
	return c.model
}

func (c *apiClient) Answer(ctx context.Context, docText, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("ollama: question is empty")
	}

	docText = truncate(docText, c.maxContextChars)
	user := fmt.Sprintf("Document content:\n%s\n\nQuestion: %s", docText, question)

	return c.Chat(ctx, []Message{
		{Role: RoleSystem, Content: answerSystemPrompt},
		{Role: RoleUser, Content: user},
	})
}

func (c *apiClient) Chat(ctx context.Context, msgs []Message) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("ollama: no messages")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(msgs)),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return stripReasoning(resp.Choices[0].Message.Content), nil
}

func (c *apiClient) Health(ctx context.Context) Status {
	names, err := c.Models(ctx)
	if err != nil {
		return Status{}
	}
	return Status{
		Connected:      true,
		ModelAvailable: containsModel(names, c.model),
	}
}

// tagsResponse mirrors the relevant part of GET /api/tags.
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (c *apiClient) Models(ctx context.Context) ([]string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: build tags request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tags returned %s", ErrUnavailable, resp.Status)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("%w: decode tags: %v", ErrUnavailable, err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func containsModel(names []string, model string) bool {
	for _, name := range names {
		if name == model {
			return true
		}
		// "llama3" matches "llama3:latest" and vice versa.
		if strings.TrimSuffix(name, ":latest") == strings.TrimSuffix(model, ":latest") {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// stripReasoning removes the <think>...</think> block emitted by reasoning
// models (deepseek-r1 family) so callers only see the final answer.
func stripReasoning(s string) string {
	const openTag, closeTag = "<think>", "</think>"
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, openTag) {
		if i := strings.Index(trimmed, closeTag); i >= 0 {
			trimmed = trimmed[i+len(closeTag):]
		}
	}
	return strings.TrimSpace(trimmed)
}

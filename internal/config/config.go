package config

import (
	"os"
	"strconv"
)

// OllamaConfig holds settings for the local Ollama model runtime.
type OllamaConfig struct {
	Host            string
	Model           string
	TimeoutSec      int
	MaxTokens       int
	Temperature     float64
	MaxContextChars int
}

// PDFConfig holds settings for PDF download and processing.
type PDFConfig struct {
	MaxSizeMB       int
	FetchTimeoutSec int
}

// QuestionsConfig bounds the number of questions accepted per request.
type QuestionsConfig struct {
	Min int
	Max int
}

// ChatConfig holds settings for the conversational endpoints.
type ChatConfig struct {
	HistoryWindow int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables at startup; values are not
// re-read at call time.
type AppConfig struct {
	AppHost   string
	Port      string
	Ollama    OllamaConfig
	PDF       PDFConfig
	Questions QuestionsConfig
	Chat      ChatConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Ollama: OllamaConfig{
			Host:            getEnv("OLLAMA_HOST", "http://localhost:11434"),
			Model:           getEnv("OLLAMA_MODEL", "deepseek-r1:1.5b"),
			TimeoutSec:      getEnvInt("OLLAMA_TIMEOUT_SEC", 60),
			MaxTokens:       getEnvInt("OLLAMA_MAX_TOKENS", 500),
			Temperature:     getEnvFloat("OLLAMA_TEMPERATURE", 0.2),
			MaxContextChars: getEnvInt("OLLAMA_MAX_CONTEXT_CHARS", 10000),
		},
		PDF: PDFConfig{
			MaxSizeMB:       getEnvInt("PDF_MAX_SIZE_MB", 50),
			FetchTimeoutSec: getEnvInt("PDF_FETCH_TIMEOUT_SEC", 30),
		},
		Questions: QuestionsConfig{
			Min: getEnvInt("QUESTIONS_MIN", 1),
			Max: getEnvInt("QUESTIONS_MAX", 20),
		},
		Chat: ChatConfig{
			HistoryWindow: getEnvInt("CHAT_HISTORY_WINDOW", 10),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/extractor"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/fetcher"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
)

var (
	ErrURLRequired   = errors.New("pdf_url is required")
	ErrInvalidURL    = errors.New("pdf_url must start with http:// or https://")
	ErrQuestionCount = errors.New("question count out of bounds")
	ErrEmptyQuestion = errors.New("questions must not be blank")
)

// QuestionBounds limits how many questions a single request may carry.
type QuestionBounds struct {
	Min int
	Max int
}

// AnswerService defines the request-answering use case: fetch the PDF once,
// extract its text once, then answer each question in input order.
type AnswerService interface {
	// Process validates the request and produces one AnswerItem per question.
	// Validation failures return an error before any network call; fetch and
	// extraction failures return a well-formed response with Success=false.
	Process(ctx context.Context, req model.AnswerRequest) (*model.AnswerResponse, error)
}

type answerService struct {
	fetch   fetcher.Fetcher
	extract extractor.Extractor
	client  ollama.Client
	bounds  QuestionBounds
}

// NewAnswerService constructs an AnswerService with injected collaborators.
func NewAnswerService(f fetcher.Fetcher, e extractor.Extractor, c ollama.Client, bounds QuestionBounds) AnswerService {
	if bounds.Min <= 0 {
		bounds.Min = 1
	}
	if bounds.Max <= 0 {
		bounds.Max = 20
	}
	return &answerService{fetch: f, extract: e, client: c, bounds: bounds}
}

func (s *answerService) Process(ctx context.Context, req model.AnswerRequest) (*model.AnswerResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	data, err := s.fetch.Fetch(ctx, req.PDFURL)
	if err != nil {
		return s.failure(req, fmt.Sprintf("failed to download PDF: %v", err)), nil
	}

	text, err := s.extract.Extract(data)
	if err != nil {
		return s.failure(req, fmt.Sprintf("failed to extract text from PDF: %v", err)), nil
	}

	answers := make([]model.AnswerItem, 0, len(req.Questions))
	for i, question := range req.Questions {
		item := model.AnswerItem{
			QuestionNumber: i + 1,
			Question:       question,
			Status:         model.StatusSuccess,
		}
		answer, err := s.client.Answer(ctx, text, question)
		if err != nil {
			// Model failures are isolated: the batch continues.
			item.Status = model.StatusError
			item.Answer = fmt.Sprintf("failed to generate answer: %v", err)
		} else {
			item.Answer = answer
		}
		answers = append(answers, item)
	}

	return &model.AnswerResponse{
		Success:        true,
		TotalQuestions: len(req.Questions),
		Answers:        answers,
		ModelUsed:      s.client.Model(),
		PDFProcessed:   true,
	}, nil
}

func (s *answerService) validate(req model.AnswerRequest) error {
	url := strings.TrimSpace(req.PDFURL)
	if url == "" {
		return ErrURLRequired
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ErrInvalidURL
	}
	if len(req.Questions) < s.bounds.Min || len(req.Questions) > s.bounds.Max {
		return fmt.Errorf("%w: got %d, want %d..%d",
			ErrQuestionCount, len(req.Questions), s.bounds.Min, s.bounds.Max)
	}
	for _, q := range req.Questions {
		if strings.TrimSpace(q) == "" {
			return ErrEmptyQuestion
		}
	}
	return nil
}

// failure builds the whole-request failure response. Answers is still filled
// with one error-tagged item per question so the answers length always matches
// the question count.
func (s *answerService) failure(req model.AnswerRequest, msg string) *model.AnswerResponse {
	answers := make([]model.AnswerItem, 0, len(req.Questions))
	for i, question := range req.Questions {
		answers = append(answers, model.AnswerItem{
			QuestionNumber: i + 1,
			Question:       question,
			Answer:         msg,
			Status:         model.StatusError,
		})
	}
	return &model.AnswerResponse{
		Success:        false,
		TotalQuestions: len(req.Questions),
		Answers:        answers,
		ModelUsed:      s.client.Model(),
		PDFProcessed:   false,
		Error:          msg,
	}
}

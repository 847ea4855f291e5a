package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/career-compass/internal/models"
)

// InterviewService runs the dynamic interview as a pure function over
// (interests, history, turn number). No session state is held server-side;
// the caller supplies the full transcript on every call.
type InterviewService interface {
	Start(ctx context.Context, interests string) (*models.QuestionResponse, error)
	Next(ctx context.Context, interests string, previousQuestions, previousResponses []string, turnNumber int) (*models.QuestionResponse, error)
	GenerateQuestions(ctx context.Context, interests string) ([]string, error)
}

type interviewService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxTurns      int
	maxRetries    int
}

func NewInterviewService(gemini GeminiService, maxTurns, maxRetries int) InterviewService {
	return &interviewService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxTurns:      maxTurns,
		maxRetries:    maxRetries,
	}
}

// Start generates turn 1 of the interview.
func (s *interviewService) Start(ctx context.Context, interests string) (*models.QuestionResponse, error) {
	if strings.TrimSpace(interests) == "" {
		return nil, fmt.Errorf("%w: interests must not be empty", ErrValidation)
	}

	prompt := s.promptBuilder.BuildInitialQuestionPrompt(interests)

	question, err := s.generateQuestion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	question.IsFinalQuestion = 1 >= s.maxTurns
	return question, nil
}

// Next generates turn N given the transcript so far. The turn budget is
// enforced here: the response for the last turn always carries
// is_final_question=true, whatever the model claims.
func (s *interviewService) Next(ctx context.Context, interests string, previousQuestions, previousResponses []string, turnNumber int) (*models.QuestionResponse, error) {
	if strings.TrimSpace(interests) == "" {
		return nil, fmt.Errorf("%w: interests must not be empty", ErrValidation)
	}
	if turnNumber < 1 {
		return nil, fmt.Errorf("%w: turn number must be >= 1", ErrValidation)
	}
	if len(previousResponses) > len(previousQuestions) {
		return nil, fmt.Errorf("%w: more responses than questions in transcript", ErrValidation)
	}

	prompt := s.promptBuilder.BuildNextQuestionPrompt(
		interests,
		previousQuestions,
		previousResponses,
		turnNumber,
		s.maxTurns,
	)

	question, err := s.generateQuestion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	question.IsFinalQuestion = turnNumber >= s.maxTurns
	return question, nil
}

// GenerateQuestions produces a static batch of 5-7 open-ended interview
// questions. Unlike the dynamic turns, this op degrades to a fixed question
// list when generation fails.
func (s *interviewService) GenerateQuestions(ctx context.Context, interests string) ([]string, error) {
	if strings.TrimSpace(interests) == "" {
		return nil, fmt.Errorf("%w: interests must not be empty", ErrValidation)
	}

	prompt := s.promptBuilder.BuildQuestionBatchPrompt(interests)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return fallbackQuestions(), nil
	}

	var questions []string
	for _, line := range strings.Split(response, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			questions = append(questions, line)
		}
	}

	if len(questions) == 0 {
		return fallbackQuestions(), nil
	}
	return questions, nil
}

// generateQuestion runs one generation call and parses the structured
// question. Any failure is surfaced as a generation error: a guessed
// question would corrupt the interview, so there is no fallback here.
func (s *interviewService) generateQuestion(ctx context.Context, prompt string) (*models.QuestionResponse, error) {
	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var question models.QuestionResponse
	if err := parseJSONResponse(response, &question); err != nil {
		return nil, fmt.Errorf("%w: unparseable question payload: %v", ErrGeneration, err)
	}

	if strings.TrimSpace(question.Question) == "" {
		return nil, fmt.Errorf("%w: model returned an empty question", ErrGeneration)
	}

	return &question, nil
}

func fallbackQuestions() []string {
	return []string{
		"What motivates you to learn new things?",
		"How do you prefer to work - alone or in teams?",
		"What kind of problems do you enjoy solving?",
		"How do you handle challenges and setbacks?",
		"What are your long-term career goals?",
	}
}

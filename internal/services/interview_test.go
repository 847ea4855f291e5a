package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGemini struct {
	response  string
	err       error
	prompts   []string
	embedding []float32
	embedErr  error
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	if s.embedding != nil {
		return s.embedding, nil
	}
	return make([]float32, 768), nil
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return s.GenerateText(ctx, prompt, temperature)
}

func TestInterviewTurnBudget(t *testing.T) {
	stub := &stubGemini{response: `{"question": "What do you enjoy about coding?", "is_final_question": false}`}
	svc := NewInterviewService(stub, 8, 1)

	first, err := svc.Start(context.Background(), "programming and robotics")
	require.NoError(t, err)
	assert.False(t, first.IsFinalQuestion)

	questions := []string{first.Question}
	responses := []string{"I like building small games"}

	for turn := 2; turn <= 8; turn++ {
		q, err := svc.Next(context.Background(), "programming and robotics", questions, responses, turn)
		require.NoError(t, err)

		if turn < 8 {
			assert.False(t, q.IsFinalQuestion, "turn %d must not be final", turn)
		} else {
			assert.True(t, q.IsFinalQuestion, "turn 8 must be final")
		}

		questions = append(questions, q.Question)
		responses = append(responses, fmt.Sprintf("answer %d", turn))
	}
}

func TestInterviewBudgetOverridesModelClaim(t *testing.T) {
	// The model claims the interview is over at turn 3; the configured
	// budget says otherwise.
	stub := &stubGemini{response: `{"question": "One more thing?", "is_final_question": true}`}
	svc := NewInterviewService(stub, 8, 1)

	q, err := svc.Next(context.Background(), "art", []string{"q1", "q2"}, []string{"a1", "a2"}, 3)
	require.NoError(t, err)
	assert.False(t, q.IsFinalQuestion)
}

func TestInterviewStartEmptyInterests(t *testing.T) {
	svc := NewInterviewService(&stubGemini{}, 8, 1)

	_, err := svc.Start(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInterviewGenerationFailureSurfaces(t *testing.T) {
	stub := &stubGemini{err: errors.New("model unavailable")}
	svc := NewInterviewService(stub, 8, 1)

	_, err := svc.Start(context.Background(), "music")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)

	_, err = svc.Next(context.Background(), "music", []string{"q1"}, []string{"a1"}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestInterviewUnparseableResponseSurfaces(t *testing.T) {
	stub := &stubGemini{response: "I would rather chat freely than emit JSON."}
	svc := NewInterviewService(stub, 8, 1)

	_, err := svc.Start(context.Background(), "music")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestInterviewStripsCodeFences(t *testing.T) {
	stub := &stubGemini{response: "```json\n{\"question\": \"Why do you like robots?\", \"is_final_question\": false}\n```"}
	svc := NewInterviewService(stub, 8, 1)

	q, err := svc.Start(context.Background(), "robotics")
	require.NoError(t, err)
	assert.Equal(t, "Why do you like robots?", q.Question)
}

func TestInterviewNextTranscriptMismatch(t *testing.T) {
	svc := NewInterviewService(&stubGemini{}, 8, 1)

	_, err := svc.Next(context.Background(), "sports", []string{"q1"}, []string{"a1", "a2"}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInterviewNextPromptCarriesTranscript(t *testing.T) {
	stub := &stubGemini{response: `{"question": "Next?", "is_final_question": false}`}
	svc := NewInterviewService(stub, 8, 1)

	_, err := svc.Next(context.Background(), "chemistry",
		[]string{"What drew you to chemistry?"},
		[]string{"Mixing things in the lab"},
		2,
	)
	require.NoError(t, err)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "chemistry")
	assert.Contains(t, stub.prompts[0], "What drew you to chemistry?")
	assert.Contains(t, stub.prompts[0], "Mixing things in the lab")
	assert.Contains(t, stub.prompts[0], "Current question number: 2 of 8")
}

func TestGenerateQuestionsSplitsLines(t *testing.T) {
	stub := &stubGemini{response: "How do you learn best?\n\nWhat motivates you?\n  What problems excite you?  \n"}
	svc := NewInterviewService(stub, 8, 1)

	questions, err := svc.GenerateQuestions(context.Background(), "biology")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"How do you learn best?",
		"What motivates you?",
		"What problems excite you?",
	}, questions)
}

func TestGenerateQuestionsFallback(t *testing.T) {
	stub := &stubGemini{err: errors.New("model unavailable")}
	svc := NewInterviewService(stub, 8, 1)

	questions, err := svc.GenerateQuestions(context.Background(), "biology")
	require.NoError(t, err)
	assert.Len(t, questions, 5)
	assert.Contains(t, questions, "What motivates you to learn new things?")
}

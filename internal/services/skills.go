package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"alfredoptarigan/career-compass/internal/models"
	"alfredoptarigan/career-compass/internal/repositories"
)

// SkillInferenceService turns a finished interview transcript into a
// structured skill profile.
type SkillInferenceService interface {
	Infer(ctx context.Context, interests string, responses []string) *models.SkillProfile
	InferAndSave(ctx context.Context, studentID uint, interests string, responses []string) (*models.SkillProfile, error)
}

type skillInferenceService struct {
	gemini        GeminiService
	profileRepo   repositories.SkillProfileRepository
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewSkillInferenceService(gemini GeminiService, profileRepo repositories.SkillProfileRepository, maxRetries int) SkillInferenceService {
	return &skillInferenceService{
		gemini:        gemini,
		profileRepo:   profileRepo,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type skillAnalysis struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	LearningStyle   string   `json:"learning_style"`
	CareerInterests []string `json:"career_interests"`
	ConfidenceLevel string   `json:"confidence_level"`
}

// Infer never fails: when the model call or the structural parse goes wrong
// it degrades to the default profile, because a weak profile still supports
// a downstream recommendation while no profile supports none. All list
// fields of the returned profile are non-nil.
func (s *skillInferenceService) Infer(ctx context.Context, interests string, responses []string) *models.SkillProfile {
	prompt := s.promptBuilder.BuildSkillInferencePrompt(interests, responses)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		log.Printf("⚠️  Skill inference generation failed, using default profile: %v\n", err)
		return defaultSkillProfile()
	}

	var analysis skillAnalysis
	if err := parseJSONResponse(response, &analysis); err != nil {
		log.Printf("⚠️  Skill inference parse failed, using default profile: %v\n", err)
		return defaultSkillProfile()
	}

	profile := &models.SkillProfile{
		TechnicalSkills: datatypes.NewJSONSlice(analysis.TechnicalSkills),
		SoftSkills:      datatypes.NewJSONSlice(analysis.SoftSkills),
		LearningStyle:   analysis.LearningStyle,
		CareerInterests: datatypes.NewJSONSlice(analysis.CareerInterests),
		ConfidenceLevel: normalizeConfidence(analysis.ConfidenceLevel),
	}
	profile.Normalize()

	return profile
}

// InferAndSave infers the profile and upserts it whole for the student, so
// concurrent inferences never interleave partial field writes.
func (s *skillInferenceService) InferAndSave(ctx context.Context, studentID uint, interests string, responses []string) (*models.SkillProfile, error) {
	if studentID == 0 {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}

	profile := s.Infer(ctx, interests, responses)
	profile.StudentID = studentID

	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, fmt.Errorf("%w: saving skill profile: %v", ErrPersistence, err)
	}

	return profile, nil
}

func normalizeConfidence(level string) models.ConfidenceLevel {
	switch models.ConfidenceLevel(level) {
	case models.ConfidenceLow, models.ConfidenceMedium, models.ConfidenceHigh:
		return models.ConfidenceLevel(level)
	default:
		return models.ConfidenceMedium
	}
}

func defaultSkillProfile() *models.SkillProfile {
	return &models.SkillProfile{
		TechnicalSkills: datatypes.NewJSONSlice([]string{"problem-solving"}),
		SoftSkills:      datatypes.NewJSONSlice([]string{"communication"}),
		LearningStyle:   "mixed",
		CareerInterests: datatypes.NewJSONSlice([]string{"technology"}),
		ConfidenceLevel: models.ConfidenceMedium,
	}
}

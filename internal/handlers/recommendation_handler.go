package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"alfredoptarigan/career-compass/internal/models"
	"alfredoptarigan/career-compass/internal/repositories"
	"alfredoptarigan/career-compass/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
	profileRepo           repositories.SkillProfileRepository
	recommendationRepo    repositories.RecommendationRepository
}

func NewRecommendationHandler(
	recommendationService services.RecommendationService,
	profileRepo repositories.SkillProfileRepository,
	recommendationRepo repositories.RecommendationRepository,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		profileRepo:           profileRepo,
		recommendationRepo:    recommendationRepo,
	}
}

// HandleRecommend handles POST /career/recommendations. The profile may be
// supplied inline (the analysis is then persisted for the student first) or
// loaded from the student's stored profile.
func (h *RecommendationHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.StudentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "student_id is required",
		})
	}

	profile, err := h.resolveProfile(&req)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No skill profile found for student",
			})
		}
		return errorResponse(c, err)
	}

	ranked, err := h.recommendationService.Recommend(c.Context(), req.StudentID, profile)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.RecommendationResponse{RecommendedCareers: ranked})
}

// HandleGetStored handles GET /career/recommendations/:student_id
func (h *RecommendationHandler) HandleGetStored(c *fiber.Ctx) error {
	studentID, err := strconv.ParseUint(c.Params("student_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	stored, err := h.recommendationRepo.FindByStudentID(uint(studentID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load recommendations",
		})
	}

	return c.JSON(fiber.Map{"recommendations": stored})
}

func (h *RecommendationHandler) resolveProfile(req *models.RecommendationRequest) (*models.SkillProfile, error) {
	if req.InterviewAnalysis == nil {
		return h.profileRepo.FindByStudentID(req.StudentID)
	}

	analysis := req.InterviewAnalysis
	profile := &models.SkillProfile{
		StudentID:       req.StudentID,
		TechnicalSkills: datatypes.NewJSONSlice(analysis.TechnicalSkills),
		SoftSkills:      datatypes.NewJSONSlice(analysis.SoftSkills),
		LearningStyle:   analysis.LearningStyle,
		CareerInterests: datatypes.NewJSONSlice(analysis.CareerInterests),
		ConfidenceLevel: models.ConfidenceLevel(analysis.ConfidenceLevel),
	}
	profile.Normalize()

	// Keep the stored profile in sync with the inline analysis, matching the
	// replace-whole-row semantics of the inference step.
	if err := h.profileRepo.Upsert(profile); err != nil {
		return nil, fmt.Errorf("%w: saving inline skill profile: %v", services.ErrPersistence, err)
	}

	return profile, nil
}

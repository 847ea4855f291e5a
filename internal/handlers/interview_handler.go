package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/career-compass/internal/models"
	"alfredoptarigan/career-compass/internal/repositories"
	"alfredoptarigan/career-compass/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	skillService     services.SkillInferenceService
	profileRepo      repositories.SkillProfileRepository
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	skillService services.SkillInferenceService,
	profileRepo repositories.SkillProfileRepository,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		skillService:     skillService,
		profileRepo:      profileRepo,
	}
}

// HandleStart handles POST /interview/dynamic/start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.InterviewStartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	question, err := h.interviewService.Start(c.Context(), req.Interests)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(question)
}

// HandleNext handles POST /interview/dynamic/next
func (h *InterviewHandler) HandleNext(c *fiber.Ctx) error {
	var req models.NextQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CurrentQuestionNumber == 0 {
		req.CurrentQuestionNumber = 1
	}

	question, err := h.interviewService.Next(
		c.Context(),
		req.Interests,
		req.PreviousQuestions,
		req.PreviousResponses,
		req.CurrentQuestionNumber,
	)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(question)
}

// HandleQuestions handles POST /interview/questions
func (h *InterviewHandler) HandleQuestions(c *fiber.Ctx) error {
	var req models.InterviewStartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	questions, err := h.interviewService.GenerateQuestions(c.Context(), req.Interests)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.QuestionListResponse{Questions: questions})
}

// HandleAnalyze handles POST /interview/analyze
func (h *InterviewHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.SkillAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	profile, err := h.skillService.InferAndSave(c.Context(), req.StudentID, req.Interests, req.Responses)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(profileToAnalysis(profile))
}

// HandleGetResult handles GET /interview/result/:student_id
func (h *InterviewHandler) HandleGetResult(c *fiber.Ctx) error {
	studentID, err := strconv.ParseUint(c.Params("student_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	profile, err := h.profileRepo.FindByStudentID(uint(studentID))
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No interview result found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview result",
		})
	}

	return c.JSON(profile)
}

func profileToAnalysis(profile *models.SkillProfile) models.SkillAnalysisResponse {
	return models.SkillAnalysisResponse{
		TechnicalSkills: profile.TechnicalSkills,
		SoftSkills:      profile.SoftSkills,
		LearningStyle:   profile.LearningStyle,
		CareerInterests: profile.CareerInterests,
		ConfidenceLevel: string(profile.ConfidenceLevel),
	}
}

package models

type InterviewStartRequest struct {
	StudentID uint   `json:"student_id"`
	Interests string `json:"interests" validate:"required"`
}

type QuestionListResponse struct {
	Questions []string `json:"questions"`
}

type NextQuestionRequest struct {
	Interests             string   `json:"interests" validate:"required"`
	PreviousQuestions     []string `json:"previous_questions"`
	PreviousResponses     []string `json:"previous_responses"`
	CurrentQuestionNumber int      `json:"current_question_number"`
}

type QuestionResponse struct {
	Question        string `json:"question"`
	IsFinalQuestion bool   `json:"is_final_question"`
}

type SkillAnalysisRequest struct {
	StudentID uint     `json:"student_id" validate:"required"`
	Interests string   `json:"interests" validate:"required"`
	Responses []string `json:"responses" validate:"required"`
}

type SkillAnalysisResponse struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	LearningStyle   string   `json:"learning_style"`
	CareerInterests []string `json:"career_interests"`
	ConfidenceLevel string   `json:"confidence_level"`
}

// RankedCareer is one item of the ranker's structured output, ordered most
// suitable first.
type RankedCareer struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	MatchReason     string   `json:"match_reason"`
	ConfidenceScore float64  `json:"confidence_score"`
	RequiredSkills  []string `json:"required_skills"`
	LearningPath    string   `json:"learning_path"`
}

type RecommendationRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	// InterviewAnalysis optionally carries the profile inline; when absent
	// the stored profile for the student is used.
	InterviewAnalysis *SkillAnalysisResponse `json:"interview_analysis,omitempty"`
}

type RecommendationResponse struct {
	RecommendedCareers []RankedCareer `json:"recommended_careers"`
}

type StoredRecommendation struct {
	CareerID        uint     `json:"career_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	MatchReason     string   `json:"match_reason"`
	ConfidenceScore float64  `json:"confidence_score"`
	LearningPath    string   `json:"learning_path"`
}

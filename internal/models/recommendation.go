package models

import "time"

// CareerRecommendation links a student to a ranked career. The full set for
// a student is replaced wholesale on every ranking run; at most one row per
// (student, career) pair.
type CareerRecommendation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentID       uint      `gorm:"not null;index;uniqueIndex:uq_student_career" json:"student_id"`
	CareerID        uint      `gorm:"not null;index;uniqueIndex:uq_student_career" json:"career_id"`
	MatchReason     string    `gorm:"type:text" json:"match_reason"`
	ConfidenceScore float64   `json:"confidence_score"`
	LearningPath    string    `gorm:"type:text" json:"learning_path"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Career Career `gorm:"foreignKey:CareerID" json:"-"`
}

func (CareerRecommendation) TableName() string {
	return "student_career_recommendations"
}

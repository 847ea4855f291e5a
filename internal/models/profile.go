package models

import (
	"time"

	"gorm.io/datatypes"
)

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// SkillProfile is the structured summary inferred from a finished interview.
// One row per student; a new inference run replaces the whole row. The list
// columns are always non-nil so downstream consumers never see absent fields.
type SkillProfile struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	StudentID       uint                        `gorm:"not null;uniqueIndex" json:"student_id"`
	TechnicalSkills datatypes.JSONSlice[string] `gorm:"type:json" json:"technical_skills"`
	SoftSkills      datatypes.JSONSlice[string] `gorm:"type:json" json:"soft_skills"`
	LearningStyle   string                      `gorm:"type:text" json:"learning_style"`
	CareerInterests datatypes.JSONSlice[string] `gorm:"type:json" json:"career_interests"`
	ConfidenceLevel ConfidenceLevel             `gorm:"type:varchar(32)" json:"confidence_level"`
	CreatedAt       time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SkillProfile) TableName() string {
	return "skill_profiles"
}

// Normalize replaces nil list columns with empty slices.
func (p *SkillProfile) Normalize() {
	if p.TechnicalSkills == nil {
		p.TechnicalSkills = datatypes.JSONSlice[string]{}
	}
	if p.SoftSkills == nil {
		p.SoftSkills = datatypes.JSONSlice[string]{}
	}
	if p.CareerInterests == nil {
		p.CareerInterests = datatypes.JSONSlice[string]{}
	}
}

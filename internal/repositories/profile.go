package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/career-compass/internal/models"
)

// ErrProfileNotFound reports that a student has no stored skill profile.
// Callers check it with errors.Is to tell absence apart from a database
// failure.
var ErrProfileNotFound = errors.New("skill profile not found")

type SkillProfileRepository interface {
	Upsert(profile *models.SkillProfile) error
	FindByStudentID(studentID uint) (*models.SkillProfile, error)
}

type skillProfileRepository struct {
	db *gorm.DB
}

func NewSkillProfileRepository(db *gorm.DB) SkillProfileRepository {
	return &skillProfileRepository{db: db}
}

// Upsert implements SkillProfileRepository. The profile is written as a
// single ON CONFLICT statement keyed on student_id, so a concurrent upsert
// for the same student can never interleave partial field writes.
func (r *skillProfileRepository) Upsert(profile *models.SkillProfile) error {
	profile.UpdatedAt = time.Now()

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"technical_skills",
			"soft_skills",
			"learning_style",
			"career_interests",
			"confidence_level",
			"updated_at",
		}),
	}).Create(profile).Error

	if err != nil {
		return fmt.Errorf("failed to upsert skill profile: %w", err)
	}
	return nil
}

// FindByStudentID implements SkillProfileRepository.
func (r *skillProfileRepository) FindByStudentID(studentID uint) (*models.SkillProfile, error) {
	var profile models.SkillProfile
	if err := r.db.Where("student_id = ?", studentID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find skill profile: %w", err)
	}

	profile.Normalize()
	return &profile, nil
}

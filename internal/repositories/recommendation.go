package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alfredoptarigan/career-compass/internal/models"
)

type RecommendationRepository interface {
	Replace(studentID uint, ranked []models.RankedCareer) (int, error)
	FindByStudentID(studentID uint) ([]models.StoredRecommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// Replace implements RecommendationRepository. The student's entire
// recommendation set is swapped in one transaction: delete everything, then
// insert a row per ranked item with a non-blank title, resolving the Career
// by exact title (created lazily on first use). If anything fails the whole
// replace rolls back and the prior set stays intact. Returns the number of
// rows stored.
func (r *recommendationRepository) Replace(studentID uint, ranked []models.RankedCareer) (int, error) {
	stored := 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// At READ COMMITTED, two concurrent replaces for the same student can
		// interleave into a union of both sets: the later DELETE never sees
		// the earlier run's uncommitted inserts. An advisory lock held for
		// the transaction serializes the runs so the last commit wins whole.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(studentID)).Error; err != nil {
				return fmt.Errorf("failed to serialize recommendation replace: %w", err)
			}
		}

		if err := tx.Where("student_id = ?", studentID).
			Delete(&models.CareerRecommendation{}).Error; err != nil {
			return fmt.Errorf("failed to clear old recommendations: %w", err)
		}

		for _, item := range ranked {
			title := strings.TrimSpace(item.Title)
			if title == "" {
				continue
			}

			career, err := findOrCreateCareer(tx, title, item)
			if err != nil {
				return err
			}

			rec := &models.CareerRecommendation{
				StudentID:       studentID,
				CareerID:        career.ID,
				MatchReason:     item.MatchReason,
				ConfidenceScore: item.ConfidenceScore,
				LearningPath:    item.LearningPath,
				CreatedAt:       time.Now(),
				UpdatedAt:       time.Now(),
			}
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("failed to create recommendation: %w", err)
			}

			stored++
		}

		return nil
	})

	if err != nil {
		return 0, err
	}
	return stored, nil
}

// findOrCreateCareer resolves a Career row by exact title. Two requests
// racing to create the same title is resolved by retrying the lookup after
// a failed insert, not by locking.
func findOrCreateCareer(tx *gorm.DB, title string, item models.RankedCareer) (*models.Career, error) {
	var career models.Career

	err := tx.Where("title = ?", title).First(&career).Error
	if err == nil {
		return &career, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up career: %w", err)
	}

	career = models.Career{
		Title:          title,
		Description:    item.Description,
		RequiredSkills: datatypes.NewJSONSlice(item.RequiredSkills),
		Programs:       datatypes.JSONSlice[string]{},
		CreatedAt:      time.Now(),
	}
	if createErr := tx.Create(&career).Error; createErr != nil {
		// Lost the unique-title race; the row exists now.
		if lookupErr := tx.Where("title = ?", title).First(&career).Error; lookupErr != nil {
			return nil, fmt.Errorf("failed to create career: %w", createErr)
		}
	}

	return &career, nil
}

// FindByStudentID implements RecommendationRepository. Rows come back in
// insertion order, which is the ranking order of the run that wrote them.
func (r *recommendationRepository) FindByStudentID(studentID uint) ([]models.StoredRecommendation, error) {
	var recs []models.CareerRecommendation
	err := r.db.
		Preload("Career").
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	stored := make([]models.StoredRecommendation, 0, len(recs))
	for _, rec := range recs {
		stored = append(stored, models.StoredRecommendation{
			CareerID:        rec.CareerID,
			Title:           rec.Career.Title,
			Description:     rec.Career.Description,
			RequiredSkills:  rec.Career.RequiredSkills,
			MatchReason:     rec.MatchReason,
			ConfidenceScore: rec.ConfidenceScore,
			LearningPath:    rec.LearningPath,
		})
	}

	return stored, nil
}

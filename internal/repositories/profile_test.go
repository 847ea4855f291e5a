package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"alfredoptarigan/career-compass/internal/models"
)

func TestUpsertCreatesThenReplaces(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillProfileRepository(db)

	first := &models.SkillProfile{
		StudentID:       1,
		TechnicalSkills: datatypes.NewJSONSlice([]string{"python"}),
		SoftSkills:      datatypes.NewJSONSlice([]string{"teamwork"}),
		LearningStyle:   "hands-on",
		CareerInterests: datatypes.NewJSONSlice([]string{"ai"}),
		ConfidenceLevel: models.ConfidenceMedium,
	}
	require.NoError(t, repo.Upsert(first))

	second := &models.SkillProfile{
		StudentID:       1,
		TechnicalSkills: datatypes.NewJSONSlice([]string{"go", "sql"}),
		SoftSkills:      datatypes.NewJSONSlice([]string{"leadership"}),
		LearningStyle:   "visual",
		CareerInterests: datatypes.NewJSONSlice([]string{"backend"}),
		ConfidenceLevel: models.ConfidenceHigh,
	}
	require.NoError(t, repo.Upsert(second))

	// Still a single row per student, with every field from the second write.
	var count int64
	require.NoError(t, db.Model(&models.SkillProfile{}).
		Where("student_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByStudentID(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, []string(stored.TechnicalSkills))
	assert.Equal(t, []string{"leadership"}, []string(stored.SoftSkills))
	assert.Equal(t, "visual", stored.LearningStyle)
	assert.Equal(t, []string{"backend"}, []string(stored.CareerInterests))
	assert.Equal(t, models.ConfidenceHigh, stored.ConfidenceLevel)
}

func TestUpsertKeepsStudentsIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillProfileRepository(db)

	require.NoError(t, repo.Upsert(&models.SkillProfile{
		StudentID:       1,
		TechnicalSkills: datatypes.NewJSONSlice([]string{"python"}),
		LearningStyle:   "hands-on",
	}))
	require.NoError(t, repo.Upsert(&models.SkillProfile{
		StudentID:       2,
		TechnicalSkills: datatypes.NewJSONSlice([]string{"design"}),
		LearningStyle:   "visual",
	}))

	first, err := repo.FindByStudentID(1)
	require.NoError(t, err)
	second, err := repo.FindByStudentID(2)
	require.NoError(t, err)

	assert.Equal(t, "hands-on", first.LearningStyle)
	assert.Equal(t, "visual", second.LearningStyle)
}

func TestFindByStudentIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillProfileRepository(db)

	_, err := repo.FindByStudentID(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFindByStudentIDNormalizesCollections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillProfileRepository(db)

	require.NoError(t, db.Create(&models.SkillProfile{
		StudentID:     3,
		LearningStyle: "mixed",
	}).Error)

	stored, err := repo.FindByStudentID(3)
	require.NoError(t, err)
	assert.NotNil(t, stored.TechnicalSkills)
	assert.NotNil(t, stored.SoftSkills)
	assert.NotNil(t, stored.CareerInterests)
}

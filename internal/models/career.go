package models

import (
	"time"

	"gorm.io/datatypes"
)

// Career is a shared reference row, deduplicated by exact title. Created
// lazily the first time a recommended title has no existing row; never
// deleted by the recommendation pipeline.
type Career struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Title          string                      `gorm:"type:varchar(128);not null;uniqueIndex" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"type:json" json:"required_skills"`
	Programs       datatypes.JSONSlice[string] `gorm:"type:json" json:"programs"`
	CreatedAt      time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Career) TableName() string {
	return "careers"
}

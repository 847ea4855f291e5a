package models

import "time"

// Student rows are created by the auth layer; the recommendation core only
// references them by foreign key.
type Student struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RollNumber string    `gorm:"type:varchar(32);uniqueIndex" json:"roll_number"`
	FirstName  string    `gorm:"type:varchar(64);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(64);not null" json:"last_name"`
	Email      string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}

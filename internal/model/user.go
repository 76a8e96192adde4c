package model

import "time"

// User is a registered account. Users are never deleted.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}

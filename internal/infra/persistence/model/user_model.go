package model

import (
	"time"
)

// UserModel mirrors the 'users' table. PostgreSQL generates the ID from a
// BIGSERIAL sequence, so inserted IDs are unique and strictly increasing.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(128);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

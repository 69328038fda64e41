package models

import (
	"time"

	"vantage/internal/shared/constants"
)

// UserModel is the database persistence model for users, the anti-corruption
// layer between domain and database.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	RoleID       uint   `gorm:"not null;index"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

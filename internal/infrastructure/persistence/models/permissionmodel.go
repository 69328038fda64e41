package models

import (
	"time"

	"vantage/internal/shared/constants"
)

type PermissionModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"uniqueIndex;not null;size:80"`
	Module      string `gorm:"not null;size:50;index:idx_module_action"`
	Action      string `gorm:"not null;size:20;index:idx_module_action"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}

package models

import (
	"time"

	"vantage/internal/shared/constants"
)

type RoleModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"uniqueIndex;not null;size:50"`
	DisplayName  string `gorm:"not null;size:100"`
	Description  string `gorm:"type:text"`
	IsSuperAdmin bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (RoleModel) TableName() string {
	return constants.TableRoles
}

type RolePermissionModel struct {
	ID           uint `gorm:"primarykey"`
	RoleID       uint `gorm:"not null;uniqueIndex:idx_role_permission"`
	PermissionID uint `gorm:"not null;uniqueIndex:idx_role_permission"`
	CreatedAt    time.Time
}

func (RolePermissionModel) TableName() string {
	return constants.TableRolePermissions
}

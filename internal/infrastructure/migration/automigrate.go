package migration

import (
	"fmt"

	"gorm.io/gorm"

	"vantage/internal/infrastructure/persistence/models"
	"vantage/internal/shared/logger"
)

// AutoMigrate creates or updates the schema for every persistence model.
// Intended for development and test databases; production schemas are managed
// out of band.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.PermissionModel{},
		&models.RoleModel{},
		&models.RolePermissionModel{},
		&models.UserModel{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	logger.Info("database schema migrated")
	return nil
}

package seeds

import (
	"fmt"

	"gorm.io/gorm"

	"vantage/internal/infrastructure/persistence/models"
)

// defaultPermissions is the canonical seed set: every admin module crossed
// with the five standard actions. Names use the colon convention
// ("users:create") everywhere, matching the guard's declared requirements.
func defaultPermissions() []models.PermissionModel {
	modules := []struct {
		name     string
		singular string
	}{
		{"users", "user"},
		{"roles", "role"},
		{"permissions", "permission"},
		{"attendance", "attendance record"},
	}
	actions := []struct {
		name     string
		describe string
	}{
		{"create", "Create"},
		{"read", "View"},
		{"update", "Update"},
		{"delete", "Delete"},
		{"list", "List"},
	}

	permissions := make([]models.PermissionModel, 0, len(modules)*len(actions))
	for _, m := range modules {
		for _, a := range actions {
			permissions = append(permissions, models.PermissionModel{
				Name:        m.name + ":" + a.name,
				Module:      m.name,
				Action:      a.name,
				Description: fmt.Sprintf("%s %ss", a.describe, m.singular),
				IsActive:    true,
			})
		}
	}
	return permissions
}

func defaultRoles() []models.RoleModel {
	return []models.RoleModel{
		{
			Name:         "super_admin",
			DisplayName:  "Super Administrator",
			Description:  "Has access to all modules and can manage roles and permissions",
			IsSuperAdmin: true,
			IsActive:     true,
		},
		{
			Name:        "admin",
			DisplayName: "Administrator",
			Description: "Has access to most modules with limited role management",
			IsActive:    true,
		},
		{
			Name:        "manager",
			DisplayName: "Manager",
			Description: "Can manage users and view reports",
			IsActive:    true,
		},
		{
			Name:        "user",
			DisplayName: "User",
			Description: "Basic user with limited access",
			IsActive:    true,
		},
	}
}

// SeedDefaultPermissions inserts the canonical permission set. Re-running is
// a no-op for permissions that already exist: they are skipped silently,
// never duplicated or overwritten.
func SeedDefaultPermissions(db *gorm.DB) error {
	for _, permission := range defaultPermissions() {
		if err := db.Where(models.PermissionModel{Name: permission.Name}).
			Attrs(permission).
			FirstOrCreate(&models.PermissionModel{}).Error; err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", permission.Name, err)
		}
	}
	return nil
}

// SeedDefaultRoles creates the four canonical roles if and only if no role
// with that name exists. An existing role's permission assignments are never
// touched on re-seed.
func SeedDefaultRoles(db *gorm.DB) error {
	for _, role := range defaultRoles() {
		if err := db.Where(models.RoleModel{Name: role.Name}).
			Attrs(role).
			FirstOrCreate(&models.RoleModel{}).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// Run seeds permissions first, then roles.
func Run(db *gorm.DB) error {
	if err := SeedDefaultPermissions(db); err != nil {
		return err
	}
	return SeedDefaultRoles(db)
}

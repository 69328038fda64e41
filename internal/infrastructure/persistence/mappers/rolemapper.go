package mappers

import (
	"fmt"

	"vantage/internal/domain/rbac"
	"vantage/internal/infrastructure/persistence/models"
)

// RoleMapper handles the conversion between domain entities and persistence
// models. The role's permission references live in a join table, so ToEntity
// takes them separately.
type RoleMapper interface {
	ToEntity(model *models.RoleModel, permissionIDs []uint) (*rbac.Role, error)
	ToModel(entity *rbac.Role) (*models.RoleModel, error)
}

type roleMapper struct{}

func NewRoleMapper() RoleMapper {
	return &roleMapper{}
}

func (m *roleMapper) ToEntity(model *models.RoleModel, permissionIDs []uint) (*rbac.Role, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := rbac.ReconstructRole(
		model.ID,
		model.Name,
		model.DisplayName,
		model.Description,
		model.IsSuperAdmin,
		model.IsActive,
		permissionIDs,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct role: %w", err)
	}
	return entity, nil
}

func (m *roleMapper) ToModel(entity *rbac.Role) (*models.RoleModel, error) {
	if entity == nil {
		return nil, fmt.Errorf("role entity cannot be nil")
	}

	return &models.RoleModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		DisplayName:  entity.DisplayName(),
		Description:  entity.Description(),
		IsSuperAdmin: entity.IsSuperAdmin(),
		IsActive:     entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

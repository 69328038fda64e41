package mappers

import (
	"fmt"

	"vantage/internal/domain/rbac"
	"vantage/internal/infrastructure/persistence/models"
)

// PermissionMapper handles the conversion between domain entities and persistence models
type PermissionMapper interface {
	ToEntity(model *models.PermissionModel) (*rbac.Permission, error)
	ToModel(entity *rbac.Permission) (*models.PermissionModel, error)
	ToEntities(models []*models.PermissionModel) ([]*rbac.Permission, error)
}

type permissionMapper struct{}

func NewPermissionMapper() PermissionMapper {
	return &permissionMapper{}
}

func (m *permissionMapper) ToEntity(model *models.PermissionModel) (*rbac.Permission, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := rbac.ReconstructPermission(
		model.ID,
		model.Name,
		model.Module,
		model.Action,
		model.Description,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct permission: %w", err)
	}
	return entity, nil
}

func (m *permissionMapper) ToModel(entity *rbac.Permission) (*models.PermissionModel, error) {
	if entity == nil {
		return nil, fmt.Errorf("permission entity cannot be nil")
	}

	return &models.PermissionModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Module:      entity.Module(),
		Action:      entity.Action(),
		Description: entity.Description(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *permissionMapper) ToEntities(permissionModels []*models.PermissionModel) ([]*rbac.Permission, error) {
	entities := make([]*rbac.Permission, 0, len(permissionModels))
	for _, model := range permissionModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

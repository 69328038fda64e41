package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vantage/internal/domain/rbac"
	"vantage/internal/infrastructure/persistence/mappers"
	"vantage/internal/infrastructure/persistence/models"
	"vantage/internal/shared/logger"
)

// RoleRepository implements rbac.RoleRepository on gorm. The role's
// permission references live in the role_permissions join table and are
// loaded alongside the role row.
type RoleRepository struct {
	db               *gorm.DB
	mapper           mappers.RoleMapper
	permissionMapper mappers.PermissionMapper
	logger           logger.Interface
}

func NewRoleRepository(db *gorm.DB, logger logger.Interface) rbac.RoleRepository {
	return &RoleRepository{
		db:               db,
		mapper:           mappers.NewRoleMapper(),
		permissionMapper: mappers.NewPermissionMapper(),
		logger:           logger,
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *rbac.Role) error {
	model, err := r.mapper.ToModel(role)
	if err != nil {
		return fmt.Errorf("failed to map role entity: %w", err)
	}

	permissionIDs := role.PermissionIDs()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create role: %w", err)
		}

		for _, permissionID := range permissionIDs {
			link := models.RolePermissionModel{RoleID: model.ID, PermissionID: permissionID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link permission %d: %w", permissionID, err)
			}
		}

		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create role", "name", model.Name, "error", err)
		return err
	}

	if err := role.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set role ID: %w", err)
	}

	return nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*rbac.Role, error) {
	var model models.RoleModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get role by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	permissionIDs, err := r.loadPermissionIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntity(&model, permissionIDs)
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*rbac.Role, error) {
	var model models.RoleModel

	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get role by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	permissionIDs, err := r.loadPermissionIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntity(&model, permissionIDs)
}

func (r *RoleRepository) List(ctx context.Context, filter rbac.RoleFilter) ([]*rbac.Role, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RoleModel{})

	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count roles: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var roleModels []*models.RoleModel
	if err := query.Order("id").Find(&roleModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]*rbac.Role, 0, len(roleModels))
	for _, model := range roleModels {
		permissionIDs, err := r.loadPermissionIDs(ctx, model.ID)
		if err != nil {
			return nil, 0, err
		}
		role, err := r.mapper.ToEntity(model, permissionIDs)
		if err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}

	return roles, total, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *rbac.Role) error {
	model, err := r.mapper.ToModel(role)
	if err != nil {
		return fmt.Errorf("failed to map role entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update role", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update role: %w", err)
	}

	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete role permission links: %w", err)
		}

		result := tx.Delete(&models.RoleModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete role: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil && err != gorm.ErrRecordNotFound {
		r.logger.Errorw("failed to delete role", "id", id, "error", err)
	}
	return err
}

func (r *RoleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RoleModel{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return count > 0, nil
}

// ReplacePermissions swaps the role's permission set inside a single
// transaction. The permission IDs are re-counted inside the transaction so a
// vanished permission aborts the whole replace and the prior set survives.
func (r *RoleRepository) ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roleCount int64
		if err := tx.Model(&models.RoleModel{}).Where("id = ?", roleID).Count(&roleCount).Error; err != nil {
			return fmt.Errorf("failed to check role: %w", err)
		}
		if roleCount == 0 {
			return gorm.ErrRecordNotFound
		}

		if len(permissionIDs) > 0 {
			var permCount int64
			if err := tx.Model(&models.PermissionModel{}).
				Where("id IN ?", permissionIDs).Count(&permCount).Error; err != nil {
				return fmt.Errorf("failed to count permissions: %w", err)
			}
			if permCount != int64(len(permissionIDs)) {
				return fmt.Errorf("%d of %d permissions not found: %w",
					int64(len(permissionIDs))-permCount, len(permissionIDs), gorm.ErrRecordNotFound)
			}
		}

		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear permission links: %w", err)
		}

		for _, permissionID := range permissionIDs {
			link := models.RolePermissionModel{RoleID: roleID, PermissionID: permissionID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link permission %d: %w", permissionID, err)
			}
		}

		return nil
	})
}

func (r *RoleRepository) GetPermissions(ctx context.Context, roleID uint) ([]*rbac.Permission, error) {
	var permissionModels []*models.PermissionModel

	err := r.db.WithContext(ctx).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Find(&permissionModels).Error
	if err != nil {
		r.logger.Errorw("failed to get role permissions", "role_id", roleID, "error", err)
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}

	return r.permissionMapper.ToEntities(permissionModels)
}

func (r *RoleRepository) loadPermissionIDs(ctx context.Context, roleID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.RolePermissionModel{}).
		Where("role_id = ?", roleID).Order("permission_id").
		Pluck("permission_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load role permission IDs: %w", err)
	}
	return ids, nil
}

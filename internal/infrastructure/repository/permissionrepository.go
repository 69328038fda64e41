package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vantage/internal/domain/rbac"
	"vantage/internal/infrastructure/persistence/mappers"
	"vantage/internal/infrastructure/persistence/models"
	"vantage/internal/shared/constants"
	"vantage/internal/shared/logger"
)

// PermissionRepository implements rbac.PermissionRepository on gorm.
type PermissionRepository struct {
	db     *gorm.DB
	mapper mappers.PermissionMapper
	logger logger.Interface
}

func NewPermissionRepository(db *gorm.DB, logger logger.Interface) rbac.PermissionRepository {
	return &PermissionRepository{
		db:     db,
		mapper: mappers.NewPermissionMapper(),
		logger: logger,
	}
}

func (r *PermissionRepository) Create(ctx context.Context, permission *rbac.Permission) error {
	model, err := r.mapper.ToModel(permission)
	if err != nil {
		return fmt.Errorf("failed to map permission entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create permission", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create permission: %w", err)
	}

	if err := permission.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set permission ID: %w", err)
	}

	return nil
}

func (r *PermissionRepository) GetByID(ctx context.Context, id uint) (*rbac.Permission, error) {
	var model models.PermissionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get permission by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PermissionRepository) GetByName(ctx context.Context, name string) (*rbac.Permission, error) {
	var model models.PermissionModel

	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get permission by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PermissionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*rbac.Permission, error) {
	if len(ids) == 0 {
		return []*rbac.Permission{}, nil
	}

	var permissionModels []*models.PermissionModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&permissionModels).Error; err != nil {
		r.logger.Errorw("failed to get permissions by IDs", "ids", ids, "error", err)
		return nil, fmt.Errorf("failed to get permissions by IDs: %w", err)
	}

	return r.mapper.ToEntities(permissionModels)
}

func (r *PermissionRepository) List(ctx context.Context, filter rbac.PermissionFilter) ([]*rbac.Permission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PermissionModel{})

	if filter.Module != "" {
		query = query.Where("module = ?", filter.Module)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count permissions: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var permissionModels []*models.PermissionModel
	if err := query.Order("module, action").Find(&permissionModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list permissions: %w", err)
	}

	entities, err := r.mapper.ToEntities(permissionModels)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *PermissionRepository) Update(ctx context.Context, permission *rbac.Permission) error {
	model, err := r.mapper.ToModel(permission)
	if err != nil {
		return fmt.Errorf("failed to map permission entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update permission", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update permission: %w", err)
	}

	return nil
}

func (r *PermissionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PermissionModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete permission", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete permission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PermissionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PermissionModel{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check permission existence: %w", err)
	}
	return count > 0, nil
}

func (r *PermissionRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PermissionModel{}).
		Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count permissions: %w", err)
	}
	return count, nil
}

func (r *PermissionRepository) ReferencingRoleCount(ctx context.Context, permissionID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table(constants.TableRolePermissions).
		Where("permission_id = ?", permissionID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count referencing roles: %w", err)
	}
	return count, nil
}

package rbac

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"vantage/internal/domain/rbac"
	"vantage/internal/shared/errors"
	"vantage/internal/shared/logger"
)

// Service manages roles and permissions and answers permission checks for the
// request guard.
type Service struct {
	roleRepo       rbac.RoleRepository
	permissionRepo rbac.PermissionRepository
	logger         logger.Interface
}

func NewService(roleRepo rbac.RoleRepository, permissionRepo rbac.PermissionRepository, logger logger.Interface) *Service {
	return &Service{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		logger:         logger.Named("rbac"),
	}
}

// HasPermission answers whether the role grants the (module, action) pair.
// Super admin roles grant everything; for all other roles every permission in
// the role's set is loaded and matched exactly. Unknown or inactive roles
// grant nothing. Store faults return an error so the caller fails closed.
func (s *Service) HasPermission(ctx context.Context, roleID uint, module, action string) (bool, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return false, fmt.Errorf("load role %d: %w", roleID, err)
	}
	if role == nil || !role.IsActive() {
		return false, nil
	}

	if role.IsSuperAdmin() {
		return true, nil
	}

	permissions, err := s.roleRepo.GetPermissions(ctx, roleID)
	if err != nil {
		return false, fmt.Errorf("load permissions for role %d: %w", roleID, err)
	}

	for _, permission := range permissions {
		if permission.IsActive() && permission.Matches(module, action) {
			return true, nil
		}
	}
	return false, nil
}

// RequirementExists reports whether a permission named by the requirement is
// registered. Used to validate route declarations at startup.
func (s *Service) RequirementExists(ctx context.Context, req rbac.Requirement) (bool, error) {
	return s.permissionRepo.ExistsByName(ctx, req.String())
}

// --- Roles ---

type CreateRoleInput struct {
	Name          string `json:"name" binding:"required,min=2,max=50,rbacname"`
	DisplayName   string `json:"display_name" binding:"required,min=2,max=100"`
	Description   string `json:"description" binding:"max=500"`
	PermissionIDs []uint `json:"permission_ids"`
}

type UpdateRoleInput struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (s *Service) CreateRole(ctx context.Context, input CreateRoleInput) (*rbac.Role, error) {
	exists, err := s.roleRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, errors.NewInternalError("failed to check role name", err.Error())
	}
	if exists {
		return nil, errors.NewConflictError(fmt.Sprintf("role %q already exists", input.Name))
	}

	permissionIDs := dedupe(input.PermissionIDs)
	if err := s.ensurePermissionsExist(ctx, permissionIDs); err != nil {
		return nil, err
	}

	// Roles created through the API are never super admin; that flag is
	// reserved for seeding.
	role, err := rbac.NewRole(input.Name, input.DisplayName, input.Description, false, permissionIDs)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(fmt.Sprintf("role %q already exists", input.Name))
		}
		return nil, errors.NewInternalError("failed to create role", err.Error())
	}

	s.logger.Infow("role created", "role_id", role.ID(), "name", role.Name())
	return role, nil
}

func (s *Service) GetRole(ctx context.Context, id uint) (*rbac.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get role", err.Error())
	}
	if role == nil {
		return nil, errors.NewNotFoundError("role not found")
	}
	return role, nil
}

func (s *Service) ListRoles(ctx context.Context, filter rbac.RoleFilter) ([]*rbac.Role, int64, error) {
	roles, total, err := s.roleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError("failed to list roles", err.Error())
	}
	return roles, total, nil
}

func (s *Service) UpdateRole(ctx context.Context, id uint, input UpdateRoleInput) (*rbac.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		if err := role.UpdateDisplayName(*input.DisplayName); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if input.Description != nil {
		role.UpdateDescription(*input.Description)
	}
	if input.IsActive != nil {
		if *input.IsActive {
			role.Activate()
		} else {
			role.Deactivate()
		}
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, errors.NewInternalError("failed to update role", err.Error())
	}
	return role, nil
}

func (s *Service) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSuperAdmin() {
		return errors.NewForbiddenError("super admin role cannot be deleted")
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete role", err.Error())
	}

	s.logger.Infow("role deleted", "role_id", id, "name", role.Name())
	return nil
}

// AssignPermissions replaces the role's permission set wholesale. The input
// is deduplicated first; if any ID does not resolve to an existing permission
// the whole operation is rejected and the current set is left untouched.
func (s *Service) AssignPermissions(ctx context.Context, roleID uint, permissionIDs []uint) (*rbac.Role, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return nil, err
	}

	deduped := dedupe(permissionIDs)
	if err := s.ensurePermissionsExist(ctx, deduped); err != nil {
		return nil, err
	}

	if err := s.roleRepo.ReplacePermissions(ctx, roleID, deduped); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("some permissions not found")
		}
		return nil, errors.NewInternalError("failed to assign permissions", err.Error())
	}

	s.logger.Infow("role permissions replaced", "role_id", roleID, "count", len(deduped))
	return s.GetRole(ctx, roleID)
}

func (s *Service) GetRolePermissions(ctx context.Context, roleID uint) ([]*rbac.Permission, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return nil, err
	}

	permissions, err := s.roleRepo.GetPermissions(ctx, roleID)
	if err != nil {
		return nil, errors.NewInternalError("failed to get role permissions", err.Error())
	}
	return permissions, nil
}

// --- Permissions ---

type CreatePermissionInput struct {
	Module      string `json:"module" binding:"required,min=2,max=50,rbacname"`
	Action      string `json:"action" binding:"required,min=2,max=50,rbacname"`
	Description string `json:"description" binding:"max=500"`
}

type UpdatePermissionInput struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (s *Service) CreatePermission(ctx context.Context, input CreatePermissionInput) (*rbac.Permission, error) {
	permission, err := rbac.NewPermission(input.Module, input.Action, input.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := s.permissionRepo.ExistsByName(ctx, permission.Name())
	if err != nil {
		return nil, errors.NewInternalError("failed to check permission name", err.Error())
	}
	if exists {
		return nil, errors.NewConflictError(fmt.Sprintf("permission %q already exists", permission.Name()))
	}

	if err := s.permissionRepo.Create(ctx, permission); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(fmt.Sprintf("permission %q already exists", permission.Name()))
		}
		return nil, errors.NewInternalError("failed to create permission", err.Error())
	}

	s.logger.Infow("permission created", "permission_id", permission.ID(), "name", permission.Name())
	return permission, nil
}

func (s *Service) GetPermission(ctx context.Context, id uint) (*rbac.Permission, error) {
	permission, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get permission", err.Error())
	}
	if permission == nil {
		return nil, errors.NewNotFoundError("permission not found")
	}
	return permission, nil
}

func (s *Service) ListPermissions(ctx context.Context, filter rbac.PermissionFilter) ([]*rbac.Permission, int64, error) {
	permissions, total, err := s.permissionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError("failed to list permissions", err.Error())
	}
	return permissions, total, nil
}

func (s *Service) UpdatePermission(ctx context.Context, id uint, input UpdatePermissionInput) (*rbac.Permission, error) {
	permission, err := s.GetPermission(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		permission.UpdateDescription(*input.Description)
	}
	if input.IsActive != nil {
		if *input.IsActive {
			permission.Activate()
		} else {
			permission.Deactivate()
		}
	}

	if err := s.permissionRepo.Update(ctx, permission); err != nil {
		return nil, errors.NewInternalError("failed to update permission", err.Error())
	}
	return permission, nil
}

// DeletePermission removes a permission that no role references. Deleting a
// referenced permission would silently shrink role grants, so it is rejected.
func (s *Service) DeletePermission(ctx context.Context, id uint) error {
	if _, err := s.GetPermission(ctx, id); err != nil {
		return err
	}

	refs, err := s.permissionRepo.ReferencingRoleCount(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to check permission references", err.Error())
	}
	if refs > 0 {
		return errors.NewConflictError(fmt.Sprintf("permission is assigned to %d role(s)", refs))
	}

	if err := s.permissionRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete permission", err.Error())
	}

	s.logger.Infow("permission deleted", "permission_id", id)
	return nil
}

func (s *Service) ensurePermissionsExist(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.permissionRepo.CountByIDs(ctx, ids)
	if err != nil {
		return errors.NewInternalError("failed to verify permissions", err.Error())
	}
	if count != int64(len(ids)) {
		return errors.NewNotFoundError("some permissions not found")
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

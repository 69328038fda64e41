package rbac

import "context"

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context, filter RoleFilter) ([]*Role, int64, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ReplacePermissions atomically replaces the role's permission set. If any
	// permission ID does not resolve, the existing set is left untouched.
	ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error
	GetPermissions(ctx context.Context, roleID uint) ([]*Permission, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByID(ctx context.Context, id uint) (*Permission, error)
	GetByName(ctx context.Context, name string) (*Permission, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Permission, error)
	List(ctx context.Context, filter PermissionFilter) ([]*Permission, int64, error)
	Update(ctx context.Context, permission *Permission) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string) (bool, error)

	// CountByIDs returns how many of the given IDs resolve to existing
	// permissions. Used for all-or-nothing assignment validation.
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
	// ReferencingRoleCount returns the number of roles whose permission set
	// contains the given permission. A referenced permission may not be deleted.
	ReferencingRoleCount(ctx context.Context, permissionID uint) (int64, error)
}

type RoleFilter struct {
	Name     string
	IsActive *bool
	Page     int
	PageSize int
}

type PermissionFilter struct {
	Module   string
	Action   string
	IsActive *bool
	Page     int
	PageSize int
}

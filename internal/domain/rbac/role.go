package rbac

import (
	"fmt"
	"time"
)

// Role is a named bundle of permission references assigned to users. A role
// holds permissions by identity only; it does not own their lifecycle. The
// super-admin flag is a bypass, not an enumerated grant: a super-admin role
// satisfies every permission check regardless of its permission set.
type Role struct {
	id            uint
	name          string
	displayName   string
	description   string
	isSuperAdmin  bool
	isActive      bool
	permissionIDs []uint
	createdAt     time.Time
	updatedAt     time.Time
}

func NewRole(name, displayName, description string, isSuperAdmin bool, permissionIDs []uint) (*Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("role display name is required")
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("role name too long (max 50 characters)")
	}
	if len(displayName) > 100 {
		return nil, fmt.Errorf("role display name too long (max 100 characters)")
	}

	now := time.Now()
	return &Role{
		name:          name,
		displayName:   displayName,
		description:   description,
		isSuperAdmin:  isSuperAdmin,
		isActive:      true,
		permissionIDs: dedupeIDs(permissionIDs),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructRole(id uint, name, displayName, description string, isSuperAdmin, isActive bool, permissionIDs []uint, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}

	return &Role{
		id:            id,
		name:          name,
		displayName:   displayName,
		description:   description,
		isSuperAdmin:  isSuperAdmin,
		isActive:      isActive,
		permissionIDs: dedupeIDs(permissionIDs),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) DisplayName() string {
	return r.displayName
}

func (r *Role) Description() string {
	return r.description
}

func (r *Role) IsSuperAdmin() bool {
	return r.isSuperAdmin
}

func (r *Role) IsActive() bool {
	return r.isActive
}

// PermissionIDs returns a copy of the role's permission references.
func (r *Role) PermissionIDs() []uint {
	ids := make([]uint, len(r.permissionIDs))
	copy(ids, r.permissionIDs)
	return ids
}

// HasPermissionID reports whether the role references the given permission.
// The super-admin bypass is intentionally not applied here; callers that want
// the full authorization decision go through the role store.
func (r *Role) HasPermissionID(permissionID uint) bool {
	for _, id := range r.permissionIDs {
		if id == permissionID {
			return true
		}
	}
	return false
}

// ReplacePermissions swaps the role's permission set wholesale. Assignment is
// never a merge.
func (r *Role) ReplacePermissions(permissionIDs []uint) {
	r.permissionIDs = dedupeIDs(permissionIDs)
	r.updatedAt = time.Now()
}

func (r *Role) UpdateDisplayName(displayName string) error {
	if displayName == "" {
		return fmt.Errorf("role display name cannot be empty")
	}
	if len(displayName) > 100 {
		return fmt.Errorf("role display name too long (max 100 characters)")
	}
	r.displayName = displayName
	r.updatedAt = time.Now()
	return nil
}

func (r *Role) UpdateDescription(description string) {
	r.description = description
	r.updatedAt = time.Now()
}

func (r *Role) Activate() {
	if r.isActive {
		return
	}
	r.isActive = true
	r.updatedAt = time.Now()
}

func (r *Role) Deactivate() {
	if !r.isActive {
		return
	}
	r.isActive = false
	r.updatedAt = time.Now()
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

func dedupeIDs(ids []uint) []uint {
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

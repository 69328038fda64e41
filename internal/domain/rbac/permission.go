package rbac

import (
	"fmt"
	"time"
)

// Permission is an atomic (module, action) capability with a globally unique
// canonical name of the form "module:action".
type Permission struct {
	id          uint
	name        string
	module      string
	action      string
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPermission(module, action, description string) (*Permission, error) {
	if module == "" {
		return nil, fmt.Errorf("permission module is required")
	}
	if action == "" {
		return nil, fmt.Errorf("permission action is required")
	}
	if len(module) > 50 {
		return nil, fmt.Errorf("permission module too long (max 50 characters)")
	}
	if len(action) > 20 {
		return nil, fmt.Errorf("permission action too long (max 20 characters)")
	}

	now := time.Now()
	return &Permission{
		name:        Requirement{Module: module, Action: action}.String(),
		module:      module,
		action:      action,
		description: description,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPermission(id uint, name, module, action, description string, isActive bool, createdAt, updatedAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}

	return &Permission{
		id:          id,
		name:        name,
		module:      module,
		action:      action,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) Name() string {
	return p.name
}

func (p *Permission) Module() string {
	return p.module
}

func (p *Permission) Action() string {
	return p.action
}

func (p *Permission) Description() string {
	return p.description
}

func (p *Permission) IsActive() bool {
	return p.isActive
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) UpdatedAt() time.Time {
	return p.updatedAt
}

// Matches reports whether this permission grants the given (module, action)
// pair. Comparison is exact and case-sensitive.
func (p *Permission) Matches(module, action string) bool {
	return p.module == module && p.action == action
}

func (p *Permission) UpdateDescription(description string) {
	p.description = description
	p.updatedAt = time.Now()
}

func (p *Permission) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = time.Now()
}

func (p *Permission) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now()
}

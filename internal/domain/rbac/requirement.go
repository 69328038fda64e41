package rbac

import (
	"fmt"
	"strings"
)

// Requirement is a structured (module, action) pair declared on a protected
// operation. Requirements are built at route registration time, never parsed
// from strings during a permission check.
type Requirement struct {
	Module string
	Action string
}

// Req is a shorthand constructor for route declarations.
func Req(module, action string) Requirement {
	return Requirement{Module: module, Action: action}
}

// String renders the canonical permission name, e.g. "users:create".
func (r Requirement) String() string {
	return r.Module + ":" + r.Action
}

// IsZero reports whether the requirement is empty.
func (r Requirement) IsZero() bool {
	return r.Module == "" && r.Action == ""
}

// ParseRequirement parses a canonical permission name of the form
// "module:action". Used for external input (API payloads, seed data), not on
// the request path.
func ParseRequirement(name string) (Requirement, error) {
	parts := strings.SplitN(name, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Requirement{}, fmt.Errorf("invalid permission name %q: expected module:action", name)
	}
	return Requirement{Module: parts[0], Action: parts[1]}, nil
}

package domain

import (
	"errors"
	"fmt"
)

// Role is the ordinal authorization level attached to a session.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// roleLevels defines the hierarchy: guest < user < admin.
var roleLevels = map[Role]int{
	RoleGuest: 0,
	RoleUser:  1,
	RoleAdmin: 2,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the ordinal level of the role. Unknown roles map to -1 so
// they never satisfy any requirement.
func (r Role) Level() int {
	lvl, ok := roleLevels[r]
	if !ok {
		return -1
	}
	return lvl
}

// AtLeast reports whether r grants at least the privileges of required.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && r.Level() >= required.Level()
}

// ParseRole converts a raw string into a Role. A value outside the three-level
// enum is a configuration bug, not a runtime condition, and is rejected.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

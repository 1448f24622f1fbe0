package domain

import "fmt"

// Role is a named permission tier. The set is closed: content mutations
// require Writer, everything else is readable with Reader.
type Role string

const (
	RoleReader Role = "Reader"
	RoleWriter Role = "Writer"
)

// ParseRole maps a stored role name onto the closed enumeration.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleReader:
		return RoleReader, nil
	case RoleWriter:
		return RoleWriter, nil
	default:
		return "", fmt.Errorf("unknown role %q", name)
	}
}

// RoleNames converts a role list to its wire representation.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}

// ParseRoles maps stored names onto roles, rejecting unknown names.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// HasRole reports whether the role list contains the required role.
func HasRole(roles []Role, required Role) bool {
	for _, role := range roles {
		if role == required {
			return true
		}
	}
	return false
}

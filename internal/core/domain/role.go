package domain

import "fmt"

// Role is the closed set of values a profile may carry. It is the single
// source of truth for authorization and routing decisions.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a stored role value against the closed set. An
// unrecognized value is a data-integrity error, never coerced to a default:
// ambiguous role state must not be read as the more permissive role.
func ParseRole(v string) (Role, error) {
	switch Role(v) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(v), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidRole, v)
	}
}

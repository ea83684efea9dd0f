// internal/domain/models/user.go
package models

import "strings"

// Role is a user's standing in the class, not in any particular group.
type Role string

const (
	RoleStudent Role = "Student"
	RoleCR      Role = "CR" // class representative
	RoleFaculty Role = "Faculty"
)

// ParseRole maps a stored or submitted role onto a Role.
// Matching is case-insensitive; anything unrecognized is a Student.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cr":
		return RoleCR
	case "faculty":
		return RoleFaculty
	default:
		return RoleStudent
	}
}

// User is the identity the caller supplies to the group store.
//
// NOTE:
//   - Identity is asserted by the session, not verified. There is no
//     credential on this struct.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	AvatarRef string
}

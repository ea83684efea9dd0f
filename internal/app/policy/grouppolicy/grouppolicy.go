// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import "github.com/dalemusser/classhub/internal/domain/models"

// IsAdmin reports whether userID is an admin member of g.
func IsAdmin(g models.Group, userID string) bool {
	m, ok := g.Member(userID)
	return ok && m.IsAdmin
}

// CanSendMessage reports whether userID may send chat messages in g:
//   - non-members never can
//   - admins always can
//   - everyone else can under ChatEveryone, or under ChatPermissionBased
//     when they hold the message permission
func CanSendMessage(g models.Group, userID string) bool {
	m, ok := g.Member(userID)
	if !ok {
		return false
	}
	if m.IsAdmin {
		return true
	}
	switch g.ChatMode {
	case models.ChatAdminOnly:
		return false
	case models.ChatPermissionBased:
		return m.HasMessagePermission
	default:
		return true
	}
}

// CanPost reports whether user may publish a post to g. Faculty and class
// representatives can post anywhere they are members; other members need
// group admin rights.
func CanPost(g models.Group, user models.User) bool {
	m, ok := g.Member(user.ID)
	if !ok {
		return false
	}
	if m.IsAdmin {
		return true
	}
	return user.Role == models.RoleFaculty || user.Role == models.RoleCR
}

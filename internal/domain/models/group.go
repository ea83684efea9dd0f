// internal/domain/models/group.go
package models

// Privacy controls who may discover a group.
type Privacy string

const (
	PrivacyOpen       Privacy = "Open"
	PrivacyInviteOnly Privacy = "Invite-only"
)

// ParsePrivacy maps a stored or submitted value onto a Privacy.
// Anything unrecognized is treated as Open.
func ParsePrivacy(s string) Privacy {
	switch s {
	case string(PrivacyInviteOnly), "InviteOnly", "invite-only":
		return PrivacyInviteOnly
	default:
		return PrivacyOpen
	}
}

// ChatMode is the per-group policy governing who may send chat messages.
type ChatMode string

const (
	ChatEveryone        ChatMode = "everyone"
	ChatAdminOnly       ChatMode = "admin-only"
	ChatPermissionBased ChatMode = "permission-based"
)

// ParseChatMode returns the ChatMode for s and whether s named one.
// An empty string is Everyone.
func ParseChatMode(s string) (ChatMode, bool) {
	switch ChatMode(s) {
	case "", ChatEveryone:
		return ChatEveryone, true
	case ChatAdminOnly:
		return ChatAdminOnly, true
	case ChatPermissionBased:
		return ChatPermissionBased, true
	}
	return ChatEveryone, false
}

// Group is one class/team workspace as seen by a single user's store.
//
// NOTE:
//   - Code is the natural key. Two groups with the same folded code are the
//     same group; the store never keeps both.
//   - MemberCount and PostCount are display counters. They are maintained by
//     the store but are not required to equal len(Members).
type Group struct {
	ID          string
	Code        string
	Name        string
	Description string
	Privacy     Privacy
	ChatMode    ChatMode

	// CreatedBy is empty for groups joined by code without a known creator.
	CreatedBy string

	Members     []Member
	MemberCount int
	PostCount   int
}

// Member looks up the membership row for userID.
func (g Group) Member(userID string) (Member, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether userID has a membership row in g.
func (g Group) HasMember(userID string) bool {
	_, ok := g.Member(userID)
	return ok
}

// Clone returns a copy of g that shares no slices with it.
func (g Group) Clone() Group {
	out := g
	if g.Members != nil {
		out.Members = make([]Member, len(g.Members))
		copy(out.Members, g.Members)
	}
	return out
}

// Member is a user's relationship to one Group.
type Member struct {
	UserID    string
	Name      string
	Role      Role
	AvatarRef string

	IsAdmin              bool
	HasMessagePermission bool
}

// CanMessage applies the rule that admin rights supersede an explicit
// message grant.
func (m Member) CanMessage() bool {
	return m.IsAdmin || m.HasMessagePermission
}

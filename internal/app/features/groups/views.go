// internal/app/features/groups/views.go
package groups

import (
	"github.com/dalemusser/classhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/classhub/internal/domain/models"
)

type memberView struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Avatar               string `json:"avatar,omitempty"`
	IsAdmin              bool   `json:"is_admin"`
	HasMessagePermission bool   `json:"has_message_permission"`
	CanMessage           bool   `json:"can_message"`
}

// groupView is a group as seen by one viewer. Members are only included on
// the detail endpoint.
type groupView struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Privacy        string       `json:"privacy"`
	ChatMode       string       `json:"chat_mode"`
	CreatedBy      string       `json:"created_by,omitempty"`
	MemberCount    int          `json:"member_count"`
	PostCount      int          `json:"post_count"`
	IsMember       bool         `json:"is_member"`
	IsAdmin        bool         `json:"is_admin"`
	CanSendMessage bool         `json:"can_send_message"`
	CanPost        bool         `json:"can_post"`
	Members        []memberView `json:"members,omitempty"`
}

func toView(g models.Group, viewer models.User, withMembers bool) groupView {
	mode := g.ChatMode
	if mode == "" {
		mode = models.ChatEveryone
	}
	v := groupView{
		ID:             g.ID,
		Code:           g.Code,
		Name:           g.Name,
		Description:    g.Description,
		Privacy:        string(g.Privacy),
		ChatMode:       string(mode),
		CreatedBy:      g.CreatedBy,
		MemberCount:    g.MemberCount,
		PostCount:      g.PostCount,
		IsMember:       g.HasMember(viewer.ID),
		IsAdmin:        grouppolicy.IsAdmin(g, viewer.ID),
		CanSendMessage: grouppolicy.CanSendMessage(g, viewer.ID),
		CanPost:        grouppolicy.CanPost(g, viewer),
	}
	if withMembers {
		v.Members = make([]memberView, 0, len(g.Members))
		for _, m := range g.Members {
			v.Members = append(v.Members, memberView{
				ID:                   m.UserID,
				Name:                 m.Name,
				Role:                 string(m.Role),
				Avatar:               m.AvatarRef,
				IsAdmin:              m.IsAdmin,
				HasMessagePermission: m.HasMessagePermission,
				CanMessage:           m.CanMessage(),
			})
		}
	}
	return v
}

func toViews(gs []models.Group, viewer models.User) []groupView {
	out := make([]groupView, 0, len(gs))
	for _, g := range gs {
		out = append(out, toView(g, viewer, false))
	}
	return out
}

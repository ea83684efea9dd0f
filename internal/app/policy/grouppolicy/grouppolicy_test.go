package grouppolicy

import (
	"testing"

	"github.com/dalemusser/classhub/internal/domain/models"
)

func testGroup(mode models.ChatMode) models.Group {
	return models.Group{
		ID:       "g1",
		Code:     "CS-301",
		ChatMode: mode,
		Members: []models.Member{
			{UserID: "admin", IsAdmin: true, HasMessagePermission: false},
			{UserID: "granted", HasMessagePermission: true},
			{UserID: "plain"},
		},
	}
}

func TestCanSendMessage(t *testing.T) {
	tests := []struct {
		name   string
		mode   models.ChatMode
		userID string
		want   bool
	}{
		{"everyone: plain member", models.ChatEveryone, "plain", true},
		{"everyone: empty mode is everyone", "", "plain", true},
		{"everyone: non-member", models.ChatEveryone, "stranger", false},
		{"admin-only: admin", models.ChatAdminOnly, "admin", true},
		{"admin-only: granted member", models.ChatAdminOnly, "granted", false},
		{"admin-only: plain member", models.ChatAdminOnly, "plain", false},
		{"permission-based: admin without grant", models.ChatPermissionBased, "admin", true},
		{"permission-based: granted member", models.ChatPermissionBased, "granted", true},
		{"permission-based: plain member", models.ChatPermissionBased, "plain", false},
		{"permission-based: non-member", models.ChatPermissionBased, "stranger", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanSendMessage(testGroup(tt.mode), tt.userID)
			if got != tt.want {
				t.Errorf("CanSendMessage(%q, %q) = %v, want %v", tt.mode, tt.userID, got, tt.want)
			}
		})
	}
}

func TestCanSendMessage_AdminSupersedesPermission(t *testing.T) {
	for _, mode := range []models.ChatMode{models.ChatEveryone, models.ChatAdminOnly, models.ChatPermissionBased} {
		for _, granted := range []bool{true, false} {
			g := models.Group{
				ChatMode: mode,
				Members:  []models.Member{{UserID: "u", IsAdmin: true, HasMessagePermission: granted}},
			}
			if !CanSendMessage(g, "u") {
				t.Errorf("admin with grant=%v under %q: got false, want true", granted, mode)
			}
		}
	}
}

func TestIsAdmin(t *testing.T) {
	g := testGroup(models.ChatEveryone)
	if !IsAdmin(g, "admin") {
		t.Error("IsAdmin(admin) = false, want true")
	}
	if IsAdmin(g, "granted") {
		t.Error("IsAdmin(granted) = true, want false")
	}
	if IsAdmin(g, "stranger") {
		t.Error("IsAdmin(stranger) = true, want false")
	}
}

func TestCanPost(t *testing.T) {
	g := models.Group{
		Members: []models.Member{
			{UserID: "fac", Role: models.RoleFaculty},
			{UserID: "cr", Role: models.RoleCR},
			{UserID: "stu", Role: models.RoleStudent},
			{UserID: "stu-admin", Role: models.RoleStudent, IsAdmin: true},
		},
	}

	tests := []struct {
		user models.User
		want bool
	}{
		{models.User{ID: "fac", Role: models.RoleFaculty}, true},
		{models.User{ID: "cr", Role: models.RoleCR}, true},
		{models.User{ID: "stu", Role: models.RoleStudent}, false},
		{models.User{ID: "stu-admin", Role: models.RoleStudent}, true},
		{models.User{ID: "outsider", Role: models.RoleFaculty}, false},
	}

	for _, tt := range tests {
		if got := CanPost(g, tt.user); got != tt.want {
			t.Errorf("CanPost(%s/%s) = %v, want %v", tt.user.ID, tt.user.Role, got, tt.want)
		}
	}
}

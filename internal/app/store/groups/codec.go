// internal/app/store/groups/codec.go
package groupstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/classhub/internal/domain/models"
)

// groupRecord is the persisted shape of one group. Field names are shared with
// the browser client's local storage layout and must not change.
type groupRecord struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Code        string         `json:"code"`
	Description string         `json:"description,omitempty"`
	Privacy     string         `json:"privacy"`
	ChatMode    string         `json:"chatMode,omitempty"`
	Members     int            `json:"members"`
	Posts       int            `json:"posts"`
	IsAdmin     bool           `json:"isAdmin"`  // owner's view only
	IsMember    bool           `json:"isMember"` // owner's view only
	CreatedBy   string         `json:"createdBy,omitempty"`
	MembersList []memberRecord `json:"membersList"`
}

type memberRecord struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Avatar               string `json:"avatar,omitempty"`
	IsAdmin              *bool  `json:"isAdmin,omitempty"`
	HasMessagePermission *bool  `json:"hasMessagePermission,omitempty"`
}

// encodeGroups renders groups in the persisted layout. ownerID fills the
// per-record isAdmin/isMember convenience flags.
func encodeGroups(groups []models.Group, ownerID string) (string, error) {
	recs := make([]groupRecord, 0, len(groups))
	for _, g := range groups {
		recs = append(recs, toRecord(g, ownerID))
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return string(b), nil
}

// decodeGroups parses a persisted blob. Records that are not objects, or that
// lack an id or code, are dropped and counted in dropped. A blob that is not
// a JSON array at all yields ErrMalformedRecord and no groups.
func decodeGroups(raw string) (groups []models.Group, dropped int, err error) {
	if strings.TrimSpace(raw) == "" {
		return nil, 0, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	groups = make([]models.Group, 0, len(items))
	for _, item := range items {
		g, err := decodeGroup(item)
		if err != nil {
			dropped++
			continue
		}
		groups = append(groups, g)
	}
	return groups, dropped, nil
}

var (
	errMissingID   = errors.New("record has no id")
	errMissingCode = errors.New("record has no code")
)

func decodeGroup(item json.RawMessage) (models.Group, error) {
	var rec groupRecord
	if err := json.Unmarshal(item, &rec); err != nil {
		return models.Group{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if strings.TrimSpace(rec.ID) == "" {
		return models.Group{}, fmt.Errorf("%w: %v", ErrMalformedRecord, errMissingID)
	}
	if NormalizeCode(rec.Code) == "" {
		return models.Group{}, fmt.Errorf("%w: %v", ErrMalformedRecord, errMissingCode)
	}
	return fromRecord(rec), nil
}

func toRecord(g models.Group, ownerID string) groupRecord {
	rec := groupRecord{
		ID:          g.ID,
		Name:        g.Name,
		Code:        g.Code,
		Description: g.Description,
		Privacy:     string(g.Privacy),
		Members:     g.MemberCount,
		Posts:       g.PostCount,
		CreatedBy:   g.CreatedBy,
		MembersList: make([]memberRecord, 0, len(g.Members)),
	}
	if rec.Privacy == "" {
		rec.Privacy = string(models.PrivacyOpen)
	}
	if g.ChatMode != "" && g.ChatMode != models.ChatEveryone {
		rec.ChatMode = string(g.ChatMode)
	}
	for _, m := range g.Members {
		isAdmin, canMsg := m.IsAdmin, m.HasMessagePermission
		rec.MembersList = append(rec.MembersList, memberRecord{
			ID:                   m.UserID,
			Name:                 m.Name,
			Role:                 string(m.Role),
			Avatar:               m.AvatarRef,
			IsAdmin:              &isAdmin,
			HasMessagePermission: &canMsg,
		})
		if m.UserID == ownerID {
			rec.IsMember = true
			rec.IsAdmin = m.IsAdmin
		}
	}
	return rec
}

func fromRecord(rec groupRecord) models.Group {
	mode, _ := models.ParseChatMode(rec.ChatMode)
	g := models.Group{
		ID:          rec.ID,
		Code:        strings.TrimSpace(rec.Code),
		Name:        rec.Name,
		Description: rec.Description,
		Privacy:     models.ParsePrivacy(rec.Privacy),
		ChatMode:    mode,
		CreatedBy:   rec.CreatedBy,
		MemberCount: rec.Members,
		PostCount:   rec.Posts,
		Members:     make([]models.Member, 0, len(rec.MembersList)),
	}

	seen := make(map[string]struct{}, len(rec.MembersList))
	for _, mr := range rec.MembersList {
		if mr.ID == "" {
			continue
		}
		// one row per user; the first row wins
		if _, dup := seen[mr.ID]; dup {
			continue
		}
		seen[mr.ID] = struct{}{}
		g.Members = append(g.Members, models.Member{
			UserID:               mr.ID,
			Name:                 mr.Name,
			Role:                 models.ParseRole(mr.Role),
			AvatarRef:            mr.Avatar,
			IsAdmin:              mr.IsAdmin != nil && *mr.IsAdmin,
			HasMessagePermission: mr.HasMessagePermission != nil && *mr.HasMessagePermission,
		})
	}
	return g
}

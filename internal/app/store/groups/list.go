// internal/app/store/groups/list.go
package groupstore

import (
	"strings"

	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Tab selects which of the user's groups List returns.
type Tab string

const (
	TabAll    Tab = "all"
	TabJoined Tab = "joined"
	TabAdmin  Tab = "admin"
)

// ParseTab maps a query value onto a Tab, defaulting to TabAll.
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabJoined:
		return TabJoined
	case TabAdmin:
		return TabAdmin
	default:
		return TabAll
	}
}

// List returns the groups matching query on name or code, filtered by tab
// from the Store owner's point of view. Order is preserved.
func (s *Store) List(query string, tab Tab) []models.Group {
	q := text.Fold(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		if q != "" &&
			!strings.Contains(text.Fold(g.Name), q) &&
			!strings.Contains(text.Fold(g.Code), q) {
			continue
		}
		m, member := g.Member(s.userID)
		switch tab {
		case TabJoined:
			if !member {
				continue
			}
		case TabAdmin:
			if !member || !m.IsAdmin {
				continue
			}
		}
		out = append(out, g.Clone())
	}
	return out
}

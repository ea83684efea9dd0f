// internal/app/store/groups/merge.go
package groupstore

import (
	"strings"

	"github.com/dalemusser/classhub/internal/domain/models"
)

// NormalizeCode returns the comparison form of a join code: trimmed and
// lower-cased. Accents and other characters are significant, so "CAFÉ-1" and
// "CAFE-1" are different codes. Codes are stored with their display casing;
// only comparisons use this form.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Merge concatenates the lists in order and keeps the first group seen for
// each normalized code. Groups with an empty code are dropped. Callers put the
// records that should win first.
func Merge(lists ...[]models.Group) []models.Group {
	n := 0
	for _, l := range lists {
		n += len(l)
	}

	out := make([]models.Group, 0, n)
	seen := make(map[string]struct{}, n)
	for _, l := range lists {
		for _, g := range l {
			key := NormalizeCode(g.Code)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, g.Clone())
		}
	}
	return out
}

// indexByCode returns the position of the group whose code folds to key, or -1.
func indexByCode(groups []models.Group, key string) int {
	for i := range groups {
		if NormalizeCode(groups[i].Code) == key {
			return i
		}
	}
	return -1
}

func indexByID(groups []models.Group, id string) int {
	for i := range groups {
		if groups[i].ID == id {
			return i
		}
	}
	return -1
}

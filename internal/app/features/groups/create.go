// internal/app/features/groups/create.go
package groups

import (
	"fmt"
	"math/rand/v2"
	"net/http"

	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

type createInput struct {
	Name        string `json:"name" validate:"max=100" label:"Group name"`
	Code        string `json:"code" validate:"max=32" label:"Join code"`
	Description string `json:"description" validate:"max=2000" label:"Description"`
	Privacy     string `json:"privacy" validate:"omitempty,privacy" label:"Privacy"`
}

// suggestCode returns a code like the one the create form pre-fills.
func suggestCode() string {
	return fmt.Sprintf("GRP-%d", rand.IntN(10000))
}

// HandleCreateGroup handles POST /groups. A blank code is replaced with a
// generated one; a blank name becomes the store's placeholder.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var in createInput
	if !decode(w, r, &in) {
		return
	}

	code := normalize.Code(in.Code)
	if code == "" {
		code = suggestCode()
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create group")
	defer cancel()

	g := store.CreateGroup(ctx, user, groupstore.CreateInput{
		Name:        normalize.Name(htmlsanitize.PlainText(in.Name)),
		Code:        code,
		Description: htmlsanitize.Sanitize(in.Description),
		Privacy:     models.ParsePrivacy(in.Privacy),
	})

	h.Log.Info("group created",
		zap.String("user_id", user.ID),
		zap.String("group_id", g.ID),
		zap.String("code", g.Code))

	writeJSON(w, http.StatusCreated, toView(g, user, true))
}

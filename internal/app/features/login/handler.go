package login

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler signs users in by trusting the identity they submit. There is no
// credential check; the session only scopes each user's group storage.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

type loginInput struct {
	ID     string `json:"id" validate:"required,max=128" label:"User ID"`
	Name   string `json:"name" validate:"required,max=100" label:"Name"`
	Email  string `json:"email" validate:"omitempty,email" label:"Email"`
	Role   string `json:"role" validate:"required,role" label:"Role"`
	Avatar string `json:"avatar" validate:"omitempty,max=512" label:"Avatar"`
}

type userView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type sessionView struct {
	SignedIn bool      `json:"signed_in"`
	User     *userView `json:"user,omitempty"`
}

func viewOf(u models.User) *userView {
	return &userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), Avatar: u.AvatarRef}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ServeLogin handles GET /login and reports the current session.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		writeJSON(w, http.StatusOK, sessionView{})
		return
	}
	writeJSON(w, http.StatusOK, sessionView{SignedIn: true, User: viewOf(su.User())})
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16<<10)

	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		uierrors.JSON(w, http.StatusBadRequest, "bad_request", "Request body must be a JSON object.")
		return
	}
	in.ID = normalize.Name(in.ID)
	in.Name = normalize.Name(htmlsanitize.PlainText(in.Name))
	in.Email = normalize.Email(in.Email)

	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.JSON(w, http.StatusBadRequest, "invalid_input", res.First())
		return
	}

	u := models.User{
		ID:        in.ID,
		Name:      in.Name,
		Email:     in.Email,
		Role:      models.ParseRole(in.Role),
		AvatarRef: in.Avatar,
	}
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("login: save session", zap.String("user_id", u.ID), zap.Error(err))
		uierrors.JSON(w, http.StatusInternalServerError, "internal", "Could not start a session.")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	writeJSON(w, http.StatusOK, sessionView{SignedIn: true, User: viewOf(u)})
}

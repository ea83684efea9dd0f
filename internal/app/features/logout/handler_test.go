package logout_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/classhub/internal/app/features/logout"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleLogout_ExpiresCookie(t *testing.T) {
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	h := logout.NewHandler(sm, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "stale-or-tampered"})
	rec := testutil.NewRecorder()
	h.HandleLogout(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var resp map[string]bool
	rec.DecodeJSON(t, &resp)
	if resp["signed_in"] {
		t.Error("expected signed_in=false")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a clearing cookie")
	}
	if cookies[0].Name != "test-session" || cookies[0].MaxAge >= 0 {
		t.Errorf("cookie: %+v", cookies[0])
	}
}

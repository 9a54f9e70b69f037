package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func performRequest(header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		ctx.Request.Header.Set(HeaderUserID, header)
	}
	id, ok := UserID(ctx)
	return w, id, ok
}

func TestUserIDValid(t *testing.T) {
	want := uuid.New()
	_, got, ok := performRequest(want.String())
	if !ok {
		t.Fatal("expected ok for valid uuid header")
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestUserIDMissingHeader(t *testing.T) {
	w, _, ok := performRequest("")
	if ok {
		t.Fatal("expected failure for missing header")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestUserIDMalformed(t *testing.T) {
	w, _, ok := performRequest("not-a-uuid")
	if ok {
		t.Fatal("expected failure for malformed header")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pjogani/vedics-api/internal/domain"
)

type fakeGeocoder struct {
	entries   []domain.APIRequestLog
	err       error
	lastLimit int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (float64, float64, bool, error) {
	return 0, 0, false, nil
}

func (f *fakeGeocoder) RecentRequests(ctx context.Context, limit int) ([]domain.APIRequestLog, error) {
	f.lastLimit = limit
	return f.entries, f.err
}

func newRouter(geo *fakeGeocoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(geo, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)
	return router
}

func TestGeocoderRequestsReturnsJournal(t *testing.T) {
	geo := &fakeGeocoder{entries: []domain.APIRequestLog{
		{Service: "nominatim", Query: "Mumbai", Found: true},
	}}
	router := newRouter(geo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/geocoder/requests?limit=5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if geo.lastLimit != 5 {
		t.Errorf("limit = %d, want 5", geo.lastLimit)
	}

	var body struct {
		Requests []domain.APIRequestLog `json:"requests"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Requests) != 1 || body.Requests[0].Query != "Mumbai" {
		t.Errorf("unexpected requests: %v", body.Requests)
	}
}

func TestGeocoderRequestsRejectsBadLimit(t *testing.T) {
	router := newRouter(&fakeGeocoder{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/geocoder/requests?limit=abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGeocoderRequestsRepoFailure(t *testing.T) {
	router := newRouter(&fakeGeocoder{err: errors.New("db down")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/geocoder/requests", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

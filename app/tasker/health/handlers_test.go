package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasker/app/tasker/health"
	"github.com/jrazmi/tasker/infrastructure/web"
)

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		check      health.StatusChecker
		wantStatus int
		wantBody   string
	}{
		{
			name:       "store reachable",
			check:      func(ctx context.Context) error { return nil },
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","build":"test"}`,
		},
		{
			name:       "store down",
			check:      func(ctx context.Context) error { return errors.New("dial tcp: refused") },
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"code":"unavailable","message":"store unreachable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wh := web.NewWebHandler(web.HandlerOptions{})
			health.AddHandlers(wh, "test", tt.check)

			w := httptest.NewRecorder()
			wh.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("Expected %s, got %s", tt.wantBody, got)
			}
		})
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(context.Context) error { return s.err }

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name     string
		db       HealthChecker
		cache    HealthChecker
		wantCode int
	}{
		{"all healthy", &stubChecker{}, &stubChecker{}, http.StatusOK},
		{"db down", &stubChecker{err: errors.New("conn refused")}, &stubChecker{}, http.StatusServiceUnavailable},
		{"cache down", &stubChecker{}, &stubChecker{err: errors.New("conn refused")}, http.StatusServiceUnavailable},
		{"not configured", nil, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)

			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		wantStatus     int
		wantHeader     string
	}{
		{
			name:           "no origins configured blocks all",
			allowedOrigins: []string{},
			requestOrigin:  "https://app.everkeep.io",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
		{
			name:           "allowed origin gets header",
			allowedOrigins: []string{"https://app.everkeep.io"},
			requestOrigin:  "https://app.everkeep.io",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://app.everkeep.io",
		},
		{
			name:           "disallowed origin blocked on preflight",
			allowedOrigins: []string{"https://app.everkeep.io"},
			requestOrigin:  "https://evil.com",
			method:         http.MethodOptions,
			wantStatus:     http.StatusForbidden,
			wantHeader:     "",
		},
		{
			name:           "preflight returns no content",
			allowedOrigins: []string{"https://app.everkeep.io"},
			requestOrigin:  "https://app.everkeep.io",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "https://app.everkeep.io",
		},
		{
			name:           "wildcard subdomain match",
			allowedOrigins: []string{"*.everkeep.io"},
			requestOrigin:  "https://staging.everkeep.io",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://staging.everkeep.io",
		},
		{
			name:           "no origin header skips CORS",
			allowedOrigins: []string{"https://app.everkeep.io"},
			requestOrigin:  "",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.allowedOrigins

			handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if got := getClientIP(req); got != "10.0.0.1:1234" {
		t.Errorf("getClientIP() = %q, want remote addr", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.9")
	if got := getClientIP(req); got != "203.0.113.9" {
		t.Errorf("getClientIP() = %q, want X-Real-IP value", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.9")
	if got := getClientIP(req); got != "198.51.100.7" {
		t.Errorf("getClientIP() = %q, want first forwarded IP", got)
	}
}

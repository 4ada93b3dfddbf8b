package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everkeep/everkeep/internal/pagination"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var e Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestRespondDerivesSuccess(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantSuccess bool
	}{
		{"200 is success", http.StatusOK, true},
		{"201 is success", http.StatusCreated, true},
		{"399 is success", 399, true},
		{"400 is failure", http.StatusBadRequest, false},
		{"404 is failure", http.StatusNotFound, false},
		{"500 is failure", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond(rec, tt.status, "msg", nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			e := decodeEnvelope(t, rec)
			assert.Equal(t, tt.status, e.HTTPCode)
			assert.Equal(t, tt.wantSuccess, e.Success)
			assert.Equal(t, "msg", e.Message)
		})
	}
}

func TestRespondPageIncludesMetadata(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := pagination.Metadata{Page: 2, PageSize: 10, Total: 37}
	respondPage(rec, http.StatusOK, "listed", []string{"a"}, meta)

	e := decodeEnvelope(t, rec)
	require.NotNil(t, e.Metadata)
	assert.Equal(t, meta, *e.Metadata)
}

func TestRespondErrorOmitsData(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusNotFound, "resource not found")

	assert.NotContains(t, rec.Body.String(), `"data"`)
	assert.NotContains(t, rec.Body.String(), `"metadata"`)
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	NotFound(rec, req)

	e := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, e.Success)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/healthz", nil)
	MethodNotAllowed(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/everkeep/everkeep/internal/pagination"
)

// Envelope is the uniform response body for every JSON endpoint.
// Success is derived from HTTPCode in respond and nowhere else, so
// the two can never disagree.
type Envelope struct {
	HTTPCode int                  `json:"http_code"`
	Success  bool                 `json:"success"`
	Message  string               `json:"message"`
	Data     any                  `json:"data,omitempty"`
	Metadata *pagination.Metadata `json:"metadata,omitempty"`
}

// respond writes a JSON envelope with the given status code.
func respond(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, Envelope{
		HTTPCode: status,
		Success:  status < 400,
		Message:  message,
		Data:     data,
	})
}

// respondPage writes a JSON envelope with pagination metadata.
func respondPage(w http.ResponseWriter, status int, message string, data any, meta pagination.Metadata) {
	writeEnvelope(w, Envelope{
		HTTPCode: status,
		Success:  status < 400,
		Message:  message,
		Data:     data,
		Metadata: &meta,
	})
}

// respondError writes an error envelope. Data is always omitted.
func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, message, nil)
}

func writeEnvelope(w http.ResponseWriter, e Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPCode)
	_ = json.NewEncoder(w).Encode(e)
}

// NotFound handles 404 responses for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parsePagination extracts list parameters from the query string,
// answering 400 itself when they are malformed.
func parsePagination(w http.ResponseWriter, r *http.Request) (pagination.Params, bool) {
	p, err := pagination.ParseQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return pagination.Params{}, false
	}
	return p, true
}

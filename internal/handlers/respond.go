// Package handlers contains HTTP request handlers for the EWERS API.
// Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/validation"
)

const maxBodyBytes = 1 << 20

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// Helper: respond with field-level validation errors
func respondInvalid(w http.ResponseWriter, res validation.Result) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": res.Message(),
		"errors":  res.Errors,
	})
}

// readBody validates the request body against schema. On failure the 400 has
// already been written and ok is false.
func readBody(w http.ResponseWriter, r *http.Request, check func([]byte) validation.Result) (validation.Result, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		res := validation.Result{Errors: []validation.FieldError{{Message: "Request body too large or unreadable"}}}
		respondInvalid(w, res)
		return res, false
	}
	res := check(body)
	if !res.OK() {
		respondInvalid(w, res)
		return res, false
	}
	return res, true
}

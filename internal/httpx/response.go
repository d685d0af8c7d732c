// Package httpx centralizes the JSON wire format. Every response body in the
// API goes through here: payloads via JSON, failures via JSONError with the
// {error, details?} envelope, mutation results via Created/Changed.
package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// CreatedResponse is returned by successful inserts.
type CreatedResponse struct {
	Success bool   `json:"success"`
	ID      uint   `json:"id"`
	Message string `json:"message,omitempty"`
}

// ChangedResponse is returned by updates and deletes. Changes carries the
// affected-row count so an idempotent no-op (0) stays distinguishable from a
// real mutation.
type ChangedResponse struct {
	Success bool   `json:"success"`
	Changes int64  `json:"changes"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

func Created(w http.ResponseWriter, id uint, msg string) {
	JSON(w, http.StatusOK, CreatedResponse{Success: true, ID: id, Message: msg})
}

func Changed(w http.ResponseWriter, changes int64, msg string) {
	JSON(w, http.StatusOK, ChangedResponse{Success: true, Changes: changes, Message: msg})
}

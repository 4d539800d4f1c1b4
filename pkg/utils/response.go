package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError writes the structured failure envelope: {error_kind, message}.
func WriteError(w http.ResponseWriter, status int, kind string, message string) {
	WriteJSON(w, status, map[string]string{
		"error_kind": kind,
		"message":    message,
	})
}

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/foliotrack/portfolio-service/internal/database"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError maps an error to its HTTP class: missing rows to 404,
// rejected input to 400, everything else to a sanitized 500. Internal
// detail is logged, never sent to the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, database.ErrInvalidTrade):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// respondValidation rejects malformed or missing request fields.
func respondValidation(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

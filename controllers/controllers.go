package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HadarPadael/facyBook-Server/logger"
	"github.com/HadarPadael/facyBook-Server/services"
)

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

// respondError writes a structured error payload.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps service sentinel errors onto HTTP statuses;
// anything unrecognized is an internal error.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict):
		respondError(w, http.StatusConflict, "Already exists")
	default:
		logger.Errorf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the facyBook API"})
}

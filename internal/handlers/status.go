package handlers

import (
	"net/http"

	"zoneguard/internal/services"
)

// GetStatusHandler returns the pollable pipeline snapshot: camera and alarm
// state, recording progress and the latest violation.
func GetStatusHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, manager.Status())
	}
}

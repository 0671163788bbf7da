package handlers

import (
	"net/http"

	"zoneguard/internal/logger"
	"zoneguard/internal/services"
)

// StartCameraHandler launches the frame loop.
func StartCameraHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if err := manager.StartCamera(); err != nil {
			log.Error("Failed to start camera: %v", err)
			writeError(w, http.StatusConflict, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "camera started"})
	}
}

// StopCameraHandler stops the frame loop, the alarm worker and any active
// recording.
func StopCameraHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		manager.StopCamera()
		writeJSON(w, http.StatusOK, map[string]string{"status": "camera stopped"})
	}
}

package handlers

import (
	"net/http"

	"zoneguard/internal/logger"
	"zoneguard/internal/services"
)

// StartRecordingHandler begins a recording. Quality preset and fps come from
// query parameters (?quality=low|medium|high&fps=20) with configured defaults.
func StartRecordingHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		quality := r.URL.Query().Get("quality")
		fps := queryAsFloat(r, "fps", 0)

		path, err := manager.StartRecording(quality, fps)
		if err != nil {
			log.Error("Failed to start recording: %v", err)
			writeError(w, http.StatusConflict, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "recording started", "file": path})
	}
}

// StopRecordingHandler flushes and releases the active recording.
func StopRecordingHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		duration, err := manager.StopRecording()
		if err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "recording saved", "duration": duration})
	}
}

// ListRecordingsHandler returns saved recordings with size and creation time.
func ListRecordingsHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordings, err := manager.Recordings()
		if err != nil {
			log.Error("Failed to list recordings: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list recordings")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"recordings": recordings,
			"count":      len(recordings),
		})
	}
}

// DeleteRecordingHandler removes a recording by name (?name=recording_x.avi).
func DeleteRecordingHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			writeError(w, http.StatusBadRequest, "missing recording name")
			return
		}

		if err := manager.DeleteRecording(name); err != nil {
			log.Error("Failed to delete recording %s: %v", name, err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "recording deleted", "name": name})
	}
}

package handlers

import (
	"net/http"
	"time"

	"zoneguard/internal/logger"
	"zoneguard/internal/model"
	"zoneguard/internal/services"
)

// GetAlertsHandler lists the newest violations (default 50, ?limit=N).
func GetAlertsHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryAsInt(r, "limit", 50)

		violations, err := manager.Violations().GetRecent(limit)
		if err != nil {
			log.Error("Failed to query violations: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to query violations")
			return
		}

		if violations == nil {
			violations = []model.Violation{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"alerts": violations,
			"count":  len(violations),
		})
	}
}

// GetRecentAlertsHandler lists violations from the last N hours (default 24).
func GetRecentAlertsHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hours := queryAsInt(r, "hours", 24)
		since := time.Now().Add(-time.Duration(hours) * time.Hour)

		violations, err := manager.Violations().GetSince(since)
		if err != nil {
			log.Error("Failed to query recent violations: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to query violations")
			return
		}

		if violations == nil {
			violations = []model.Violation{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"alerts": violations,
			"count":  len(violations),
			"hours":  hours,
		})
	}
}

// GetLatestAlertHandler returns the most recent violation, or 404 when the
// log is empty.
func GetLatestAlertHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest, err := manager.Violations().GetLatest()
		if err != nil {
			log.Error("Failed to query latest violation: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to query violations")
			return
		}

		if latest == nil {
			writeError(w, http.StatusNotFound, "no violations logged")
			return
		}
		writeJSON(w, http.StatusOK, latest)
	}
}

// GetAlertStatsHandler returns violation counts grouped by class.
func GetAlertStatsHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := manager.Violations().CountByClass()
		if err != nil {
			log.Error("Failed to count violations: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to count violations")
			return
		}

		total := 0
		for _, count := range counts {
			total += count
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"total":    total,
			"by_class": counts,
		})
	}
}

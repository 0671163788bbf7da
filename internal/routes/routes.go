package routes

import (
	"net/http"

	"zoneguard/internal/config"
	"zoneguard/internal/handlers"
	"zoneguard/internal/logger"
	"zoneguard/internal/services"
)

// SetupRoutes registers the API endpoints and static file serving.
func SetupRoutes(manager *services.Manager, cfg *config.Config, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files (alarm sounds, saved snapshots)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Live stream
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(manager, log))

	// Pipeline control
	mux.HandleFunc("/api/camera/start", handlers.StartCameraHandler(manager, log))
	mux.HandleFunc("/api/camera/stop", handlers.StopCameraHandler(manager, log))
	mux.HandleFunc("/api/status", handlers.GetStatusHandler(manager))

	// Violation log
	mux.HandleFunc("/api/alerts", handlers.GetAlertsHandler(manager, log))
	mux.HandleFunc("/api/alerts/recent", handlers.GetRecentAlertsHandler(manager, log))
	mux.HandleFunc("/api/alerts/latest", handlers.GetLatestAlertHandler(manager, log))
	mux.HandleFunc("/api/alerts/stats", handlers.GetAlertStatsHandler(manager, log))

	// Recording
	mux.HandleFunc("/api/recording/start", handlers.StartRecordingHandler(manager, log))
	mux.HandleFunc("/api/recording/stop", handlers.StopRecordingHandler(manager, log))
	mux.HandleFunc("/api/recordings", handlers.ListRecordingsHandler(manager, log))
	mux.HandleFunc("/api/recordings/delete", handlers.DeleteRecordingHandler(manager, log))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(log))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(log))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(log))

	return mux
}

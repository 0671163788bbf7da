package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zoneguard/internal/alarm"
	"zoneguard/internal/config"
	"zoneguard/internal/detection"
	"zoneguard/internal/dwell"
	"zoneguard/internal/logger"
	"zoneguard/internal/notify"
	"zoneguard/internal/record"
	"zoneguard/internal/repository/sqlite"
	"zoneguard/internal/routes"
	"zoneguard/internal/services"
	"zoneguard/internal/services/websocket"
	"zoneguard/internal/storage"
	"zoneguard/internal/video"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	detector   detection.Detector
	dispatcher *notify.Dispatcher
	hub        *websocket.HubService
	manager    *services.Manager
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDirectory)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open violation log: %w", err)
	}
	violations := sqlite.NewViolationRepository(db)

	var transport notify.Transport = notify.DiscardTransport{}
	if cfg.EmailEnabled {
		transport = notify.NewEmailTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword, cfg.RecipientEmails)
	}
	dispatcher := notify.NewDispatcher(transport, cfg.RateLimitWindow, cfg.NotificationWorkers, cfg.NotificationQueueLen, log)

	detector := detection.NewDNNDetector(cfg.ModelPath, cfg.ModelConfigPath, log)
	tracker := dwell.NewTracker(cfg.DwellThreshold)
	alarmController := alarm.NewController(alarm.NewBeepPlayer(), cfg.AlarmSoundPath, cfg.AlarmPollInterval, log)
	snapshots := storage.NewSnapshotStore(cfg.SnapshotDirectory, log)
	recorder := record.NewSession(cfg.RecordingDirectory, record.DefaultCodecs, log)
	hub := websocket.NewHubService(log)

	processor := services.NewFrameProcessor(detector, tracker, alarmController, dispatcher, violations, snapshots, video.NewGocvAnnotator(), cfg, log)
	camera := services.NewCameraService(processor, recorder, alarmController, hub, cfg.CameraIndex, cfg.FrameInterval, log)
	manager := services.NewManager(camera, processor, recorder, violations, snapshots, hub, cfg, log)

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		detector:   detector,
		dispatcher: dispatcher,
		hub:        hub,
		manager:    manager,
	}, nil
}

func (a *App) Run() error {
	go a.hub.Run()

	if err := a.manager.StartCamera(); err != nil {
		a.logger.Warning("Camera not started: %v (use /api/camera/start)", err)
	}

	router := routes.SetupRoutes(a.manager, a.config, a.logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: router,
	}

	a.logger.Info("🚀 Intrusion detection server listening on :%d", a.config.Port)
	a.logger.Info("📁 Snapshots: %s | Recordings: %s", a.config.SnapshotDirectory, a.config.RecordingDirectory)

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.Shutdown()
		return err
	case sig := <-quit:
		a.logger.Info("Received %s - shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP shutdown error: %v", err)
	}

	a.Shutdown()
	return nil
}

// Shutdown tears the pipeline down in order: the camera stops first (which
// stops the alarm worker and flushes any recording), then in-flight
// notifications drain to completion, and finally shared resources close.
func (a *App) Shutdown() {
	a.manager.StopCamera()
	a.dispatcher.Close()
	a.hub.Stop()
	a.detector.Close()

	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close violation log: %v", err)
	}

	a.logger.Info("🛑 Shutdown complete")
}

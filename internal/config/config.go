package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int

	CameraIndex   int
	FrameInterval time.Duration // pause between frame loop iterations

	ModelPath           string
	ModelConfigPath     string
	ConfidenceThreshold float64
	DetectClasses       []string // classes drawn on the frame
	AlertClasses        []string // classes that can trigger a violation

	ZoneMargin     float64       // extra radius around the restricted zone in pixels
	DwellThreshold time.Duration // continuous presence required before escalation

	RateLimitWindow      time.Duration // minimum gap between notifications per class
	NotificationWorkers  int
	NotificationQueueLen int

	EmailEnabled    bool
	SMTPHost        string
	SMTPPort        int
	SenderEmail     string
	SenderPassword  string
	RecipientEmails []string

	AlarmSoundPath    string
	AlarmPollInterval time.Duration

	RecordingQuality   string
	RecordingFPS       float64
	RecordingDirectory string

	SnapshotDirectory string
	DatabasePath      string
	LogDirectory      string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port: getEnvAsInt("PORT", 8080),

		CameraIndex:   getEnvAsInt("CAMERA_INDEX", 0),
		FrameInterval: getEnvAsMillis("FRAME_INTERVAL_MS", 30),

		ModelPath:           getEnv("MODEL_PATH", filepath.Join(".", "model", "frozen_inference_graph.pb")),
		ModelConfigPath:     getEnv("MODEL_CONFIG_PATH", filepath.Join(".", "model", "ssd_mobilenet_v1_coco_2017_11_17.pbtxt")),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.5),
		DetectClasses:       getEnvAsList("DETECT_CLASSES", "person,car,truck,cat,dog"),
		AlertClasses:        getEnvAsList("ALERT_CLASSES", "person"),

		ZoneMargin:     getEnvAsFloat("ZONE_MARGIN", 50),
		DwellThreshold: getEnvAsMillis("DWELL_THRESHOLD_MS", 2000),

		RateLimitWindow:      getEnvAsSeconds("RATE_LIMIT_WINDOW", 60),
		NotificationWorkers:  getEnvAsInt("NOTIFICATION_WORKERS", 3),
		NotificationQueueLen: getEnvAsInt("NOTIFICATION_QUEUE", 100),

		EmailEnabled:    getEnvAsBool("EMAIL_ENABLED", false),
		SMTPHost:        getEnv("EMAIL_SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:        getEnvAsInt("EMAIL_SMTP_PORT", 465),
		SenderEmail:     getEnv("EMAIL_SENDER", ""),
		SenderPassword:  getEnv("EMAIL_PASSWORD", ""),
		RecipientEmails: getEnvAsList("EMAIL_RECIPIENTS", ""),

		AlarmSoundPath:    getEnv("ALARM_SOUND", filepath.Join(".", "static", "sounds", "alert.wav")),
		AlarmPollInterval: getEnvAsSeconds("ALARM_POLL_INTERVAL", 1),

		RecordingQuality:   getEnv("RECORDING_QUALITY", "medium"),
		RecordingFPS:       getEnvAsFloat("RECORDING_FPS", 20),
		RecordingDirectory: getEnv("RECORDINGS_DIR", filepath.Join(".", "data", "recordings")),

		SnapshotDirectory: getEnv("SNAPSHOTS_DIR", filepath.Join(".", "data", "frames")),
		DatabasePath:      getEnv("DATABASE_PATH", filepath.Join(".", "data", "violations.db")),
		LogDirectory:      getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList parses a comma or semicolon separated value into a slice,
// skipping empty entries.
func getEnvAsList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	value = strings.ReplaceAll(value, ";", ",")

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func getEnvAsSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Second
}

func getEnvAsMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Millisecond
}

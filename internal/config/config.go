package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration sourced from environment variables.
type Config struct {
	SampleInterval time.Duration
	MountPoint     string
	HistoryPoints  int
	ProcessRows    int
	LogLevel       slog.Level
	LogFile        string
	SysfsRoot      string
	ProcRoot       string
	NvidiaSMI      string
	SensorsBin     string
}

// Load parses configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		SampleInterval: time.Second,
		MountPoint:     "/",
		HistoryPoints:  2048,
		ProcessRows:    8,
		LogLevel:       slog.LevelInfo,
		LogFile:        "",
		SysfsRoot:      "/sys",
		ProcRoot:       "/proc",
		NvidiaSMI:      "nvidia-smi",
		SensorsBin:     "sensors",
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_SAMPLE_INTERVAL")); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse SYSGLANCE_SAMPLE_INTERVAL: %w", err)
		}
		if duration <= 0 {
			return Config{}, fmt.Errorf("SYSGLANCE_SAMPLE_INTERVAL must be > 0")
		}
		cfg.SampleInterval = duration
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_MOUNT_POINT")); value != "" {
		cfg.MountPoint = value
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_HISTORY_POINTS")); value != "" {
		points, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse SYSGLANCE_HISTORY_POINTS: %w", err)
		}
		if points <= 0 {
			return Config{}, fmt.Errorf("SYSGLANCE_HISTORY_POINTS must be > 0")
		}
		cfg.HistoryPoints = points
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_PROCESS_ROWS")); value != "" {
		rows, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse SYSGLANCE_PROCESS_ROWS: %w", err)
		}
		if rows < 0 {
			return Config{}, fmt.Errorf("SYSGLANCE_PROCESS_ROWS must be >= 0")
		}
		cfg.ProcessRows = rows
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_LOG_LEVEL")); value != "" {
		level, err := parseLogLevel(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse SYSGLANCE_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_LOG_FILE")); value != "" {
		cfg.LogFile = value
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_SYSFS_ROOT")); value != "" {
		cfg.SysfsRoot = value
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_PROC_ROOT")); value != "" {
		cfg.ProcRoot = value
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_NVIDIA_SMI")); value != "" {
		cfg.NvidiaSMI = value
	}

	if value := strings.TrimSpace(os.Getenv("SYSGLANCE_SENSORS_BIN")); value != "" {
		cfg.SensorsBin = value
	}

	return cfg, nil
}

func parseLogLevel(input string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q", input)
	}
}

// Package app wires up and runs the application services.
package app

import (
	"log/slog"

	"sysglance/internal/config"
	"sysglance/internal/gpu"
	"sysglance/internal/metrics"
	"sysglance/internal/readers"
	"sysglance/internal/sensors"
	"sysglance/internal/ui"
)

// NewCollector assembles the snapshot pipeline from configuration: the
// sensors fallback cache, the GPU collector stack and the system
// collectors, all rooted at the configured pseudo-filesystem paths.
func NewCollector(cfg config.Config, logger *slog.Logger) *metrics.Collector {
	sensorCache := sensors.NewCache(cfg.SensorsBin, readers.RunCommand)
	gpuCollector := &gpu.Collector{
		SysfsRoot: cfg.SysfsRoot,
		NvidiaSMI: cfg.NvidiaSMI,
		Run:       readers.RunCommand,
		Sensors:   sensorCache,
		Logger:    logger.With("component", "gpu"),
	}
	return &metrics.Collector{
		ProcRoot:   cfg.ProcRoot,
		SysfsRoot:  cfg.SysfsRoot,
		MountPoint: cfg.MountPoint,
		GPU:        gpuCollector,
		Logger:     logger.With("component", "metrics"),
	}
}

// Run bootstraps the dashboard and blocks until the user quits.
func Run(logger *slog.Logger, cfg config.Config) error {
	appLogger := logger.With("component", "app")
	appLogger.Info("starting dashboard",
		"interval", cfg.SampleInterval,
		"mount_point", cfg.MountPoint,
		"history_points", cfg.HistoryPoints)

	collector := NewCollector(cfg, logger)
	if err := ui.Run(cfg, collector, logger); err != nil {
		return err
	}

	appLogger.Info("dashboard stopped")
	return nil
}

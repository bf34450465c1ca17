package main

import (
	"io"
	"log/slog"
	"os"

	"sysglance/internal/app"
	"sysglance/internal/config"
	"sysglance/internal/version"
)

var (
	buildVersion = "dev"
	buildCommit  = ""
	buildTime    = ""
)

func main() {
	version.Set(version.Info{
		Version:   buildVersion,
		Commit:    buildCommit,
		BuildTime: buildTime,
	})

	cfg, err := config.Load()
	if err != nil {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
		slog.New(handler).Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	// The alternate screen owns stderr while the dashboard runs, so logs
	// go to a file when configured and are discarded otherwise.
	logOutput := io.Writer(io.Discard)
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
			slog.New(handler).Error("failed to open log file", "path", cfg.LogFile, "err", err)
			os.Exit(1)
		}
		defer file.Close()
		logOutput = file
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: cfg.LogLevel}))
	logger.Info("sysglance", "version", version.Current().Version)

	if err := app.Run(logger, cfg); err != nil {
		fallback := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		fallback.Error("application error", "err", err)
		os.Exit(1)
	}
}

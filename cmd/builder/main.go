package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"wayfinder.transit.dev/internal/builder"
	"wayfinder.transit.dev/internal/logging"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("WAYFINDER_DEBUG") == "YES" {
		level = slog.LevelDebug
	}
	logger, closer := logging.NewLogger(logging.Options{
		Level:  level,
		JSON:   os.Getenv("WAYFINDER_LOG_FORMAT") == "JSON",
		File:   os.Getenv("WAYFINDER_LOG_FILE"),
		Stdout: os.Stderr,
	})
	defer logging.SafeCloseWithLogging(closer, logger, "log_file")

	app := &cli.App{
		Name:        "builder",
		Description: "Builds and inspects wayfinder dataset files",
		Commands:    builder.RegisterCLI(logger, os.Stdout),
	}

	if err := app.Run(os.Args); err != nil {
		logging.LogError(logger, "builder failed", err)
		os.Exit(1)
	}
}

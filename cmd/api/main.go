package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"wayfinder.transit.dev/internal/app"
	"wayfinder.transit.dev/internal/appconf"
	"wayfinder.transit.dev/internal/logging"
	"wayfinder.transit.dev/internal/restapi"
	"wayfinder.transit.dev/internal/webui"
)

func main() {
	var (
		port      int
		env       string
		dataset   string
		rateLimit int
		logLevel  string
		logFile   string
		apiKeys   string
	)
	configPath := flag.String("config", "", "Optional YAML config file")
	envFile := flag.String("env-file", ".env", "Optional .env file")
	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&env, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&dataset, "dataset", "wayfinder.db", "Path to a dataset built by the builder")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second allowed per client")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.StringVar(&logFile, "log-file", "", "Optional rotating log file")
	flag.StringVar(&apiKeys, "api-keys", "", "Comma separated API keys; empty disables the check")
	flag.Parse()

	// Only flags given on the command line override file and environment values.
	cfg, err := appconf.Load(*configPath, *envFile, func(c *appconf.Config) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "port":
				c.Port = port
			case "env":
				c.Env = appconf.EnvFlagToEnvironment(env)
			case "dataset":
				c.DatasetPath = dataset
			case "rate-limit":
				c.RateLimit = rateLimit
			case "log-level":
				c.LogLevel = logLevel
			case "log-file":
				c.LogFile = logFile
			case "api-keys":
				c.APIKeys = appconf.SplitList(apiKeys)
			}
		})
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, logCloser := logging.NewLogger(logging.Options{
		Level: cfg.SlogLevel(),
		JSON:  cfg.Env == appconf.Production,
		File:  cfg.LogFile,
	})
	defer logging.SafeCloseWithLogging(logCloser, logger, "log_file")

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(application, logger, "dataset")

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	router := httprouter.New()
	api.SetRoutes(router)
	if cfg.Env != appconf.Production {
		(&webui.WebUI{Application: application}).SetWebUIRoutes(router)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "dataset", cfg.DatasetPath)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

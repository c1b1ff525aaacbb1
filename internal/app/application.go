package app

import (
	"fmt"
	"log/slog"

	"wayfinder.transit.dev/internal/appconf"
	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/internal/planner"
	"wayfinder.transit.dev/transitdb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. The dataset handle is opened once at start-up and shared
// read-only by every request.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Dataset *transitdb.Client
	Lookup  *lookup.Service
	Planner *planner.Planner
}

// New opens the dataset named by cfg and wires the lookup and planner
// services over it.
func New(cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	client, err := transitdb.Open(transitdb.NewConfig(cfg.DatasetPath, cfg.Env == appconf.Development))
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return NewWithClient(cfg, logger, client), nil
}

func NewWithClient(cfg appconf.Config, logger *slog.Logger, client *transitdb.Client) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Dataset: client,
		Lookup:  lookup.New(client.Queries),
		Planner: planner.New(client.Queries),
	}
}

func (app *Application) Close() error {
	if app.Dataset == nil {
		return nil
	}
	return app.Dataset.Close()
}

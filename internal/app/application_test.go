package app_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfinder.transit.dev/internal/app"
	"wayfinder.transit.dev/internal/appconf"
	"wayfinder.transit.dev/internal/fixtures"
)

func TestNewOpensDataset(t *testing.T) {
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.DatasetPath = fixtures.BuildDataset(t)

	application, err := app.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	assert.NotNil(t, application.Logger)
	assert.NotNil(t, application.Lookup)
	assert.NotNil(t, application.Planner)
}

func TestNewMissingDataset(t *testing.T) {
	cfg := appconf.Default()
	cfg.DatasetPath = filepath.Join(t.TempDir(), "absent.db")

	_, err := app.New(cfg, nil)
	assert.Error(t, err)
}

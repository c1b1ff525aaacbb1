package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Production, EnvFlagToEnvironment("production"))
	assert.Equal(t, Production, EnvFlagToEnvironment("PROD"))
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, "test", Test.String())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	configPath := writeFile(t, "wayfinder.yml", `
port: 5000
env: production
dataset: /srv/file.db
rate_limit: 20
log_level: WARN
api_keys: [alpha, beta]
`)
	dotenvPath := writeFile(t, ".env", "WAYFINDER_DATASET=/srv/dotenv.db\nWAYFINDER_RATE_LIMIT=30\n")

	t.Setenv("WAYFINDER_RATE_LIMIT", "40")
	t.Setenv("WAYFINDER_DATASET", "")

	cfg, err := Load(configPath, dotenvPath, func(c *Config) {
		c.Port = 6000
	})
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Port, "flags win")
	assert.Equal(t, Production, cfg.Env, "file value survives when nothing overrides it")
	assert.Equal(t, 40, cfg.RateLimit, "environment beats .env")
	assert.Equal(t, "/srv/file.db", cfg.DatasetPath, "a blank environment variable is ignored")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.APIKeys)
}

func TestLoadDotenv(t *testing.T) {
	dotenvPath := writeFile(t, ".env", "WAYFINDER_LOG_FILE=/tmp/wayfinder.log\n")
	t.Setenv("WAYFINDER_LOG_FILE", "")
	require.NoError(t, os.Unsetenv("WAYFINDER_LOG_FILE"))

	cfg, err := Load("", dotenvPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wayfinder.log", cfg.LogFile)
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.env"), nil)
	assert.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"), "", nil)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yml", "port: [1"), "", nil)
		assert.Error(t, err)
	})

	t.Run("non numeric port", func(t *testing.T) {
		t.Setenv("WAYFINDER_PORT", "eighty")
		_, err := Load("", "", nil)
		assert.ErrorContains(t, err, "WAYFINDER_PORT")
	})

	t.Run("validation", func(t *testing.T) {
		_, err := Load("", "", func(c *Config) {
			c.Port = 0
			c.LogLevel = "loud"
		})
		assert.ErrorContains(t, err, "invalid configuration")
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(""))
}

// Package appconf loads the API server configuration. Sources are applied
// in increasing priority: defaults, an optional YAML file, an optional .env
// file, WAYFINDER_* environment variables, then command-line flags.
package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "WAYFINDER_"

type Config struct {
	Port        int         `validate:"min=1,max=65535"`
	Env         Environment `validate:"min=0,max=2"`
	DatasetPath string      `validate:"required"`
	// Requests per second per client; 0 rejects everything.
	RateLimit int    `validate:"min=0"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFile   string
	// Accepted values of the key query parameter. Empty disables the check.
	APIKeys []string `validate:"dive,required"`
}

func Default() Config {
	return Config{
		Port:        4000,
		Env:         Development,
		DatasetPath: "wayfinder.db",
		RateLimit:   100,
		LogLevel:    "info",
	}
}

type fileConfig struct {
	Port      *int     `yaml:"port"`
	Env       string   `yaml:"env"`
	Dataset   string   `yaml:"dataset"`
	RateLimit *int     `yaml:"rate_limit"`
	LogLevel  string   `yaml:"log_level"`
	LogFile   string   `yaml:"log_file"`
	APIKeys   []string `yaml:"api_keys"`
}

// Load reads every configuration source and validates the result. Empty
// paths skip the YAML and .env files; a missing .env file is not an error.
// apply, when non-nil, runs last and is where flag values are applied.
func Load(configPath, dotenvPath string, apply func(*Config)) (Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return Config{}, err
		}
	}

	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if apply != nil {
		apply(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.Env != "" {
		c.Env = EnvFlagToEnvironment(fc.Env)
	}
	if fc.Dataset != "" {
		c.DatasetPath = fc.Dataset
	}
	if fc.RateLimit != nil {
		c.RateLimit = *fc.RateLimit
	}
	if fc.LogLevel != "" {
		c.LogLevel = strings.ToLower(fc.LogLevel)
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if len(fc.APIKeys) > 0 {
		c.APIKeys = fc.APIKeys
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
		c.Port = port
	}
	if v, ok := get("ENV"); ok {
		c.Env = EnvFlagToEnvironment(v)
	}
	if v, ok := get("DATASET"); ok {
		c.DatasetPath = v
	}
	if v, ok := get("RATE_LIMIT"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", envPrefix, err)
		}
		c.RateLimit = limit
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := get("API_KEYS"); ok {
		c.APIKeys = SplitList(v)
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel converts LogLevel for slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

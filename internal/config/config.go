// Package config loads server settings from the environment.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/benbeisheim/fogchess-backend/internal/storage"
)

const (
	envAddr         = "FOGCHESS_ADDR"
	envAllowOrigins = "FOGCHESS_ALLOW_ORIGINS"
	envDataDir      = "FOGCHESS_DATA_DIR"

	memoryDataDir = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Addr         string
	AllowOrigins string
	// DataDir holds the game archive. Empty means in-memory.
	DataDir string
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
	}
}

// Load reads the environment over the defaults. FOGCHESS_DATA_DIR=memory
// keeps the archive in memory; unset uses the platform data directory.
func Load() (Config, error) {
	cfg := Default()
	if v := strings.TrimSpace(os.Getenv(envAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(envAllowOrigins)); v != "" {
		cfg.AllowOrigins = v
	}

	switch v := strings.TrimSpace(os.Getenv(envDataDir)); v {
	case memoryDataDir:
		cfg.DataDir = ""
	case "":
		dataDir, err := storage.GetDataDir()
		if err != nil {
			return Config{}, err
		}
		dbDir, err := storage.GetDatabaseDir(dataDir)
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dbDir
	default:
		dbDir, err := storage.GetDatabaseDir(v)
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dbDir
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.Join(ErrInvalidConfig, errors.New("listen address is empty"))
	}
	if len(c.Origins()) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("allowed origins are empty"))
	}
	// credentials are allowed, and cors refuses them with a wildcard origin
	for _, o := range c.Origins() {
		if o == "*" {
			return errors.Join(ErrInvalidConfig, errors.New("wildcard origin is not allowed"))
		}
	}
	return nil
}

// Origins splits AllowOrigins on commas.
func (c Config) Origins() []string {
	origins := []string{}
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

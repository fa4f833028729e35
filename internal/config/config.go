// Package config loads runtime settings from an optional config.yaml
// and the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DatabaseURL selects the backing store: empty for in-memory,
	// postgres:// for PostgreSQL, anything else is a SQLite file path.
	DatabaseURL string   `yaml:"database_url"`
	Port        int      `yaml:"port"`
	JWTSecret   string   `yaml:"jwt_secret"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Load reads config.yaml when present (override the path with
// OUTLAY_CONFIG), then applies environment overrides.
func Load() (Config, error) {
	cfg := Config{Port: 8080}

	path := os.Getenv("OUTLAY_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// The file is optional; env vars alone are enough.
	default:
		return Config{}, fmt.Errorf("open %s: %w", path, err)
	}

	overrideFromEnv(&cfg)

	if cfg.Port <= 0 || cfg.Port >= 65536 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.CORSOrigins = origins
	}
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

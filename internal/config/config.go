package config

import (
	"fmt"
	"os"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	StorageBackendSupabase    = "supabase"
	StorageBackendLocal       = "local"
	StorageBackendPlaceholder = "placeholder"
)

type Config struct {
	// Database
	DatabaseURL string

	// Asset storage
	StorageBackend        string
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string
	UploadDir             string

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),

		StorageBackend:        getEnv("STORAGE_BACKEND", StorageBackendLocal),
		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "projects"),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.StorageBackend {
	case StorageBackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required when STORAGE_BACKEND=supabase")
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required when STORAGE_BACKEND=supabase")
		}
	case StorageBackendLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required when STORAGE_BACKEND=local")
		}
	case StorageBackendPlaceholder:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the configuration and reports all violations together
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must be numeric"})
	}

	switch cfg.DBDriver {
	case "postgres":
		for field, value := range map[string]string{
			"DB_HOST":     cfg.DBHost,
			"DB_PORT":     cfg.DBPort,
			"DB_USER":     cfg.DBUser,
			"DB_PASSWORD": cfg.DBPassword,
			"DB_NAME":     cfg.DBName,
		} {
			if value == "" {
				errs = append(errs, ValidationError{Field: field, Message: "is required for the postgres driver"})
			}
		}
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{Field: "DB_PATH", Message: "is required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required"})
	}

	if cfg.VisionCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "VISION_CACHE_TTL", Message: "must not be negative"})
	}
	if cfg.ScanRateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "SCAN_RATE_LIMIT", Message: "must be positive"})
	}
	if cfg.ScanRateWindow <= 0 {
		errs = append(errs, ValidationError{Field: "SCAN_RATE_WINDOW", Message: "must be positive"})
	}

	if cfg.Environment.IsProduction() && cfg.Debug {
		errs = append(errs, ValidationError{Field: "DEBUG", Message: "must be disabled in production"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

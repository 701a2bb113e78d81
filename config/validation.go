package config

import (
	"fmt"
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

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWTSecret", "jwt secret is required"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DBPath", "sqlite driver needs DB_PATH"})
		}
	case "postgres":
		for field, v := range map[string]string{
			"DBHost": cfg.DBHost,
			"DBPort": cfg.DBPort,
			"DBName": cfg.DBName,
			"DBUser": cfg.DBUser,
		} {
			if v == "" {
				errs = append(errs, ValidationError{field, "required for postgres"})
			}
		}
	default:
		errs = append(errs, ValidationError{"DBDriver", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if GetEnvironment() == Production {
		if cfg.DBDriver == "sqlite" {
			errs = append(errs, ValidationError{"DBDriver", "sqlite is not allowed in production"})
		}
		if len(cfg.JWTSecret) < 32 {
			errs = append(errs, ValidationError{"JWTSecret", "must be at least 32 characters in production"})
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DBPassword", "db_password secret is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the service
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string // sqlite file, ":memory:" for throwaway databases

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration. Tokens are issued by the identity provider and
	// only validated here.
	JWTSecret string

	// Image storage
	S3Bucket   string
	S3Region   string
	S3Endpoint string

	// Requests per hour for image uploads and meal creation
	UploadRateLimit int
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Test:
		if err := loadEnvConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	case Development, Production:
		loadSecretConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads everything from environment variables (CI and test runs)
func loadEnvConfig(cfg *Config) error {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))
	cfg.DBDriver = os.Getenv("DB_DRIVER")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.DBPath = os.Getenv("DB_PATH")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Region = os.Getenv("AWS_REGION")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")

	if v := os.Getenv("UPLOAD_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("UPLOAD_RATE_LIMIT: %w", err)
		}
		cfg.UploadRateLimit = n
	}
	cfg.RedisDB = 0 // This is a constant, not a secret

	return nil
}

// loadSecretConfig reads Docker secrets, falling back to the matching
// environment variable for non-sensitive values
func loadSecretConfig(cfg *Config) {
	cfg.ServerPort = secretOrEnv("server_port")
	cfg.ServerHost = secretOrEnv("server_host")
	cfg.AllowedOrigins = splitList(secretOrEnv("allowed_origins"))
	cfg.DBDriver = secretOrEnv("db_driver")
	cfg.DBHost = secretOrEnv("db_host")
	cfg.DBPort = secretOrEnv("db_port")
	cfg.DBName = secretOrEnv("db_name")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode")
	cfg.DBPath = secretOrEnv("db_path")
	cfg.RedisHost = secretOrEnv("redis_host")
	cfg.RedisPort = secretOrEnv("redis_port")
	cfg.RedisURL = secretOrEnv("redis_url")
	cfg.S3Bucket = secretOrEnv("s3_bucket_name")
	cfg.S3Region = secretOrEnv("aws_region")
	cfg.S3Endpoint = secretOrEnv("s3_endpoint")
	if n, err := strconv.Atoi(secretOrEnv("upload_rate_limit")); err == nil {
		cfg.UploadRateLimit = n
	}

	// Sensitive values only ever come from secrets
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisDB = 0
}

func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.DBDriver == "sqlite" && cfg.DBPath == "" {
		cfg.DBPath = "mealmate.db"
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = "mealmate-images"
	}
	if cfg.UploadRateLimit == 0 {
		cfg.UploadRateLimit = 30
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}
}

// secretsDir returns the directory Docker secrets are mounted in
func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	data, err := os.ReadFile(filepath.Join(secretsDir(), name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func secretOrEnv(name string) string {
	if v := readSecret(name); v != "" {
		return v
	}
	return os.Getenv(strings.ToUpper(name))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment
	// Debug exposes internal error detail in API responses.
	Debug    bool
	LogLevel string

	// Server configuration
	ServerPort         string
	ServerHost         string
	CORSAllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Vision extraction
	VisionAPIURL   string
	VisionAPIKey   string
	VisionModel    string
	VisionTimeout  time.Duration
	VisionCacheTTL time.Duration

	// Ingredient scan rate limit
	ScanRateLimit  int
	ScanRateWindow time.Duration

	// Object storage
	S3BucketName string
	AWSRegion    string
}

// secretKeys are read from SECRETS_DIR when the matching environment
// variable is not set. File names are the lower-cased keys.
var secretKeys = []string{
	"DB_USER",
	"DB_PASSWORD",
	"JWT_SECRET",
	"REDIS_PASSWORD",
	"REDIS_URL",
	"VISION_API_KEY",
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEBUG", env == Development)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://frontend:5173")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "pantrymatch")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "pantrymatch.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("VISION_API_URL", "https://api.openai.com/v1")
	v.SetDefault("VISION_MODEL", "gpt-4o-mini")
	v.SetDefault("VISION_TIMEOUT", 30*time.Second)
	v.SetDefault("VISION_CACHE_TTL", 24*time.Hour)

	v.SetDefault("SCAN_RATE_LIMIT", 20)
	v.SetDefault("SCAN_RATE_WINDOW", time.Hour)

	v.SetDefault("S3_BUCKET_NAME", "pantrymatch-recipe-images")
	v.SetDefault("AWS_REGION", "us-east-1")

	if !env.RequiresSecrets() {
		v.SetDefault("DB_PASSWORD", "postgres")
		v.SetDefault("JWT_SECRET", "development-secret")
	}
}

// LoadConfig builds a Config from the environment, an optional .env file and
// docker secrets, then validates it.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	env := GetEnvironment()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v, env)

	for _, key := range secretKeys {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if secret := readSecret(strings.ToLower(key)); secret != "" {
			v.Set(key, secret)
		}
	}

	cfg := &Config{
		Environment:        env,
		Debug:              v.GetBool("DEBUG"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		ServerPort:         v.GetString("SERVER_PORT"),
		ServerHost:         v.GetString("SERVER_HOST"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSL_MODE"),
		DBPath:             v.GetString("DB_PATH"),
		RedisURL:           v.GetString("REDIS_URL"),
		RedisHost:          v.GetString("REDIS_HOST"),
		RedisPort:          v.GetString("REDIS_PORT"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		VisionAPIURL:       v.GetString("VISION_API_URL"),
		VisionAPIKey:       v.GetString("VISION_API_KEY"),
		VisionModel:        v.GetString("VISION_MODEL"),
		VisionTimeout:      v.GetDuration("VISION_TIMEOUT"),
		VisionCacheTTL:     v.GetDuration("VISION_CACHE_TTL"),
		ScanRateLimit:      v.GetInt("SCAN_RATE_LIMIT"),
		ScanRateWindow:     v.GetDuration("SCAN_RATE_WINDOW"),
		S3BucketName:       v.GetString("S3_BUCKET_NAME"),
		AWSRegion:          v.GetString("AWS_REGION"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

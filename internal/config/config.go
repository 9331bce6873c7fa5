package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int
	DBMaxConnIdle time.Duration
	DBMaxConnLife time.Duration

	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	TrustedProxies []string

	Storage StorageConfig

	MaxUploadBytes    int64
	ProfileCacheSize  int
	ProfileCacheTTL   time.Duration
	StoryTTL          time.Duration
	HatcheryCycleDays int
	DeadLetterPath    string
}

// StorageConfig selects and configures the image storage backend
type StorageConfig struct {
	Backend           string
	LocalPath         string
	LocalBaseURL      string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
	S3PublicBaseURL   string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdle: getEnvAsDuration("DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle),
		DBMaxConnLife: getEnvAsDuration("DB_MAX_CONN_LIFE", DefaultDBMaxConnLife),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTIssuer:      getEnv("JWT_ISSUER", DefaultServiceName),
		TokenTTL:       getEnvAsDuration("TOKEN_TTL", DefaultTokenTTL),
		TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES"),

		Storage: StorageConfig{
			Backend:           strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendLocal)),
			LocalPath:         getEnv("LOCAL_STORAGE_PATH", DefaultLocalStoragePath),
			LocalBaseURL:      getEnv("LOCAL_STORAGE_BASE_URL", DefaultLocalStorageBaseURL),
			S3Bucket:          getEnv("S3_BUCKET", ""),
			S3Region:          getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:        getEnv("S3_ENDPOINT", ""),
			S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			S3UsePathStyle:    getEnvAsBool("S3_USE_PATH_STYLE", false),
			S3PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
		},

		MaxUploadBytes:    int64(getEnvAsInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		ProfileCacheSize:  getEnvAsInt("PROFILE_CACHE_SIZE", DefaultProfileCacheSize),
		ProfileCacheTTL:   getEnvAsDuration("PROFILE_CACHE_TTL", DefaultProfileCacheTTL),
		StoryTTL:          getEnvAsDuration("STORY_TTL", DefaultStoryTTL),
		HatcheryCycleDays: getEnvAsInt("HATCHERY_CYCLE_DAYS", DefaultHatcheryCycleDays),
		DeadLetterPath:    getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}

	switch cfg.Storage.Backend {
	case StorageBackendLocal, StorageBackendS3:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (expected %s or %s)",
			cfg.Storage.Backend, StorageBackendLocal, StorageBackendS3)
	}

	if cfg.HatcheryCycleDays <= 0 {
		return nil, fmt.Errorf("HATCHERY_CYCLE_DAYS must be positive, got %d", cfg.HatcheryCycleDays)
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// CycleLength returns the configured hatchery cycle duration
func (c *Config) CycleLength() time.Duration {
	return time.Duration(c.HatcheryCycleDays) * 24 * time.Hour
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice splits a comma-separated variable, dropping blanks
func getEnvAsSlice(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

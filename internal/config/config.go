package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process configuration read from the environment. Commands
// load a .env file first, so local overrides work without exporting.
type Config struct {
	Server ServerConfig
	Build  BuildConfig
	Neo4j  Neo4jConfig
	Valkey ValkeyConfig
	MinIO  MinIOConfig
	S3     S3Config
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type BuildConfig struct {
	LogLevel   string        // CDM_LOG_LEVEL
	OnConflict string        // CDM_ON_CONFLICT
	Strict     bool          // CDM_STRICT: reject unknown YAML keys
	CacheSize  int           // CDM_CACHE_SIZE: decoded files kept in memory
	Debounce   time.Duration // CDM_WATCH_DEBOUNCE_MS
}

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

// ValkeyConfig is optional; an empty Addr disables the shared decode cache.
type ValkeyConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type S3Config struct {
	Region   string // S3_REGION
	Bucket   string // S3_BUCKET
	Prefix   string // S3_PREFIX (optional default prefix)
	Endpoint string // S3_ENDPOINT (for MinIO/LocalStack compatibility)
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECS", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECS", 60)) * time.Second,
		},
		Build: BuildConfig{
			LogLevel:   getEnv("CDM_LOG_LEVEL", "info"),
			OnConflict: getEnv("CDM_ON_CONFLICT", "keep-first"),
			Strict:     getEnvBool("CDM_STRICT", false),
			CacheSize:  getEnvInt("CDM_CACHE_SIZE", 512),
			Debounce:   time.Duration(getEnvInt("CDM_WATCH_DEBOUNCE_MS", 300)) * time.Millisecond,
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", "cdm"),
			Database: getEnv("NEO4J_DATABASE", ""),
		},
		Valkey: ValkeyConfig{
			Addr:     getEnv("VALKEY_ADDR", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
			TTL:      time.Duration(getEnvInt("VALKEY_TTL_HOURS", 24)) * time.Hour,
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "cdm"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "cdm12345"),
			Bucket:    getEnv("MINIO_BUCKET", "cdm"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		S3: S3Config{
			Region:   getEnv("S3_REGION", ""),
			Bucket:   getEnv("S3_BUCKET", ""),
			Prefix:   getEnv("S3_PREFIX", ""),
			Endpoint: getEnv("S3_ENDPOINT", ""),
		},
	}
	if cfg.Build.CacheSize <= 0 {
		return nil, fmt.Errorf("CDM_CACHE_SIZE must be positive, got %d", cfg.Build.CacheSize)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

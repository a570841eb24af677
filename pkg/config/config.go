package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env     string
	Port    int
	BaseURL string

	Storage   StorageConfig
	Retention RetentionConfig
	Upload    UploadConfig
	Serve     ServeConfig
	PDF       PDFConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

// StorageConfig locates the artifact directory.
type StorageConfig struct {
	Dir string
}

// RetentionConfig tunes the background sweeper.
type RetentionConfig struct {
	MaxFileAge      time.Duration
	CleanupInterval time.Duration
}

// UploadConfig bounds and protects the upload endpoint.
type UploadConfig struct {
	MaxContentLength int64
	APIKey           string
}

// ServeConfig controls caching and hardening headers on served artifacts.
type ServeConfig struct {
	CSPPolicy   string
	CacheMaxAge time.Duration
}

// PDFConfig wires the external rendering service.
type PDFConfig struct {
	Enabled       bool
	GotenbergURL  string
	RenderTimeout time.Duration
	HealthTimeout time.Duration
}

// RateLimitConfig toggles the per-client request quotas.
type RateLimitConfig struct {
	Enabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.BaseURL = strings.TrimRight(v.GetString("BASE_URL"), "/")

	cfg.Storage = StorageConfig{Dir: v.GetString("STORAGE_DIR")}

	cfg.Retention = RetentionConfig{
		MaxFileAge:      parseDuration(v.GetString("MAX_FILE_AGE"), 24*time.Hour),
		CleanupInterval: parseDuration(v.GetString("CLEANUP_INTERVAL"), 10*time.Minute),
	}

	maxContentLength := v.GetInt64("MAX_CONTENT_LENGTH")
	if maxContentLength <= 0 {
		maxContentLength = 1 * 1024 * 1024
	}
	cfg.Upload = UploadConfig{
		MaxContentLength: maxContentLength,
		APIKey:           v.GetString("API_KEY"),
	}

	cfg.Serve = ServeConfig{
		CSPPolicy:   v.GetString("CSP_POLICY"),
		CacheMaxAge: parseDuration(v.GetString("CACHE_MAX_AGE"), time.Hour),
	}

	cfg.PDF = PDFConfig{
		Enabled:       v.GetBool("PDF_ENABLED"),
		GotenbergURL:  strings.TrimRight(v.GetString("GOTENBERG_URL"), "/"),
		RenderTimeout: parseDuration(v.GetString("RENDER_TIMEOUT"), 30*time.Second),
		HealthTimeout: parseDuration(v.GetString("RENDER_HEALTH_TIMEOUT"), 2*time.Second),
	}

	cfg.RateLimit = RateLimitConfig{Enabled: v.GetBool("RATE_LIMIT_ENABLED")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("BASE_URL", "http://localhost:8080")

	v.SetDefault("STORAGE_DIR", "./html_files")

	v.SetDefault("MAX_FILE_AGE", "24h")
	v.SetDefault("CLEANUP_INTERVAL", "10m")

	v.SetDefault("MAX_CONTENT_LENGTH", 1*1024*1024)
	v.SetDefault("API_KEY", "")

	v.SetDefault("CSP_POLICY", "default-src 'self' 'unsafe-inline' 'unsafe-eval' data: blob: https:;")
	v.SetDefault("CACHE_MAX_AGE", "1h")

	v.SetDefault("PDF_ENABLED", true)
	v.SetDefault("GOTENBERG_URL", "http://gotenberg:3000")
	v.SetDefault("RENDER_TIMEOUT", "30s")
	v.SetDefault("RENDER_HEALTH_TIMEOUT", "2s")

	v.SetDefault("RATE_LIMIT_ENABLED", true)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

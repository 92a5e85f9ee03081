// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database connection, rate limiting, the
// language-model client, sessions and observability.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects and tunes the relational store.
type DBConfig struct {
	URL        string        // DATABASE_URL; postgres when set
	Path       string        // DB_PATH; SQLite file used when URL is empty
	MaxRetries int           // DB_MAX_RETRIES
	RetryBase  time.Duration // DB_RETRY_BASE
	RetryMax   time.Duration // DB_RETRY_MAX
}

// RateConfig is a fixed-window limit: Limit requests per Window.
type RateConfig struct {
	Limit  int
	Window time.Duration
}

// LLMConfig configures the external completion API used by the chat widget.
type LLMConfig struct {
	APIKey         string        // GEMINI_API_KEY | GOOGLE_API_KEY | AI_API_KEY
	Model          string        // LLM_MODEL
	Timeout        time.Duration // LLM_TIMEOUT
	RPS            float64       // LLM_RPS; outbound requests per second
	Burst          int           // LLM_BURST
	ContactChannel string        // CONTACT_CHANNEL; where uncertain answers point users
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	Env               string        // development|production
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 40s (covers the model call)
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test
	Version           string        // APP_VERSION, reported by /health

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	LogFile        string // optional rotating log file
	SwaggerEnabled bool   // enable Swagger UI route

	// Storage
	DB       DBConfig
	RedisURL string // optional; shares rate-limit windows across instances

	// Input guard / rate limiting
	MaxFieldLen int
	EdgeRate    RateConfig
	ChatRate    RateConfig

	// Assistant
	LLM              LLMConfig
	TrainingCacheTTL time.Duration

	// Sessions
	SessionSecret          string
	SessionSecretGenerated bool

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration

	// Observability
	OTEL OTELConfig
}

// IsProduction reports whether the service runs with production semantics
// (no error details or stack traces in responses, secure cookies).
func (c Config) IsProduction() bool { return c.Env == "production" }

// Warnings lists settings that are valid but unsafe for the current
// environment. main logs each one at startup.
func (c Config) Warnings() []string {
	var out []string
	if c.IsProduction() && strings.TrimSpace(c.DB.URL) == "" {
		out = append(out, "DATABASE_URL is not set; production is using the SQLite file "+c.DB.Path)
	}
	if c.SessionSecretGenerated {
		out = append(out, "SESSION_SECRET not set; using a random secret, sessions will not survive restarts")
	}
	return out
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "5000"),
		Env:               strings.ToLower(getenv("APP_ENV", "development")),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 40*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		Version:           getenv("APP_VERSION", "1.0.0"),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		LogFile:        getenv("LOG_FILE", ""),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),

		// Storage
		DB: DBConfig{
			URL:        getenv("DATABASE_URL", ""),
			Path:       getenv("DB_PATH", "app.db"),
			MaxRetries: getint("DB_MAX_RETRIES", 5),
			RetryBase:  getdur("DB_RETRY_BASE", 2*time.Second),
			RetryMax:   getdur("DB_RETRY_MAX", 15*time.Second),
		},
		RedisURL: getenv("REDIS_URL", ""),

		// Input guard / rate limiting
		MaxFieldLen: getint("MAX_FIELD_LEN", 2000),
		EdgeRate: RateConfig{
			Limit:  getint("EDGE_RATE_LIMIT", 1000),
			Window: getdur("EDGE_RATE_WINDOW", 5*time.Minute),
		},
		ChatRate: RateConfig{
			Limit:  getint("CHAT_RATE_LIMIT", 10),
			Window: getdur("CHAT_RATE_WINDOW", time.Minute),
		},

		// Assistant
		LLM: LLMConfig{
			APIKey:         firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "AI_API_KEY"),
			Model:          getenv("LLM_MODEL", "gemini-1.5-flash-latest"),
			Timeout:        getdur("LLM_TIMEOUT", 20*time.Second),
			RPS:            getfloat("LLM_RPS", 2.0),
			Burst:          getint("LLM_BURST", 4),
			ContactChannel: getenv("CONTACT_CHANNEL", "선거사무소(010-7366-8789)"),
		},
		TrainingCacheTTL: getdur("TRAINING_CACHE_TTL", 30*time.Minute),

		// Sessions
		SessionSecret: getenv("SESSION_SECRET", ""),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "jinan-campaign-api"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.Env == "prod" {
		cfg.Env = "production"
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		secret, err := randomHex(32)
		if err != nil {
			return cfg, err
		}
		cfg.SessionSecret = secret
		cfg.SessionSecretGenerated = true
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DB.URL) == "" && strings.TrimSpace(cfg.DB.Path) == "" {
		return cfg, errors.New("DATABASE_URL or DB_PATH must be set")
	}
	if cfg.DB.MaxRetries < 1 {
		return cfg, errors.New("DB_MAX_RETRIES must be >= 1")
	}
	if cfg.DB.RetryBase <= 0 || cfg.DB.RetryMax < cfg.DB.RetryBase {
		return cfg, errors.New("DB_RETRY_BASE must be > 0 and <= DB_RETRY_MAX")
	}
	if cfg.MaxFieldLen < 1 {
		return cfg, errors.New("MAX_FIELD_LEN must be >= 1")
	}
	if cfg.EdgeRate.Limit < 1 || cfg.EdgeRate.Window <= 0 {
		return cfg, errors.New("EDGE_RATE_LIMIT must be >= 1 and EDGE_RATE_WINDOW > 0")
	}
	if cfg.ChatRate.Limit < 1 || cfg.ChatRate.Window <= 0 {
		return cfg, errors.New("CHAT_RATE_LIMIT must be >= 1 and CHAT_RATE_WINDOW > 0")
	}
	if cfg.LLM.Timeout <= 0 {
		return cfg, errors.New("LLM_TIMEOUT must be > 0")
	}
	if cfg.LLM.RPS <= 0 {
		return cfg, errors.New("LLM_RPS must be > 0")
	}
	if cfg.LLM.Burst < 1 {
		return cfg, errors.New("LLM_BURST must be >= 1")
	}
	if cfg.TrainingCacheTTL <= 0 {
		return cfg, errors.New("TRAINING_CACHE_TTL must be > 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// randomHex returns n random bytes encoded as hex.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
// Embed or extend it in your app's own AppConfig.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Graph   GraphConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// GraphConfig controls how HTTP requests map onto container scopes.
type GraphConfig struct {
	// CorrelationHeader names the request header whose value is attached to
	// a request scope for logging. Requests without it fall back to the chi
	// request id. Scope ids themselves are always generated by the server.
	CorrelationHeader string
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
	Path      string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	appEnv := env("APP_ENV", "local")
	format := "console"
	if appEnv == "production" {
		format = "json"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoGraph"),
			Env:   appEnv,
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", format),
		},
		Graph: GraphConfig{
			CorrelationHeader: env("GRAPH_CORRELATION_HEADER", "X-Request-ID"),
		},
		Metrics: MetricsConfig{
			Enabled:   envBool("METRICS_ENABLED", true),
			Namespace: env("METRICS_NAMESPACE", "gograph"),
			Path:      env("METRICS_PATH", "/metrics"),
		},
	}
}

// IsProduction reports whether App.Env is "production".
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"

	"quote-generator-api/utils"
)

type Config struct {
	Environment string `default:"development"`
	Server      ServerConfig
	Session     SessionConfig
	Redis       RedisConfig
	Webhook     WebhookConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	PDF         PDFConfig
}

type ServerConfig struct {
	Port            int           `default:"5000"`
	PortAttempts    int           `default:"10"`
	ReadTimeout     time.Duration `default:"15s"`
	WriteTimeout    time.Duration `default:"30s"`
	IdleTimeout     time.Duration `default:"120s"`
	ShutdownTimeout time.Duration `default:"15s"`
}

type SessionConfig struct {
	Secret   string
	Name     string `default:"quote-session"`
	Domain   string
	MaxAge   int    `default:"86400"`
	Secure   bool   `default:"false"`
	HttpOnly bool   `default:"true"`
	SameSite string `default:"lax"`
}

type RedisConfig struct {
	URL string
}

type WebhookConfig struct {
	FeedbackURL string        `default:"https://hook.eu2.make.com/viqf8bj1icbdseb4itbug8lljjdoyqix"`
	Timeout     time.Duration `default:"15s"`
}

type CORSConfig struct {
	AllowedOrigins []string `default:"[\"http://localhost:3000\", \"http://localhost:3001\", \"http://localhost:3002\", \"http://127.0.0.1:3000\"]"`
	AllowLocalhost bool     `default:"true"`
}

type LoggingConfig struct {
	Level string `default:"info"`
}

// PDFConfig points at an optional UTF-8 TTF font; without it PDFs use the
// core Helvetica font and non-Latin text is transliterated.
type PDFConfig struct {
	FontPath string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads .env (if present), applies defaults and then environment
// overrides. It never fails: invalid values are logged and the default kept.
func Load(logger *slog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		logger.Error("failed to apply config defaults", "error", err)
	}

	envString("APP_ENV", &cfg.Environment)

	envInt(logger, "SERVER_PORT", &cfg.Server.Port)
	envInt(logger, "SERVER_PORT_ATTEMPTS", &cfg.Server.PortAttempts)
	envDuration(logger, "SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration(logger, "SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)

	envString("SESSION_SECRET", &cfg.Session.Secret)
	envString("SESSION_NAME", &cfg.Session.Name)
	envString("SESSION_DOMAIN", &cfg.Session.Domain)
	envInt(logger, "SESSION_MAX_AGE", &cfg.Session.MaxAge)
	if cfg.IsProduction() {
		cfg.Session.Secure = true
		cfg.Session.SameSite = "none"
	}
	envBool(logger, "SESSION_SECURE", &cfg.Session.Secure)
	envString("SESSION_SAME_SITE", &cfg.Session.SameSite)

	if cfg.Session.Secret == "" {
		cfg.Session.Secret = utils.GenerateRandomString(48)
		logger.Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	envString("REDIS_URL", &cfg.Redis.URL)

	envString("FEEDBACK_WEBHOOK_URL", &cfg.Webhook.FeedbackURL)
	envDuration(logger, "WEBHOOK_TIMEOUT", &cfg.Webhook.Timeout)

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, v)
	}
	envBool(logger, "CORS_ALLOW_LOCALHOST", &cfg.CORS.AllowLocalhost)

	envString("LOG_LEVEL", &cfg.Logging.Level)
	envString("PDF_FONT_PATH", &cfg.PDF.FontPath)

	logger.Info("config loaded",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
		"redis", cfg.Redis.URL != "",
		"origins", cfg.CORS.AllowedOrigins,
	)

	return cfg
}

// ParseLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(logger *slog.Logger, key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("ignoring invalid integer", "key", key, "value", v)
		return
	}
	*dst = n
}

func envBool(logger *slog.Logger, key string, dst *bool) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn("ignoring invalid boolean", "key", key, "value", v)
		return
	}
	*dst = b
}

func envDuration(logger *slog.Logger, key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn("ignoring invalid duration", "key", key, "value", v)
		return
	}
	*dst = d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

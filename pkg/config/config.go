package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Config holds server configuration read from environment variables.
type Config struct {
	Port     int
	LogLevel string

	// FlinkURL optionally pre-initializes the cluster connection at
	// startup. Tools can re-initialize at any time.
	FlinkURL string

	// Optional credential attached to every outbound cluster request.
	APIToken    string
	APIUser     string
	APIPassword string

	OTelEnabled  bool
	OTelEndpoint string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

// NewFromEnv creates a Config by reading environment variables with defaults.
func NewFromEnv() *Config {
	port := 8080
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	logLevel := "info"
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		logLevel = v
	}

	otelEnabled := false
	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid OTEL_ENABLED value, defaulting to false")
		} else {
			otelEnabled = parsed
		}
	}

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = os.Getenv("OTEL_ENDPOINT")
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			smtpPort = p
		}
	}

	return &Config{
		Port:         port,
		LogLevel:     logLevel,
		FlinkURL:     os.Getenv("FLINK_URL"),
		APIToken:     os.Getenv("FLINK_API_TOKEN"),
		APIUser:      os.Getenv("FLINK_API_USER"),
		APIPassword:  os.Getenv("FLINK_API_PASSWORD"),
		OTelEnabled:  otelEnabled,
		OTelEndpoint: otelEndpoint,
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}
}

// SetupLogging configures slog with a JSON handler at the configured log level.
func (c *Config) SetupLogging() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.SlogLevel()})
	slog.SetDefault(slog.New(handler))
}

// SlogLevel returns the configured slog.Level for use with OTel log bridge setup.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"strings"
)

// Config is the root configuration for the indexfonder.se build tooling.
// The site/compress_html/build fields form the record handed to the external
// site framework; the remaining sections configure the fund data pipeline.
type Config struct {
	Site         string        `yaml:"site"`
	CompressHTML bool          `yaml:"compress_html"`
	Build        BuildConfig   `yaml:"build"`
	Data         DataConfig    `yaml:"data,omitempty"`
	Daemon       *DaemonConfig `yaml:"daemon,omitempty"`
	Logging      LoggingConfig `yaml:"logging,omitempty"`
}

// BuildConfig holds settings the external framework reads at build time.
type BuildConfig struct {
	// InlineStylesheets controls whether per-page stylesheets are inlined
	// into the emitted HTML or linked. One of always|auto|never.
	InlineStylesheets InlinePolicy `yaml:"inline_stylesheets"`
}

// InlinePolicy is a typed enumeration of stylesheet inlining policies.
type InlinePolicy string

const (
	InlineAlways InlinePolicy = "always"
	InlineAuto   InlinePolicy = "auto"
	InlineNever  InlinePolicy = "never"
)

// NormalizeInlinePolicy canonicalizes user input returning empty string if unknown.
func NormalizeInlinePolicy(raw string) InlinePolicy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(InlineAlways):
		return InlineAlways
	case string(InlineAuto):
		return InlineAuto
	case string(InlineNever):
		return InlineNever
	default:
		return ""
	}
}

// DataConfig configures the fund dataset refresh pipeline.
type DataConfig struct {
	// Output is the path of the funds.json artifact consumed by the site.
	Output string `yaml:"output,omitempty"`
	// Sources lists the upstream data providers recorded in the artifact.
	Sources []string `yaml:"sources,omitempty"`
	// RequestTimeout bounds each upstream HTTP request (duration string, default 20s).
	RequestTimeout string `yaml:"request_timeout,omitempty"`
	// HistoryDB is the SQLite file recording update runs. Empty disables history.
	HistoryDB string `yaml:"history_db,omitempty"`
	// Disclaimer is included verbatim in the artifact.
	Disclaimer string `yaml:"disclaimer,omitempty"`
}

// DaemonConfig configures the scheduled refresh daemon.
type DaemonConfig struct {
	// Schedule is a cron expression for periodic refreshes (default monthly).
	Schedule string `yaml:"schedule,omitempty"`
	// AdminPort serves /health and /metrics.
	AdminPort int `yaml:"admin_port,omitempty"`
	// NATS enables publishing dataset refresh events when set.
	NATS *NATSConfig `yaml:"nats,omitempty"`
}

// NATSConfig holds connection settings for event publishing.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject,omitempty"`
}

// LoggingConfig controls the default slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func NormalizeLogLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(LogLevelDebug):
		return LogLevelDebug
	case string(LogLevelInfo):
		return LogLevelInfo
	case string(LogLevelWarn):
		return LogLevelWarn
	case string(LogLevelError):
		return LogLevelError
	default:
		return ""
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

func NormalizeLogFormat(raw string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(LogFormatJSON):
		return LogFormatJSON
	case string(LogFormatText):
		return LogFormatText
	default:
		return ""
	}
}

// New constructs a validated build configuration record. It fails with a
// *ValidationError when site is not an absolute URL or the inlining policy
// is outside the enumerated set.
func New(site string, compressHTML bool, inlineStylesheets InlinePolicy) (*Config, error) {
	cfg := &Config{
		Site:         site,
		CompressHTML: compressHTML,
		Build:        BuildConfig{InlineStylesheets: inlineStylesheets},
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

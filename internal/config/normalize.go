package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments & warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerated fields prior to default application.
// It mutates the config in-place and returns a result describing coercions.
// Unknown enum values are left untouched so validation can reject them.
func Normalize(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	if p := NormalizeInlinePolicy(string(c.Build.InlineStylesheets)); p != "" && p != c.Build.InlineStylesheets {
		res.Warnings = append(res.Warnings, warnChanged("build.inline_stylesheets", c.Build.InlineStylesheets, p))
		c.Build.InlineStylesheets = p
	}

	normalizeLogging(&c.Logging, res)
	c.Site = strings.TrimSpace(c.Site)
	return res, nil
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if lvl := NormalizeLogLevel(string(l.Level)); lvl != "" {
		if l.Level != lvl {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
			l.Level = lvl
		}
	} else if string(l.Level) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("logging.level", string(l.Level), string(LogLevelInfo)))
		l.Level = LogLevelInfo
	}
	if f := NormalizeLogFormat(string(l.Format)); f != "" {
		if l.Format != f {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
			l.Format = f
		}
	} else if string(l.Format) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("logging.format", string(l.Format), string(LogFormatText)))
		l.Format = LogFormatText
	}
}

func warnChanged(field string, from, to interface{}) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, raw, fallback string) string {
	return fmt.Sprintf("unknown %s '%s', using '%s'", field, raw, fallback)
}

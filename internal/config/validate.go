package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// FieldError describes a single configuration validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// ValidationError aggregates field-level failures for one configuration.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Error())
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration record and tool sections. It returns a
// *ValidationError listing every violated constraint, or nil.
func Validate(cfg *Config) error {
	var fields []FieldError

	fields = append(fields, validateSite(cfg.Site)...)
	fields = append(fields, validateBuild(&cfg.Build)...)
	fields = append(fields, validateData(&cfg.Data)...)
	fields = append(fields, validateDaemon(cfg.Daemon)...)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateSite requires a syntactically valid absolute URL with scheme and host.
func validateSite(site string) []FieldError {
	if strings.TrimSpace(site) == "" {
		return []FieldError{{Field: "site", Code: "required", Message: "site URL is required"}}
	}
	u, err := url.Parse(site)
	if err != nil {
		return []FieldError{{Field: "site", Code: "invalid_url", Message: fmt.Sprintf("not a valid URL: %v", err)}}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []FieldError{{Field: "site", Code: "invalid_url", Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", site)}}
	}
	if u.Host == "" {
		return []FieldError{{Field: "site", Code: "invalid_url", Message: fmt.Sprintf("missing host in %q", site)}}
	}
	return nil
}

func validateBuild(b *BuildConfig) []FieldError {
	if NormalizeInlinePolicy(string(b.InlineStylesheets)) == "" {
		return []FieldError{{
			Field:   "build.inline_stylesheets",
			Code:    "invalid_enum",
			Message: fmt.Sprintf("must be one of always, auto, never; got %q", b.InlineStylesheets),
		}}
	}
	return nil
}

func validateData(d *DataConfig) []FieldError {
	var fields []FieldError
	if d.RequestTimeout != "" {
		if dur, err := time.ParseDuration(d.RequestTimeout); err != nil {
			fields = append(fields, FieldError{Field: "data.request_timeout", Code: "invalid_duration", Message: err.Error()})
		} else if dur <= 0 {
			fields = append(fields, FieldError{Field: "data.request_timeout", Code: "invalid_duration", Message: "must be positive"})
		}
	}
	return fields
}

func validateDaemon(d *DaemonConfig) []FieldError {
	if d == nil {
		return nil
	}
	var fields []FieldError
	if d.AdminPort < 0 || d.AdminPort > 65535 {
		fields = append(fields, FieldError{Field: "daemon.admin_port", Code: "out_of_range", Message: fmt.Sprintf("port %d out of range", d.AdminPort)})
	}
	if d.NATS != nil && strings.TrimSpace(d.NATS.URL) == "" {
		fields = append(fields, FieldError{Field: "daemon.nats.url", Code: "required", Message: "nats url is required when the nats section is present"})
	}
	return fields
}

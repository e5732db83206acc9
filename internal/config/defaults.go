package config

// Default values applied after normalization. All zero values trigger
// sensible defaults so a minimal config file stays minimal.
const (
	DefaultDataOutput     = "src/data/funds.json"
	DefaultRequestTimeout = "20s"
	DefaultSchedule       = "0 6 1 * *" // 06:00 on the 1st of every month
	DefaultAdminPort      = 9180
	DefaultNATSSubject    = "indexfonder.dataset.updated"
	DefaultDisclaimer     = "Inkluderar fonder för både privatpersoner och institutionella investerare. " +
		"Historisk avkastning är ingen garanti för framtida resultat."
)

var defaultSources = []string{"morningstar.se", "avanza.se", "nordnet.se", "fondmarknaden.se"}

// ApplyDefaults fills unset fields with defaults.
func ApplyDefaults(c *Config) {
	if c.Build.InlineStylesheets == "" {
		c.Build.InlineStylesheets = InlineAuto
	}
	if c.Data.Output == "" {
		c.Data.Output = DefaultDataOutput
	}
	if len(c.Data.Sources) == 0 {
		c.Data.Sources = append([]string(nil), defaultSources...)
	}
	if c.Data.RequestTimeout == "" {
		c.Data.RequestTimeout = DefaultRequestTimeout
	}
	if c.Data.Disclaimer == "" {
		c.Data.Disclaimer = DefaultDisclaimer
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Daemon != nil {
		if c.Daemon.Schedule == "" {
			c.Daemon.Schedule = DefaultSchedule
		}
		if c.Daemon.AdminPort == 0 {
			c.Daemon.AdminPort = DefaultAdminPort
		}
		if c.Daemon.NATS != nil && c.Daemon.NATS.Subject == "" {
			c.Daemon.NATS.Subject = DefaultNATSSubject
		}
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a configuration file and runs the full pipeline:
// env expansion, normalization, defaults, validation.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; missing files are fine.
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Normalization pass (case-fold enumerations) before defaults so
	// canonical values drive default application.
	if nres, nerr := Normalize(&cfg); nerr != nil {
		return nil, fmt.Errorf("normalize: %w", nerr)
	} else if nres != nil {
		for _, w := range nres.Warnings {
			fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site:         "https://indexfonder.se",
		CompressHTML: true,
		Build:        BuildConfig{InlineStylesheets: InlineAuto},
		Data: DataConfig{
			Output:         DefaultDataOutput,
			Sources:        append([]string(nil), defaultSources...),
			RequestTimeout: DefaultRequestTimeout,
			HistoryDB:      "./indexfonder-history.db",
		},
		Daemon: &DaemonConfig{
			Schedule:  DefaultSchedule,
			AdminPort: DefaultAdminPort,
			NATS: &NATSConfig{
				URL:     "nats://localhost:4222",
				Subject: DefaultNATSSubject,
			},
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

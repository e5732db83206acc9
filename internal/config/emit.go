package config

import (
	"encoding/json"
	"fmt"
)

// FrameworkConfig is the exact shape the external site framework reads:
// {site, compressHTML, build: {inlineStylesheets}}.
type FrameworkConfig struct {
	Site         string         `json:"site"`
	CompressHTML bool           `json:"compressHTML"`
	Build        FrameworkBuild `json:"build"`
}

// FrameworkBuild mirrors the framework's nested build section.
type FrameworkBuild struct {
	InlineStylesheets InlinePolicy `json:"inlineStylesheets"`
}

// Framework projects the record onto the framework-facing shape.
func (c *Config) Framework() FrameworkConfig {
	return FrameworkConfig{
		Site:         c.Site,
		CompressHTML: c.CompressHTML,
		Build:        FrameworkBuild{InlineStylesheets: c.Build.InlineStylesheets},
	}
}

// EmitJSON renders the framework-facing configuration as indented JSON.
func (c *Config) EmitJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c.Framework(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal framework config: %w", err)
	}
	return append(data, '\n'), nil
}

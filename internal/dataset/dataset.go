// Package dataset reads and writes the funds.json artifact the site serves.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/laninge/indexfonder-se/internal/funds"
)

// Dataset is the on-disk shape of funds.json.
type Dataset struct {
	Global      []funds.Fund `json:"global"`
	Sweden      []funds.Fund `json:"sweden"`
	LastUpdated string       `json:"lastUpdated"`
	Sources     []string     `json:"sources"`
	Disclaimer  string       `json:"disclaimer"`
}

// New assembles a dataset from a fund collection, stamping the update date.
func New(c *funds.Collection, sources []string, disclaimer string, now time.Time) *Dataset {
	return &Dataset{
		Global:      c.Global,
		Sweden:      c.Sweden,
		LastUpdated: now.Format("2006-01-02"),
		Sources:     sources,
		Disclaimer:  disclaimer,
	}
}

// Write persists the dataset atomically: marshal to a temp file in the
// target directory, then rename over the destination.
func Write(path string, ds *Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".funds-*.json")
	if err != nil {
		return fmt.Errorf("create temp dataset file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp dataset file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp dataset file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace dataset file: %w", err)
	}
	return nil
}

// Read loads an existing dataset file.
func Read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}
	return &ds, nil
}

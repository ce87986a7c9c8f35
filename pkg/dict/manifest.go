// CLAUDE:SUMMARY Manifest YAML schema describing an operator vocabulary: locale, source, CSV layout and phrase normalization.
package dict

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes an operator vocabulary: its locale, source, and how to read it.
type Manifest struct {
	ID       string     `yaml:"id" json:"id"`
	Version  string     `yaml:"version" json:"version"`
	Locale   string     `yaml:"locale" json:"locale"`
	Source   string     `yaml:"source" json:"source"`
	License  string     `yaml:"license" json:"license"`
	DataFile string     `yaml:"data_file" json:"data_file"`
	Format   FormatSpec `yaml:"format" json:"-"`
}

// FormatSpec describes the CSV layout.
type FormatSpec struct {
	Delimiter    string `yaml:"delimiter"`
	Encoding     string `yaml:"encoding"`
	HasHeader    bool   `yaml:"has_header"`
	PhraseColumn string `yaml:"phrase_column"`
	SymbolColumn string `yaml:"symbol_column"`
	Normalize    string `yaml:"normalize"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.Locale == "" {
		return nil, fmt.Errorf("manifest %s: missing locale", path)
	}
	if m.DataFile == "" {
		m.DataFile = "data.csv"
	}
	return &m, nil
}

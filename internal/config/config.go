// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config of the HeartPairs server.
type Config struct {
	Addr        string `yaml:"addr"`        // Address to listen on; empty picks a free port on localhost
	Name        string `yaml:"name"`        // Short application name
	Title       string `yaml:"title"`       // Page title
	Description string `yaml:"description"` // Page description
	WebDir      string `yaml:"web_dir"`     // Directory served under /web/ (app.wasm, css, photos)

	SignatureText   string `yaml:"signature_text"`   // Text drawn on the signature card
	ProposalMessage string `yaml:"proposal_message"` // Message revealed after the last pair
	FooterText      string `yaml:"footer_text"`      // Line shown under the board
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Name:            "HeartPairs",
		Title:           "HeartPairs",
		Description:     "Find all the pairs",
		WebDir:          "web",
		SignatureText:   "HƏBIBƏ",
		ProposalMessage: "Will you be my Valentine?",
		FooterText:      "Match every pair to unlock a surprise",
	}
}

// Load reads the YAML file at filePath over the defaults.
// An empty filePath returns the defaults.
func Load(filePath string) (*Config, error) {
	config := Default()
	if filePath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filePath, err)
	}
	return config, nil
}

// Validate checks the fields that cannot be left empty.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(c.WebDir) == "" {
		return fmt.Errorf("web_dir cannot be empty")
	}
	if strings.TrimSpace(c.SignatureText) == "" {
		return fmt.Errorf("signature_text cannot be empty")
	}
	return nil
}

// Env returns the values passed on to the WASM frontend, read there with app.Getenv.
func (c *Config) Env() map[string]string {
	return map[string]string{
		"SIGNATURE_TEXT":   c.SignatureText,
		"PROPOSAL_MESSAGE": c.ProposalMessage,
		"FOOTER_TEXT":      c.FooterText,
	}
}

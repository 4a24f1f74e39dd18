// Package config loads the scheduler tunables and logging settings that
// cmd/uthreadctl exposes on top of the fiber runtime defaults. Shape and
// load/default/apply-defaults structure mirrors vango's
// cmd/vango/internal/config, swapped from JSON to YAML per the rest of
// this module's ambient stack.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level uthreadctl.yaml shape.
type Config struct {
	// LogLevel is a zerolog level name: trace, debug, info, warn, error,
	// or "disabled" to silence logging entirely. An empty value falls
	// back to "info".
	LogLevel string `yaml:"logLevel,omitempty"`

	// Scenario holds scenario-specific overrides. Each demo scenario
	// reads only the fields it recognizes and ignores the rest.
	Scenario ScenarioConfig `yaml:"scenario,omitempty"`
}

// ScenarioConfig bundles the tunable parameters of the runnable demo
// scenarios. A field left at its zero value in a loaded file falls back
// to the value in DefaultConfig.
type ScenarioConfig struct {
	Printers int `yaml:"printers,omitempty"`

	MailboxProducers int `yaml:"mailboxProducers,omitempty"`
	MailboxConsumers int `yaml:"mailboxConsumers,omitempty"`
	MailboxMessages  int `yaml:"mailboxMessages,omitempty"`

	RecursiveMutexDepth int `yaml:"recursiveMutexDepth,omitempty"`
}

// Load reads and parses the YAML file at path. A missing file is not an
// error: Load returns DefaultConfig() instead, so uthreadctl runs with
// sane defaults out of the box.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// DefaultConfig returns the configuration uthreadctl runs with when no
// config file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Scenario: ScenarioConfig{
			Printers:            10,
			MailboxProducers:    4,
			MailboxConsumers:    2,
			MailboxMessages:     5000,
			RecursiveMutexDepth: 4,
		},
	}
}

// applyDefaults fills in zero-valued fields left unset by a loaded file.
func applyDefaults(c *Config) {
	d := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Scenario.Printers == 0 {
		c.Scenario.Printers = d.Scenario.Printers
	}
	if c.Scenario.MailboxProducers == 0 {
		c.Scenario.MailboxProducers = d.Scenario.MailboxProducers
	}
	if c.Scenario.MailboxConsumers == 0 {
		c.Scenario.MailboxConsumers = d.Scenario.MailboxConsumers
	}
	if c.Scenario.MailboxMessages == 0 {
		c.Scenario.MailboxMessages = d.Scenario.MailboxMessages
	}
	if c.Scenario.RecursiveMutexDepth == 0 {
		c.Scenario.RecursiveMutexDepth = d.Scenario.RecursiveMutexDepth
	}
}

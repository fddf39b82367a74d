// Package config provides configuration loading and management for readiness.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/readiness/proposal"
	"github.com/c360studio/readiness/trl"
)

// Config represents the complete readiness configuration
type Config struct {
	Assessment AssessmentConfig `yaml:"assessment"`
	Proposal   ProposalConfig   `yaml:"proposal"`
	NATS       NATSConfig       `yaml:"nats"`
}

// AssessmentConfig configures assessment gating and cost targets
type AssessmentConfig struct {
	// MinAcceptableTRL is the minimum TRL a topic must reach to pass
	// the gate (default: 4)
	MinAcceptableTRL int `yaml:"min_acceptable_trl"`
	// TargetCost is the default cost target for cost feasibility
	// sections (default: 15.0)
	TargetCost float64 `yaml:"target_cost"`
	// CostUnit is the unit the cost target is expressed in
	// (default: "USD/ft²")
	CostUnit string `yaml:"cost_unit"`
}

// ProposalConfig configures the proposal workspace
type ProposalConfig struct {
	// Path is the proposal workspace root (auto-detected from git if empty)
	Path string `yaml:"path"`
	// Watch configures the section file watcher
	Watch proposal.WatchConfig `yaml:"watch"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = use embedded server)
	URL string `yaml:"url"`
	// Embedded indicates whether to use embedded NATS
	Embedded bool `yaml:"embedded"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Assessment: AssessmentConfig{
			MinAcceptableTRL: 4,
			TargetCost:       15.0,
			CostUnit:         "USD/ft²",
		},
		Proposal: ProposalConfig{
			Path:  "", // Auto-detect
			Watch: proposal.DefaultWatchConfig(),
		},
		NATS: NATSConfig{
			URL:      "",
			Embedded: true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !trl.Valid(c.Assessment.MinAcceptableTRL) {
		return fmt.Errorf("assessment.min_acceptable_trl must be between %d and %d", trl.MinLevel, trl.MaxLevel)
	}
	if c.Assessment.TargetCost <= 0 {
		return fmt.Errorf("assessment.target_cost must be positive")
	}
	if c.Assessment.CostUnit == "" {
		return fmt.Errorf("assessment.cost_unit is required")
	}
	if c.Proposal.Watch.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.Proposal.Watch.DebounceDelay); err != nil {
			return fmt.Errorf("proposal.watch.debounce_delay is not a valid duration: %w", err)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Assessment
	if other.Assessment.MinAcceptableTRL != 0 {
		c.Assessment.MinAcceptableTRL = other.Assessment.MinAcceptableTRL
	}
	if other.Assessment.TargetCost != 0 {
		c.Assessment.TargetCost = other.Assessment.TargetCost
	}
	if other.Assessment.CostUnit != "" {
		c.Assessment.CostUnit = other.Assessment.CostUnit
	}

	// Proposal
	if other.Proposal.Path != "" {
		c.Proposal.Path = other.Proposal.Path
	}
	if other.Proposal.Watch.Enabled {
		c.Proposal.Watch.Enabled = true
	}
	if other.Proposal.Watch.DebounceDelay != "" {
		c.Proposal.Watch.DebounceDelay = other.Proposal.Watch.DebounceDelay
	}
	if len(other.Proposal.Watch.FileExtensions) > 0 {
		c.Proposal.Watch.FileExtensions = other.Proposal.Watch.FileExtensions
	}
	if len(other.Proposal.Watch.ExcludeDirs) > 0 {
		c.Proposal.Watch.ExcludeDirs = other.Proposal.Watch.ExcludeDirs
	}
	if len(other.Proposal.Watch.Patterns) > 0 {
		c.Proposal.Watch.Patterns = other.Proposal.Watch.Patterns
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
		c.NATS.Embedded = false
	}
}

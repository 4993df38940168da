// Package config handles the optional runner configuration file and its
// location resolution.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// DefaultFileNames lists the configuration file names searched in the
// working directory when no explicit path is given.
var DefaultFileNames = []string{
	"conformance.yaml",
	"conformance.yml",
	"conformance.toml",
	"conformance.json",
}

// Config holds the runner defaults that can be set through a configuration
// file. Command-line flags take precedence over every field.
type Config struct {
	Tests       string   `json:"tests,omitempty"`        // corpus root directory
	Tier        string   `json:"tier,omitempty"`         // default parser tier
	Format      string   `json:"format,omitempty"`       // default report format
	LangVersion string   `json:"lang_version,omitempty"` // default language version
	Timeout     string   `json:"timeout,omitempty"`      // per-case adapter timeout, e.g. "10s"
	Jobs        int      `json:"jobs,omitempty"`         // parallel adapter invocations
	AdapterArgs []string `json:"adapter_args,omitempty"` // extra arguments for the adapter
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	if c.Tier != "" {
		if _, err := types.ParseTier(c.Tier); err != nil {
			return err
		}
	}
	if c.Format != "" {
		if _, err := types.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	if c.LangVersion != "" {
		if err := types.ValidateLangVersion(c.LangVersion); err != nil {
			return err
		}
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", c.Timeout, err)
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative")
	}
	return nil
}

// TimeoutDuration returns the configured timeout, or zero if unset.
// Validate must have accepted the configuration first.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Find looks for a configuration file with one of the default names in the
// working directory. Returns an empty string when none exists.
func Find() string {
	for _, name := range DefaultFileNames {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CLI Configuration
// =============================================================================

// AutoSentinel is the config/flag value requesting auto-resolution.
const AutoSentinel = "auto"

// Config holds file-based defaults for the project command. Flags set on the
// command line take precedence over values loaded from the file.
type Config struct {
	// Components is the target dimensionality, or "auto".
	Components string `yaml:"components"`

	// Density is the projection matrix density in (0, 1/3], or "auto".
	Density string `yaml:"density"`

	// Eps is the distortion tolerance for the auto components bound.
	Eps float64 `yaml:"eps"`

	// Seed drives the random matrix draws.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Components: AutoSentinel,
		Density:    AutoSentinel,
		Eps:        0.1,
		Seed:       0,
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

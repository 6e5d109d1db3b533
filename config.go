package gridinterp

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Extrapolation is the point interpolator's policy for targets outside a
// coordinate's range.
type Extrapolation string

const (
	// ExtrapolateLinear extends the end segment of the axis.
	ExtrapolateLinear Extrapolation = "linear"
	// ExtrapolateClip holds the end value.
	ExtrapolateClip Extrapolation = "clip"
	// ExtrapolateError fails the call with ErrOutOfBounds.
	ExtrapolateError Extrapolation = "error"
)

// Valid reports whether e is a recognized policy.
func (e Extrapolation) Valid() bool {
	switch e {
	case ExtrapolateLinear, ExtrapolateClip, ExtrapolateError:
		return true
	}
	return false
}

// Environment variables that override file settings.
const (
	EnvExtrapolation = "GRIDINTERP_EXTRAPOLATION"
	EnvWorkers       = "GRIDINTERP_WORKERS"
	EnvLogLevel      = "GRIDINTERP_LOG_LEVEL"
)

// Config holds the settings shared by every Interpolator operation.
type Config struct {
	// Extrapolation is used by Interpolate, CrossSection and the horizontal
	// step of Remap3D: "linear", "clip" or "error".
	Extrapolation Extrapolation `toml:"extrapolation" yaml:"extrapolation"`

	// Order is the vertical interpolation order passed to the level kernel.
	Order int `toml:"order" yaml:"order"`

	// Workers bounds the goroutines the level kernel uses. <= 1 is sequential.
	Workers int `toml:"workers" yaml:"workers"`

	// LogLevel is read by the command line tool: debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns linear extrapolation, linear order, one worker.
func DefaultConfig() Config {
	return Config{
		Extrapolation: ExtrapolateLinear,
		Order:         LinearOrder,
		Workers:       1,
		LogLevel:      "info",
	}
}

// Validate checks every field and returns the first *ConfigError found.
func (c Config) Validate() error {
	if !c.Extrapolation.Valid() {
		return configErr("extrapolation", c.Extrapolation, "want linear, clip or error")
	}
	if err := validateOrder(c.Order); err != nil {
		return err
	}
	if c.Workers < 0 {
		return configErr("workers", c.Workers, "must not be negative")
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return configErr("log_level", c.LogLevel, "%v", err)
		}
	}
	return nil
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// defaults, applies environment overrides and validates the result.
// An empty path yields the defaults plus environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		default:
			return Config{}, configErr("config", path, "unknown extension, want .toml, .yaml or .yml")
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvExtrapolation); v != "" {
		c.Extrapolation = Extrapolation(strings.ToLower(v))
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return configErr(EnvWorkers, v, "not an integer")
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

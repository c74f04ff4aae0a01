// Package config defines service configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file, then
// ADMITCHECK_ environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/admitcheck/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Formula names the scoring preset, e.g. "aau-2025".
	Formula string `koanf:"formula"`

	// Explicit formula constants. When any is set all four must be set and
	// they replace the preset.
	MatricMax    float64 `koanf:"matric_max"`
	MatricWeight float64 `koanf:"matric_weight"`
	UATMax       float64 `koanf:"uat_max"`
	UATWeight    float64 `koanf:"uat_weight"`

	// Report header lines and footer date layout.
	Institution      string `koanf:"institution"`
	Cycle            string `koanf:"cycle"`
	ReportDateLayout string `koanf:"report_date_layout"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Formula:          scoring.FormulaAAU2025,
		Institution:      "Addis Ababa University",
		Cycle:            "2025/26 Academic Year",
		ReportDateLayout: "1/2/2006",
	}
}

func (c *Config) hasExplicitFormula() bool {
	return c.MatricMax != 0 || c.MatricWeight != 0 || c.UATMax != 0 || c.UATWeight != 0
}

// ScoringFormula resolves the scoring formula the configuration selects.
func (c *Config) ScoringFormula() (scoring.Formula, error) {
	if !c.hasExplicitFormula() {
		f, err := scoring.Preset(c.Formula)
		if err != nil {
			return scoring.Formula{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return f, nil
	}
	name := c.Formula
	if name == "" {
		name = "custom"
	}
	f := scoring.Formula{
		Name:         name,
		MatricMax:    c.MatricMax,
		MatricWeight: c.MatricWeight,
		UATMax:       c.UATMax,
		UATWeight:    c.UATWeight,
	}
	if err := f.Validate(); err != nil {
		return scoring.Formula{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return f, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.ReportDateLayout == "" {
		return fmt.Errorf("%w: report_date_layout must not be empty", ErrInvalidConfig)
	}
	if _, err := c.ScoringFormula(); err != nil {
		return err
	}
	return nil
}

// Package config holds the flat option set that drives the sight engine: range
// sampling, line-of-sight algorithm, footprint scaling and cover classification.
// Options are loaded from YAML so each table can tune its own rules.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/sightline/internal/core/cover"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrUnknownRangeMode = errors.New("unknown range mode")
	ErrInvalidPercent   = errors.New("percent area must be within [0, 1]")
	ErrInvalidScale     = errors.New("boundary scale must be positive")
)

// PointDensity selects how many test points are sampled on a target.
type PointDensity string

const (
	PointsCenter PointDensity = "center"
	PointsFive   PointDensity = "five"
	PointsNine   PointDensity = "nine"
)

// LOSAlgorithm selects how target visibility is decided.
type LOSAlgorithm string

const (
	LOSPoints LOSAlgorithm = "points"
	LOSArea   LOSAlgorithm = "area"
	LOSArea3D LOSAlgorithm = "area3d"
)

// Config holds every engine option
type Config struct {
	Range     RangeConfig     `yaml:"range"`
	LOS       LOSConfig       `yaml:"los"`
	Footprint FootprintConfig `yaml:"footprint"`
	Cover     CoverConfig     `yaml:"cover"`
	Debug     bool            `yaml:"debug"`
}

// RangeConfig defines how range is sampled
type RangeConfig struct {
	Points     PointDensity `yaml:"points"`      // center, five or nine
	Distance3D bool         `yaml:"distance_3d"` // measure range in three dimensions
}

// LOSConfig defines the line-of-sight test
type LOSConfig struct {
	Algorithm   LOSAlgorithm `yaml:"algorithm"`    // points, area or area3d
	PercentArea float64      `yaml:"percent_area"` // required visible fraction for area tests
}

// FootprintConfig defines how target boundaries are scaled before testing
type FootprintConfig struct {
	BoundaryScale float64 `yaml:"boundary_scale"`
}

// CoverConfig defines cover classification
type CoverConfig struct {
	Algorithm    string              `yaml:"algorithm"`
	Triggers     cover.CountTriggers `yaml:"triggers"`
	AreaTriggers cover.AreaTriggers  `yaml:"area_triggers"`
	CenterLevel  cover.Level         `yaml:"center_level"`
}

// DefaultConfig returns the defaults every file is overlaid onto
func DefaultConfig() *Config {
	cs := cover.DefaultSettings()
	return &Config{
		Range: RangeConfig{
			Points:     PointsNine,
			Distance3D: true,
		},
		LOS: LOSConfig{
			Algorithm:   LOSPoints,
			PercentArea: 0,
		},
		Footprint: FootprintConfig{
			BoundaryScale: 1,
		},
		Cover: CoverConfig{
			Algorithm:    string(cs.Algorithm),
			Triggers:     cs.Triggers,
			AreaTriggers: cs.AreaTriggers,
			CenterLevel:  cs.CenterLevel,
		},
	}
}

// LoadConfig loads config from a YAML file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML onto the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate rejects unknown algorithm and range-mode names and out-of-range values.
func (c *Config) Validate() error {
	switch c.Range.Points {
	case PointsCenter, PointsFive, PointsNine:
	default:
		return fmt.Errorf("%w: range.points %q", ErrUnknownRangeMode, c.Range.Points)
	}
	switch c.LOS.Algorithm {
	case LOSPoints, LOSArea, LOSArea3D:
	default:
		return fmt.Errorf("%w: los.algorithm %q", ErrUnknownAlgorithm, c.LOS.Algorithm)
	}
	if c.LOS.PercentArea < 0 || c.LOS.PercentArea > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidPercent, c.LOS.PercentArea)
	}
	if c.Footprint.BoundaryScale <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidScale, c.Footprint.BoundaryScale)
	}
	if _, err := c.CoverSettings(); err != nil {
		if errors.Is(err, cover.ErrUnknownAlgorithm) {
			return fmt.Errorf("%w: cover.algorithm: %w", ErrUnknownAlgorithm, err)
		}
		return fmt.Errorf("cover: %w", err)
	}
	return nil
}

// CoverSettings converts the cover options into validated classifier settings.
func (c *Config) CoverSettings() (cover.Settings, error) {
	return cover.NewSettings(c.Cover.Algorithm, c.Cover.Triggers, c.Cover.AreaTriggers, c.Cover.CenterLevel)
}

// Package cover classifies how much obstruction stands between an observer and a
// target.
package cover

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown cover algorithm")
	ErrUnknownLevel     = errors.New("unknown cover level")
	ErrThresholdOrder   = errors.New("cover thresholds must be non-negative and non-decreasing")
)

// Level is an ordered cover classification.
type Level int

const (
	None Level = iota
	Low
	Medium
	High
	Total
)

var levelNames = [...]string{"none", "low", "medium", "high", "total"}

func (l Level) String() string {
	if l < None || l > Total {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Algorithm names a cover test.
type Algorithm string

const (
	CenterToCenter  Algorithm = "center-to-center"
	CenterToCorners Algorithm = "center-to-corners"
	CornerToCorners Algorithm = "corner-to-corners"
	CenterToCube    Algorithm = "center-to-cube"
	CornerToCube    Algorithm = "corner-to-cube"
	Area            Algorithm = "area"
	Area3D          Algorithm = "area3d"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{CenterToCenter, CenterToCorners, CornerToCorners, CenterToCube, CornerToCube, Area, Area3D}

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == strings.ToLower(s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// UsesArea reports whether the algorithm is driven by a visible-area ratio.
func (a Algorithm) UsesArea() bool { return a == Area || a == Area3D }

// CountTriggers are the blocked-line counts at which each level starts.
type CountTriggers struct {
	Low    int `yaml:"low"`
	Medium int `yaml:"medium"`
	High   int `yaml:"high"`
}

// Level maps a blocked count to a level. Thresholds are inclusive.
func (t CountTriggers) Level(blocked int) Level {
	switch {
	case blocked >= t.High:
		return High
	case blocked >= t.Medium:
		return Medium
	case blocked >= t.Low:
		return Low
	}
	return None
}

func (t CountTriggers) validate() error {
	if t.Low < 0 || t.Medium < t.Low || t.High < t.Medium {
		return fmt.Errorf("%w: %d/%d/%d", ErrThresholdOrder, t.Low, t.Medium, t.High)
	}
	return nil
}

// AreaTriggers are the blocked-area fractions at which each level starts.
type AreaTriggers struct {
	Low    float64 `yaml:"low"`
	Medium float64 `yaml:"medium"`
	High   float64 `yaml:"high"`
}

func (t AreaTriggers) validate() error {
	if t.Low < 0 || t.High > 1 || t.Medium < t.Low || t.High < t.Medium {
		return fmt.Errorf("%w: %g/%g/%g", ErrThresholdOrder, t.Low, t.Medium, t.High)
	}
	return nil
}

// Settings select and parameterize one cover algorithm.
type Settings struct {
	Algorithm    Algorithm
	Triggers     CountTriggers
	AreaTriggers AreaTriggers
	// CenterLevel is the level center-to-center reports when its line is blocked.
	CenterLevel Level
}

// DefaultSettings returns center-to-corners with counts 1/2/3 and area fractions
// 0.5/0.75/1.
func DefaultSettings() Settings {
	return Settings{
		Algorithm:    CenterToCorners,
		Triggers:     CountTriggers{Low: 1, Medium: 2, High: 3},
		AreaTriggers: AreaTriggers{Low: 0.5, Medium: 0.75, High: 1},
		CenterLevel:  High,
	}
}

// NewSettings validates its inputs and returns the corresponding Settings.
func NewSettings(algorithm string, triggers CountTriggers, area AreaTriggers, center Level) (Settings, error) {
	alg, err := ParseAlgorithm(algorithm)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{Algorithm: alg, Triggers: triggers, AreaTriggers: area, CenterLevel: center}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the algorithm name and threshold ordering.
func (s Settings) Validate() error {
	if _, err := ParseAlgorithm(string(s.Algorithm)); err != nil {
		return err
	}
	if s.CenterLevel < None || s.CenterLevel > Total {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, int(s.CenterLevel))
	}
	if err := s.Triggers.validate(); err != nil {
		return fmt.Errorf("triggers: %w", err)
	}
	if err := s.AreaTriggers.validate(); err != nil {
		return fmt.Errorf("area triggers: %w", err)
	}
	return nil
}

package similarity

import "errors"

// Default configuration values.
const (
	DefaultThreshold       = 0.35
	DefaultNgramSize       = 7
	DefaultWinnowingK      = 13
	DefaultWinnowingWindow = 17
	DefaultMinMatchChars   = 24
)

// Threshold clamp bounds shared by both analyzers.
const (
	MinThreshold = 0.05
	MaxThreshold = 0.95
)

// ComparisonConfig holds the knobs of the pairwise similarity estimators.
// Normalized() clamps every field into its valid range; the calculator only
// ever sees normalized configs and never mutates them afterwards.
type ComparisonConfig struct {
	NgramSize       int
	WinnowingK      int
	WinnowingWindow int
	MinMatchChars   int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() ComparisonConfig {
	return ComparisonConfig{
		NgramSize:       DefaultNgramSize,
		WinnowingK:      DefaultWinnowingK,
		WinnowingWindow: DefaultWinnowingWindow,
		MinMatchChars:   DefaultMinMatchChars,
	}
}

// Normalized returns a copy with every field clamped into its valid range.
// Out-of-range values are silently clamped, never rejected.
func (c ComparisonConfig) Normalized() ComparisonConfig {
	return ComparisonConfig{
		NgramSize:       clampInt(c.NgramSize, 3, 16),
		WinnowingK:      clampInt(c.WinnowingK, 5, 64),
		WinnowingWindow: clampInt(c.WinnowingWindow, 4, 128),
		MinMatchChars:   clampInt(c.MinMatchChars, 16, 320),
	}
}

// Validate checks if the configuration is valid.
func (c ComparisonConfig) Validate() error {
	if c.NgramSize <= 0 || c.WinnowingK <= 0 || c.WinnowingWindow <= 0 || c.MinMatchChars <= 0 {
		return errors.New("comparison config fields must be positive")
	}
	return nil
}

// ClampThreshold clamps a decision threshold into [0.05, 0.95].
func ClampThreshold(threshold float64) float64 {
	return clampFloat(threshold, MinThreshold, MaxThreshold)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package engine

import (
	"fmt"
	"time"
)

// Config holds the engine's scoring thresholds. Every value here is a
// tunable default pending confirmation against real business rules, not
// a fixed constant. Zero fields are filled by Finalize.
type Config struct {
	// CompliantBaseline is the risk score assigned to compliant rules.
	CompliantBaseline float64 `toml:"compliant_baseline" json:"compliant_baseline"`
	// ReviewConfidence is the clause confidence floor below which a
	// matched rule is forced to review_required.
	ReviewConfidence float64 `toml:"review_confidence" json:"review_confidence"`
	// Base scores mapped from the dominant matched clause risk level.
	LowBase    float64 `toml:"low_base" json:"low_base"`
	MediumBase float64 `toml:"medium_base" json:"medium_base"`
	HighBase   float64 `toml:"high_base" json:"high_base"`
	// HighRiskSplit divides non_compliant recommendations into high and
	// low priority by rule risk score.
	HighRiskSplit float64 `toml:"high_risk_split" json:"high_risk_split"`
	// TrendDelta is the minimum overall-score movement (in points)
	// counted as improving or worsening against the prior analysis.
	TrendDelta int `toml:"trend_delta" json:"trend_delta"`
	// SparseConfidence is reported when no rule matched any clause.
	SparseConfidence float64 `toml:"sparse_confidence" json:"sparse_confidence"`
	// Category band lower bounds.
	MediumThreshold   int `toml:"medium_threshold" json:"medium_threshold"`
	HighThreshold     int `toml:"high_threshold" json:"high_threshold"`
	CriticalThreshold int `toml:"critical_threshold" json:"critical_threshold"`
	// RetrievalTimeout bounds the clause retrieval collaborator call.
	RetrievalTimeout string `toml:"retrieval_timeout" json:"retrieval_timeout"`
}

// DefaultConfig returns a Config with every threshold at its default.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.loadDefaults()
	return cfg
}

// RetrievalTimeoutDuration returns RetrievalTimeout as a time.Duration.
func (c *Config) RetrievalTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetrievalTimeout)
	return d
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.CompliantBaseline != 0 {
		c.CompliantBaseline = overlay.CompliantBaseline
	}
	if overlay.ReviewConfidence != 0 {
		c.ReviewConfidence = overlay.ReviewConfidence
	}
	if overlay.LowBase != 0 {
		c.LowBase = overlay.LowBase
	}
	if overlay.MediumBase != 0 {
		c.MediumBase = overlay.MediumBase
	}
	if overlay.HighBase != 0 {
		c.HighBase = overlay.HighBase
	}
	if overlay.HighRiskSplit != 0 {
		c.HighRiskSplit = overlay.HighRiskSplit
	}
	if overlay.TrendDelta != 0 {
		c.TrendDelta = overlay.TrendDelta
	}
	if overlay.SparseConfidence != 0 {
		c.SparseConfidence = overlay.SparseConfidence
	}
	if overlay.MediumThreshold != 0 {
		c.MediumThreshold = overlay.MediumThreshold
	}
	if overlay.HighThreshold != 0 {
		c.HighThreshold = overlay.HighThreshold
	}
	if overlay.CriticalThreshold != 0 {
		c.CriticalThreshold = overlay.CriticalThreshold
	}
	if overlay.RetrievalTimeout != "" {
		c.RetrievalTimeout = overlay.RetrievalTimeout
	}
}

// Finalize applies defaults and validates the resulting thresholds.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

func (c *Config) loadDefaults() {
	if c.CompliantBaseline == 0 {
		c.CompliantBaseline = 10
	}
	if c.ReviewConfidence == 0 {
		c.ReviewConfidence = 0.6
	}
	if c.LowBase == 0 {
		c.LowBase = 20
	}
	if c.MediumBase == 0 {
		c.MediumBase = 50
	}
	if c.HighBase == 0 {
		c.HighBase = 85
	}
	if c.HighRiskSplit == 0 {
		c.HighRiskSplit = 70
	}
	if c.TrendDelta == 0 {
		c.TrendDelta = 5
	}
	if c.SparseConfidence == 0 {
		c.SparseConfidence = 0.3
	}
	if c.MediumThreshold == 0 {
		c.MediumThreshold = 30
	}
	if c.HighThreshold == 0 {
		c.HighThreshold = 60
	}
	if c.CriticalThreshold == 0 {
		c.CriticalThreshold = 85
	}
	if c.RetrievalTimeout == "" {
		c.RetrievalTimeout = "30s"
	}
}

func (c *Config) validate() error {
	if c.ReviewConfidence < 0 || c.ReviewConfidence > 1 {
		return fmt.Errorf("review_confidence must be within [0,1]: %v", c.ReviewConfidence)
	}
	if c.SparseConfidence < 0 || c.SparseConfidence > 1 {
		return fmt.Errorf("sparse_confidence must be within [0,1]: %v", c.SparseConfidence)
	}
	if !(c.MediumThreshold < c.HighThreshold && c.HighThreshold < c.CriticalThreshold) {
		return fmt.Errorf(
			"category thresholds must ascend: %d, %d, %d",
			c.MediumThreshold, c.HighThreshold, c.CriticalThreshold,
		)
	}
	if c.TrendDelta < 1 {
		return fmt.Errorf("trend_delta must be positive: %d", c.TrendDelta)
	}
	if _, err := time.ParseDuration(c.RetrievalTimeout); err != nil {
		return fmt.Errorf("invalid retrieval_timeout: %w", err)
	}
	return nil
}

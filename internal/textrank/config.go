package textrank

import "math"

// Defaults for Config fields.
const (
	DefaultNumSentences      = 3
	DefaultMinSentenceLength = 10
	DefaultDamping           = 0.85
	DefaultMaxIter           = 100
	DefaultTolerance         = 1e-6
)

// Config enumerates every option the summarizer recognizes. The zero value
// is usable: Normalize fills unset fields with their defaults.
type Config struct {
	// NumSentences is the number of sentences to select when Ratio is unset.
	// Zero means the default (3); negative values are clamped to 1.
	NumSentences int `yaml:"numSentences" json:"numSentences"`
	// Ratio, when in (0,1), selects round(N*Ratio) sentences (at least one)
	// and overrides NumSentences. Any other value means unset.
	Ratio float64 `yaml:"ratio" json:"ratio"`
	// MinSentenceLength drops sentences shorter than this many characters.
	// Zero means the default (10); negative values disable the filter.
	MinSentenceLength int `yaml:"minSentenceLength" json:"minSentenceLength"`
	// SimilarityThreshold zeroes similarity edges below it. Zero keeps all.
	SimilarityThreshold float64 `yaml:"similarityThreshold" json:"similarityThreshold"`
	// Damping is the share of score mass moved along graph edges per
	// iteration. Values <= 0 mean the default (0.85); values > 1 clamp to 1.
	Damping float64 `yaml:"damping" json:"damping"`
	// MaxIter caps solver iterations. Values <= 0 mean the default (100).
	MaxIter int `yaml:"maxIter" json:"maxIter"`
	// Tolerance is the L1 delta below which the solver stops early.
	// Values <= 0 mean the default (1e-6).
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
}

// DefaultConfig returns the configuration with every default applied.
func DefaultConfig() Config {
	return Config{
		NumSentences:      DefaultNumSentences,
		MinSentenceLength: DefaultMinSentenceLength,
		Damping:           DefaultDamping,
		MaxIter:           DefaultMaxIter,
		Tolerance:         DefaultTolerance,
	}
}

// Normalize returns a copy of c with defaults applied and every numeric field
// clamped into its valid range. It never fails.
func (c Config) Normalize() Config {
	switch {
	case c.NumSentences == 0:
		c.NumSentences = DefaultNumSentences
	case c.NumSentences < 0:
		c.NumSentences = 1
	}
	if !c.HasRatio() {
		c.Ratio = 0
	}
	switch {
	case c.MinSentenceLength == 0:
		c.MinSentenceLength = DefaultMinSentenceLength
	case c.MinSentenceLength < 0:
		c.MinSentenceLength = 0
	}
	if c.SimilarityThreshold < 0 || math.IsNaN(c.SimilarityThreshold) {
		c.SimilarityThreshold = 0
	}
	switch {
	case c.Damping <= 0 || math.IsNaN(c.Damping):
		c.Damping = DefaultDamping
	case c.Damping > 1:
		c.Damping = 1
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// HasRatio reports whether Ratio is set to a usable fraction.
func (c Config) HasRatio() bool {
	return c.Ratio > 0 && c.Ratio < 1
}

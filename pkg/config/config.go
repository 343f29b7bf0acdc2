// Package config implements the protocol's long-term run configuration and
// its JSON storage format, in the style of the teacher's
// protocols/lss/config package.
package config

import (
	"fmt"
)

// Config is the configuration shared by all three parties for a protocol
// run: the field modulus, the number of contributors, the dimensionality
// of each contributor's feature vector, and the differential-privacy
// budget.
type Config struct {
	// FieldModulus is the prime the protocol's arithmetic is performed
	// modulo. The default recommended by the protocol is 2^64-59.
	FieldModulus uint64

	// NumContributors is the number of users submitting data this run.
	NumContributors int

	// FeatureDim is the number of field elements each contributor submits.
	FeatureDim int

	// Epsilon is the differential-privacy budget.
	Epsilon float64

	// Delta is the differential-privacy failure probability.
	Delta float64

	// NoiseScale scales the discrete Laplace noise before dividing by
	// Epsilon, the same noise_scale/epsilon construction the original
	// toy protocol used.
	NoiseScale float64
}

// Default returns the protocol's recommended configuration: modulus
// 2^64-59, matching the original toy implementation's default field.
func Default() Config {
	return Config{
		FieldModulus:    0xFFFFFFFFFFFFFFC5, // 2^64 - 59
		NumContributors: 1000,
		FeatureDim:      2,
		Epsilon:         1.0,
		Delta:           1e-5,
		NoiseScale:      1.0,
	}
}

// Validate checks that the configuration is well-formed before any party
// is constructed from it.
func (c Config) Validate() error {
	if c.FieldModulus < 2 {
		return fmt.Errorf("config: field modulus must be >= 2")
	}
	if c.NumContributors < 2 {
		return fmt.Errorf("config: num contributors must be >= 2")
	}
	if c.FeatureDim < 1 {
		return fmt.Errorf("config: feature dim must be >= 1")
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("config: epsilon must be > 0")
	}
	if c.Delta < 0 || c.Delta >= 1 {
		return fmt.Errorf("config: delta must be in [0, 1)")
	}
	if c.NoiseScale <= 0 {
		return fmt.Errorf("config: noise scale must be > 0")
	}
	return nil
}

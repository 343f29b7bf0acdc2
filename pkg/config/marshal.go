package config

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// configJSON is the wire representation of a Config. FieldModulus is
// encoded as a hex string rather than a JSON number so that values near
// 2^64 (the protocol's recommended modulus is 2^64-59) survive a round
// trip through decoders that widen JSON numbers to float64, the same
// concern that makes the teacher's config marshal ECDSA shares and chain
// keys as base64 strings instead of raw JSON arrays.
type configJSON struct {
	FieldModulus    string  `json:"field_modulus"`
	NumContributors int     `json:"num_contributors"`
	FeatureDim      int     `json:"feature_dim"`
	Epsilon         float64 `json:"epsilon"`
	Delta           float64 `json:"delta"`
	NoiseScale      float64 `json:"noise_scale"`
}

// MarshalJSON implements json.Marshaler.
func (c Config) MarshalJSON() ([]byte, error) {
	out := configJSON{
		FieldModulus:    "0x" + strconv.FormatUint(c.FieldModulus, 16),
		NumContributors: c.NumContributors,
		FeatureDim:      c.FeatureDim,
		Epsilon:         c.Epsilon,
		Delta:           c.Delta,
		NoiseScale:      c.NoiseScale,
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Config) UnmarshalJSON(data []byte) error {
	var in configJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	modulus, err := strconv.ParseUint(trimHexPrefix(in.FieldModulus), 16, 64)
	if err != nil {
		return fmt.Errorf("config: failed to decode field_modulus: %w", err)
	}

	c.FieldModulus = modulus
	c.NumContributors = in.NumContributors
	c.FeatureDim = in.FeatureDim
	c.Epsilon = in.Epsilon
	c.Delta = in.Delta
	c.NoiseScale = in.NoiseScale
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threeparty/shuffledp/pkg/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFC5), cfg.FieldModulus)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *config.Config)
		expectErr bool
	}{
		{"valid", func(c *config.Config) {}, false},
		{"modulus too small", func(c *config.Config) { c.FieldModulus = 1 }, true},
		{"zero contributors", func(c *config.Config) { c.NumContributors = 0 }, true},
		{"single contributor", func(c *config.Config) { c.NumContributors = 1 }, true},
		{"zero feature dim", func(c *config.Config) { c.FeatureDim = 0 }, true},
		{"non-positive epsilon", func(c *config.Config) { c.Epsilon = 0 }, true},
		{"delta out of range", func(c *config.Config) { c.Delta = 1 }, true},
		{"non-positive noise scale", func(c *config.Config) { c.NoiseScale = -1 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, cfg, got)
}

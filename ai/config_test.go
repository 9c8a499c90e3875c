package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cfg.EmbeddingHost, cfg.ReasonerHost)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithReasonerModel("gpt-4o-mini"),
		WithToken("sk-test"),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:9100/v1", cfg.ReasonerHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ReasonerModel)
	assert.Equal(t, "sk-test", cfg.Token)
}

func TestNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("keeps existing v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("fills empty token", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Token = ""
		cfg.Normalize()
		assert.Equal(t, "none", cfg.Token)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing reasoner host", func(c *Config) { c.ReasonerHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing reasoner model", func(c *Config) { c.ReasonerModel = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

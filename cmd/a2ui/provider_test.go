package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no keys anywhere", func(t *testing.T) {
		t.Parallel()
		_, err := resolveProvider(ctx, "", "", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no API key found")
	})

	t.Run("ambiguous env keys", func(t *testing.T) {
		t.Parallel()
		_, err := resolveProvider(ctx, "", "", "gk-123", "sk-456")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple API keys")
	})

	t.Run("unknown provider name", func(t *testing.T) {
		t.Parallel()
		_, err := resolveProvider(ctx, "anthropic", "key", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})

	t.Run("provider flag without any key", func(t *testing.T) {
		t.Parallel()
		_, err := resolveProvider(ctx, "openai", "", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY not set")
	})

	t.Run("openai from env key", func(t *testing.T) {
		t.Parallel()
		p, err := resolveProvider(ctx, "", "", "", "sk-456")
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("api key flag overrides env", func(t *testing.T) {
		t.Parallel()
		p, err := resolveProvider(ctx, "openai", "sk-flag", "", "sk-env")
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

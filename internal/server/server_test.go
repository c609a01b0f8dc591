package server

import (
	"testing"

	"docweaver/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg, err := config.LoadConfig("does-not-exist.json")
	require.NoError(t, err)
	cfg.CacheDisabled = true

	s, cleanup := New(cfg)
	require.NotNil(t, s)
	require.NotNil(t, cleanup)

	// Cleanup is safe to call even when the fetch engine was never created.
	assert.NotPanics(t, cleanup)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, 2, cfg.DefaultDepth)
	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
	assert.Equal(t, 24, cfg.CacheTTLHours)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.UserAgent)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docweaver.json")
	payload := `{"max_pages": 10, "default_depth": 3, "log_level": "debug", "cache_disabled": true}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MaxPages)
	assert.Equal(t, 3, cfg.DefaultDepth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.CacheDisabled)
	// Unset fields still get defaults.
	assert.Equal(t, 15000, cfg.RequestTimeoutMs)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"timeout too small", `{"request_timeout_ms": 5}`},
		{"max_pages above hard ceiling", `{"max_pages": 100}`},
		{"max_pages negative", `{"max_pages": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "docweaver.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.payload), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docweaver.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_pages": `), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

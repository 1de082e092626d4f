package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIKey, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.ActiveProfile)
	assert.False(t, cfg.IsValid(), "default profile has no credential")
	assert.Equal(t, "gpt-4o-mini", cfg.GetModel())

	_, err = os.Stat(filepath.Join(home, ".opsdeck", "config.json"))
	assert.NoError(t, err, "default config file should be written")
}

func TestEnvOverridesAPIKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsValid())
	assert.Equal(t, "env-key", cfg.GetAPIKey())
}

func TestLoadConfigReadsProfiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIKey, "")

	dir := filepath.Join(home, ".opsdeck")
	require.NoError(t, os.MkdirAll(dir, 0755))
	raw := `{
		"profiles": {
			"work": {"api_key": "work-key", "base_url": "https://llm.example.com/v1", "model": "gpt-4o"}
		},
		"active_profile": "work",
		"log_level": "debug"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsValid())
	assert.Equal(t, "work-key", cfg.GetAPIKey())
	assert.Equal(t, "https://llm.example.com/v1", cfg.GetBaseURL())
	assert.Equal(t, "gpt-4o", cfg.GetModel())
	assert.Equal(t, "debug", cfg.GetLogLevel())
}

func TestMissingActiveProfileFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIKey, "")

	dir := filepath.Join(home, ".opsdeck")
	require.NoError(t, os.MkdirAll(dir, 0755))
	raw := `{
		"profiles": {
			"only": {"api_key": "k", "model": "gpt-4o-mini"}
		},
		"active_profile": "gone"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "only", cfg.ActiveProfile)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIKey, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.Profiles["staging"] = Profile{APIKey: "sk", Model: "gpt-4o"}
	cfg.ActiveProfile = "staging"
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", reloaded.ActiveProfile)
	assert.Equal(t, "sk", reloaded.GetAPIKey())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 35, cfg.DetectionConfig.LookaheadWindow)
	assert.Equal(t, "/idontexist", cfg.DetectionConfig.ErrorPagePath)
	assert.Equal(t, "/typo3/index.php", cfg.DetectionConfig.LoginPath)
	assert.Equal(t, DefaultHTTPTimeoutSecs, cfg.HTTPClientConfig.TimeoutSecs)
	assert.False(t, cfg.TunnelConfig.Enabled)
	assert.Equal(t, "http://127.0.0.1:8118", cfg.TunnelConfig.ProxyURL())
	assert.Equal(t, []string{"tor", "privoxy"}, cfg.TunnelConfig.Services)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"detection_config": {
			"lookahead_window": 50
		},
		"log_config": {
			"log_level": "debug"
		},
		"http_client_config": {
			"user_agent": "test-agent"
		}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.DetectionConfig.LookaheadWindow)
	assert.Equal(t, "/typo3/index.php", cfg.DetectionConfig.LoginPath)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "test-agent", cfg.HTTPClientConfig.UserAgent)
	assert.Equal(t, DefaultHTTPTimeoutSecs, cfg.HTTPClientConfig.TimeoutSecs)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
tunnel_config:
  enabled: true
  port: 9050
reporter_config:
  no_color: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.True(t, cfg.TunnelConfig.Enabled)
	assert.Equal(t, 9050, cfg.TunnelConfig.Port)
	assert.Equal(t, DefaultTunnelCheckURL, cfg.TunnelConfig.CheckURL)
	assert.True(t, cfg.ReporterConfig.NoColor)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("detection_config: [unterminated"), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config content")
}

func TestGetConfigPath_Env(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "from-env.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}"), 0644))
	t.Setenv(ConfigPathEnv, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))
}

func TestGetConfigPath_FlagWins(t *testing.T) {
	dir := t.TempDir()
	flagFile := filepath.Join(dir, "flag.yaml")
	envFile := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(flagFile, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(envFile, []byte("{}"), 0644))
	t.Setenv(ConfigPathEnv, envFile)

	assert.Equal(t, flagFile, GetConfigPath(flagFile))
}

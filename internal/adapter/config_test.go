package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: http://localhost:9999/api/
  timeout: 2s
home:
  letter: M
  prefetch: 5
favorites:
  dir: /tmp/barcart-favs
ui:
  default_tab: categories
viewer:
  command: imv
  args: ["-f"]
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/", cfg.Catalog.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "m", cfg.Home.Letter)
	assert.Equal(t, 5, cfg.Home.Prefetch)
	assert.Equal(t, "/tmp/barcart-favs", cfg.Favorites.Dir)
	assert.Equal(t, "categories", cfg.UI.DefaultTab)
	assert.Equal(t, ViewerConfig{Command: "imv", Args: []string{"-f"}}, cfg.Viewer)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultConfig().Logging.File, cfg.Logging.File)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, "home:\n  letter: b\n")
	t.Setenv("BARCART_CATALOG_BASE_URL", "http://env.test/")
	t.Setenv("BARCART_HOME_LETTER", "z")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env.test/", cfg.Catalog.BaseURL)
	assert.Equal(t, "z", cfg.Home.Letter)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"letter": "home:\n  letter: ab\n",
		"tab":    "ui:\n  default_tab: settings\n",
		"yaml":   "catalog: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_DefaultTabSpellings(t *testing.T) {
	tests := map[string]string{
		"Favorites":    "favorites",
		" favourites ": "favorites",
		"CATEGORY":     "categories",
		"Home":         "home",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, "ui:\n  default_tab: \""+in+"\"\n"))
			require.NoError(t, err)
			assert.Equal(t, want, cfg.UI.DefaultTab)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Catalog.Timeout = 3 * time.Second
	cfg.Home.Letter = "q"
	cfg.Favorites.Dir = "/data/favs"
	cfg.Viewer = ViewerConfig{Command: "feh", Args: []string{"--scale-down"}}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "ERROR", parseLogLevel("ERROR").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "barcart.log")

	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", "letter", "a")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"visible"`)
	assert.Contains(t, string(data), `"letter":"a"`)
	assert.NotContains(t, string(data), "hidden")
}

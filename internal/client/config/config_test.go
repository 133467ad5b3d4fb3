package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.VerificationPollInterval)
	assert.Equal(t, 2*time.Second, c.GuardCooldown)
	assert.Equal(t, time.Minute, c.CountdownInterval)
	assert.Equal(t, "text", c.LogFormat)
	assert.Empty(t, c.WeatherAPIKey)
	assert.NotEmpty(t, c.DataDir)
}

func TestPaths(t *testing.T) {
	c := Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "client.db"), c.DatabasePath())
	assert.Equal(t, filepath.Join("/data", "photos"), c.PhotosDir())
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr": "json:1",
		"data_dir":             "/json",
		"log_level":            "info",
	})
	t.Setenv("COUPLEDIARIES_CLIENT_DATA_DIR", "/env")
	t.Setenv("COUPLEDIARIES_CLIENT_LOG_LEVEL", "error")
	os.Args = []string{"cmd", "-c", path, "-l", "debug"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "json:1", cfg.ServerEndpointAddr)
	assert.Equal(t, "/env", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

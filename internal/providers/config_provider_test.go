package providers

import (
	"livevote/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, deviceID string) string {
	t.Helper()
	content := `webServer:
  host: 127.0.0.1
  port: 18090
backend:
  baseUrl: http://localhost:3000/
  timeout: 3s
client:
  deviceId: "` + deviceID + `"
storage:
  driver: sqlite
  dir: ` + filepath.Join(dir, "data") + `
export:
  dir: ` + filepath.Join(dir, "exports") + `
logger:
  level: info
  mode: 420
  dir: ` + filepath.Join(dir, "logs") + `
cache:
  enabled: true
  size: 4
  ttl: 1m
`
	path := filepath.Join(dir, "livevote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigProvider_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "device-7")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "LiveVote", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, 18090, conf.WebServer.Port)
	assert.Equal(t, "http://localhost:3000", conf.Backend.BaseURL)
	assert.Equal(t, "http://localhost:3000/api/events", conf.EventsEndpoint())
	assert.Equal(t, 3*time.Second, conf.Backend.Timeout)
	assert.Equal(t, time.Minute, conf.Backend.ResyncInterval)
	assert.Equal(t, "device-7", conf.Client.DeviceID)
	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, time.Minute, conf.Cache.TTL)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "device-7")
	t.Setenv("LIVEVOTE_BACKEND_URL", "https://votes.example.com")
	t.Setenv("LIVEVOTE_ADMIN", "true")
	t.Setenv("LIVEVOTE_STORAGE_DRIVER", "file")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "https://votes.example.com", conf.Backend.BaseURL)
	assert.True(t, conf.Client.Admin)
	assert.Equal(t, "file", conf.Storage.Driver)
}

func TestNewConfigProvider_RejectsPathLikeDeviceID(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "device-7")
	t.Setenv("LIVEVOTE_DEVICE_ID", "../outside")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "outside"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewConfigProvider_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "device-7")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIVEVOTE_DEVICE_ID=from-env-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("LIVEVOTE_DEVICE_ID") })

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", conf.Client.DeviceID)
}

func TestNewConfigProvider_MissingEnvFileIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "device-7")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, EnvFile: filepath.Join(dir, "nope.env")})
	assert.NoError(t, err)
}

func TestNewConfigProvider_GeneratesStableDeviceID(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	first, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	require.NotEmpty(t, first.Client.DeviceID)

	stored, err := os.ReadFile(filepath.Join(dir, "data", deviceIDFile))
	require.NoError(t, err)
	assert.Equal(t, first.Client.DeviceID, strings.TrimSpace(string(stored)))

	second, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, first.Client.DeviceID, second.Client.DeviceID)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webServer:\n  host: 127.0.0.1\n"), 0644))

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

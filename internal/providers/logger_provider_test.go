package providers

import (
	"livevote/internal/structures"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Mutating(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("DELETE"))
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("HEAD"))
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "sync", TypeSync.String())
	assert.Equal(t, "vote", TypeVote.String())
	assert.Equal(t, "app", TypeEnum(99).String())
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Infof(TypeVote, "vote %d", 3)

	for _, name := range []string{"app", "get", "post", "sync", "vote"} {
		_, err := os.Stat(filepath.Join(dir, name+".log"))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vote.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "vote 3")
}

func TestNewLogProvider_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: dir},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Close()

	_, err = os.Stat(filepath.Join(dir, "app.log"))
	assert.NoError(t, err)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(blocker, "logs"),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "loud",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

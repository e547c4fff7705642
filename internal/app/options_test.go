package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mentions/internal/config"
	"github.com/dshills/mentions/internal/logging"
)

func TestResolveConfig(t *testing.T) {
	path := writeConfig(t, usersConfig+"min_chars = 1\n")

	cfg, err := ResolveConfig(Options{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "@", cfg.Mention.Trigger)
	assert.Equal(t, 1, cfg.Mention.MinChars)

	two := 2
	cfg, err = ResolveConfig(Options{
		ConfigPath: path,
		Trigger:    "#",
		MinChars:   &two,
		LogLevel:   "debug",
		ScriptPath: "hooks.lua",
	})
	require.NoError(t, err)
	assert.Equal(t, "#", cfg.Mention.Trigger)
	assert.Equal(t, 2, cfg.Mention.MinChars)
	assert.Equal(t, logging.LogLevelDebug, cfg.LogLevel())
	assert.Equal(t, "hooks.lua", cfg.Script.Path)
	assert.Equal(t, []string{"alice", "alan", "bob"}, cfg.Users)
}

func TestResolveConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := ResolveConfig(Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml")})
	require.NoError(t, err)
	assert.Equal(t, config.Default().Mention, cfg.Mention)
}

func TestResolveConfig_InvalidOverride(t *testing.T) {
	_, err := ResolveConfig(Options{ConfigPath: writeConfig(t, ""), Trigger: "ab"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	negative := -1
	_, err = ResolveConfig(Options{ConfigPath: writeConfig(t, ""), MinChars: &negative})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()

	logger, closer, err := NewLogger(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, closer)
	logger.Error("dropped")

	var buf bytes.Buffer
	logger, closer, err = NewLogger(cfg, &buf)
	require.NoError(t, err)
	assert.Nil(t, closer)
	logger.Debug("below level")
	logger.Info("hello %s", "there")
	assert.NotContains(t, buf.String(), "below level")
	assert.Contains(t, buf.String(), "hello there")

	cfg.Log.File = filepath.Join(t.TempDir(), "mentions.log")
	logger, closer, err = NewLogger(cfg, &buf)
	require.NoError(t, err)
	require.NotNil(t, closer)
	logger.Warn("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	cfg.Log.File = filepath.Join(t.TempDir(), "missing", "dir", "x.log")
	_, _, err = NewLogger(cfg, nil)
	assert.Error(t, err)
}

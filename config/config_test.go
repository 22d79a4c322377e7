package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:3000", cfg.Address())
	assert.Equal(t, "Anon.", cfg.GetString(ConfigPlayerName))
	assert.Equal(t, 4, cfg.GetInt(ConfigThreads))
	assert.Equal(t, []int{6, 9, 10}, cfg.Ladder())
	assert.Equal(t, 10*time.Millisecond, cfg.GetDuration(ConfigPollInterval))
	assert.Equal(t, 41, cfg.GetInt(ConfigBookThreshold))
	assert.Equal(t, 25, cfg.GetInt(ConfigLadderThreshold))
	assert.Equal(t, 10, cfg.GetInt(ConfigFixedDepth))

	loaded := &Config{}
	require.NoError(t, loaded.Load(nil))
	assert.Equal(t, cfg.Address(), loaded.Address())
	assert.Equal(t, cfg.Ladder(), loaded.Ladder())
	assert.Equal(t, 900*time.Millisecond, loaded.GetDuration(ConfigReservePerPly))
}

func TestFlags(t *testing.T) {
	cfg := &Config{}
	err := cfg.Load([]string{"-H", "game.example", "-p", "4000", "-n", "bitboard",
		"-v", "--ladder", "4,8", "--threads", "2", "--poll-interval", "5ms"})
	require.NoError(t, err)
	assert.Equal(t, "game.example:4000", cfg.Address())
	assert.Equal(t, "bitboard", cfg.GetString(ConfigPlayerName))
	assert.True(t, cfg.GetBool(ConfigVerbose))
	assert.Equal(t, []int{4, 8}, cfg.Ladder())
	assert.Equal(t, 2, cfg.GetInt(ConfigThreads))
	assert.Equal(t, 5*time.Millisecond, cfg.GetDuration(ConfigPollInterval))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("OTHELLO_PLAYER_NAME", "from-env")
	t.Setenv("OTHELLO_PORT", "5000")
	cfg := &Config{}
	require.NoError(t, cfg.Load([]string{"--port", "6000"}))
	assert.Equal(t, "from-env", cfg.GetString(ConfigPlayerName))
	// flags win over the environment.
	assert.Equal(t, 6000, cfg.GetInt(ConfigPort))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "othello.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: file.example\nfixed-depth: 8\n"), 0o644))
	cfg := &Config{}
	require.NoError(t, cfg.Load([]string{"--config", path}))
	assert.Equal(t, "file.example", cfg.GetString(ConfigHost))
	assert.Equal(t, 8, cfg.GetInt(ConfigFixedDepth))

	require.Error(t, cfg.Load([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}))
}

func TestValidation(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Load([]string{"--threads", "0"}))
	assert.Error(t, cfg.Load([]string{"--port", "70000"}))
	assert.Error(t, cfg.Load([]string{"--ladder", "3,0"}))
	assert.Error(t, cfg.Load([]string{"--no-such-flag"}))
}

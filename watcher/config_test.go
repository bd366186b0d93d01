package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
rpc:
  endpoint: http://localhost:30333
contract: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
`))
		require.NoError(t, err)
		require.Equal(t, "http://localhost:30333", cfg.RPC.Endpoint)
		require.Equal(t, DefaultDialTimeout, cfg.RPC.DialTimeout)
		require.Equal(t, DefaultRequestTimeout, cfg.RPC.RequestTimeout)
		require.Equal(t, DefaultPollInterval, cfg.Poll)
		require.Equal(t, DefaultCheckpointPath, cfg.Checkpoint)
		require.Equal(t, DefaultLogLevel, cfg.Logger.Level)
		require.Empty(t, cfg.Metrics.Address)
	})

	t.Run("full", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
rpc:
  endpoint: ws://localhost:30333/ws
  dial_timeout: 1s
  request_timeout: 2m
contract: 0x1b4012d2eb1c7fe1a0b40c4e8a4b8de5d6c5b8f1
poll_interval: 250ms
start_height: 100
checkpoint: /var/lib/watcher
metrics:
  address: ":9090"
logger:
  level: debug
`))
		require.NoError(t, err)
		require.Equal(t, time.Second, cfg.RPC.DialTimeout)
		require.Equal(t, 2*time.Minute, cfg.RPC.RequestTimeout)
		require.Equal(t, 250*time.Millisecond, cfg.Poll)
		require.EqualValues(t, 100, cfg.Start)
		require.Equal(t, "/var/lib/watcher", cfg.Checkpoint)
		require.Equal(t, ":9090", cfg.Metrics.Address)
		require.Equal(t, "debug", cfg.Logger.Level)
	})

	t.Run("invalid", func(t *testing.T) {
		for name, data := range map[string]string{
			"no endpoint": "contract: x",
			"no contract": "rpc: {endpoint: http://localhost}",
			"zero poll":   "rpc: {endpoint: http://localhost}\ncontract: x\npoll_interval: 0s",
			"bad yaml":    "rpc: [",
		} {
			_, err := LoadConfig(writeConfig(t, data))
			require.Error(t, err, name)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/config"
	"github.com/tessellated-io/blobtx/log"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	network, err := cfg.ResolveNetwork()
	require.NoError(t, err)
	require.Equal(t, "mocha-4", network.ChainID)

	gasAdjustment, err := cfg.GasAdjustmentDec()
	require.NoError(t, err)
	require.Equal(t, "1.200000000000000000", gasAdjustment.String())
}

func TestConfig_WriteAndLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Network = "devnet"
	cfg.GasPrice = "0.05"
	cfg.Networks = []chains.Network{
		{
			ChainName:     "devnet",
			ChainID:       "devnet-1",
			AccountPrefix: "celestia",
			RestUrl:       "http://localhost:1317",
			NativeToken:   "utia",
		},
	}

	written, err := cfg.Write(file, log.Discard())
	require.NoError(t, err)
	require.True(t, written)

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(contents), "# blobtx configuration\n"))
	require.Contains(t, string(contents), "# Multiplier applied to simulated gas\ngas_adjustment:")

	loaded, err := config.Load(file)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	network, err := loaded.ResolveNetwork()
	require.NoError(t, err)
	require.Equal(t, "devnet-1", network.ChainID)

	opts, err := loaded.SubmitterOptions()
	require.NoError(t, err)
	require.Len(t, opts, 4)

	// Existing files are left alone.
	written, err = cfg.Write(file, log.Discard())
	require.NoError(t, err)
	require.False(t, written)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("network: celestia\n"), 0o644))

	loaded, err := config.Load(file)
	require.NoError(t, err)
	require.Equal(t, "celestia", loaded.Network)
	require.Equal(t, "info", loaded.LogLevel)
	require.Equal(t, uint(1), loaded.Node.Attempts)
}

func TestLoad_UnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("netwrk: celestia\n"), 0o644))

	_, err := config.Load(file)
	require.Error(t, err)
}

func TestLoad_ZeroPollAttempts(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("node:\n  poll_attempts: 0\n"), 0o644))

	_, err := config.Load(file)
	require.ErrorContains(t, err, "poll attempts")
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"no network", func(c *config.Config) { c.Network = "" }},
		{"gas adjustment", func(c *config.Config) { c.GasAdjustment = "lots" }},
		{"gas adjustment below one", func(c *config.Config) { c.GasAdjustment = "0.9" }},
		{"gas price", func(c *config.Config) { c.GasPrice = "cheap" }},
		{"negative gas price", func(c *config.Config) { c.GasPrice = "-1" }},
		{"transport", func(c *config.Config) { c.Node.Transport = "ws" }},
		{"attempts", func(c *config.Config) { c.Node.Attempts = 0 }},
		{"poll attempts", func(c *config.Config) { c.Node.PollAttempts = 0 }},
		{"network", func(c *config.Config) { c.Networks = []chains.Network{{ChainName: "broken"}} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestExpandHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := config.ExpandHomeDir("~/.blobtx/config.yaml")
	require.NoError(t, err)
	require.Equal(t, home+"/.blobtx/config.yaml", expanded)

	unchanged, err := config.ExpandHomeDir("/etc/blobtx.yaml")
	require.NoError(t, err)
	require.Equal(t, "/etc/blobtx.yaml", unchanged)
}

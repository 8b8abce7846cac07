package config

import (
	"fmt"
	"os"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/cosmos/tx"
	"github.com/tessellated-io/blobtx/log"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigDirectory = "~/.blobtx"
	DefaultConfigFile      = DefaultConfigDirectory + "/config.yaml"

	header = "blobtx configuration\nNetworks listed here are added to, or replace, the built in networks."
)

type Config struct {
	LogLevel      string           `yaml:"log_level" comment:"Log level, one of: debug, info, warn, error"`
	Network       string           `yaml:"network" comment:"Chain name or chain ID of the network to use"`
	Memo          string           `yaml:"memo" comment:"Memo attached to every transaction"`
	GasAdjustment string           `yaml:"gas_adjustment" comment:"Multiplier applied to simulated gas"`
	GasPrice      string           `yaml:"gas_price" comment:"Gas price in the network's base denom. Leave empty to use the network's average price"`
	Node          NodeConfig       `yaml:"node" comment:"How to reach nodes"`
	Networks      []chains.Network `yaml:"networks" comment:"Extra networks"`
}

type NodeConfig struct {
	Transport         string `yaml:"transport"`
	TimeoutSeconds    uint   `yaml:"timeout_seconds"`
	Attempts          uint   `yaml:"attempts"`
	RetryDelaySeconds uint   `yaml:"retry_delay_seconds"`
	PollAttempts      uint   `yaml:"poll_attempts"`
	PollDelaySeconds  uint   `yaml:"poll_delay_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		Network:       "celestia-mocha",
		Memo:          tx.DefaultMemo,
		GasAdjustment: tx.DefaultGasAdjustment,
		Node: NodeConfig{
			Transport:         rpc.TransportRest,
			TimeoutSeconds:    30,
			Attempts:          1,
			RetryDelaySeconds: 1,
			PollAttempts:      20,
			PollDelaySeconds:  3,
		},
		Networks: []chains.Network{},
	}
}

// Load reads a config file. Fields missing from the file keep their defaults.
func Load(configFile string) (*Config, error) {
	expanded, err := ResolveFile(configFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Write writes the config with comments, unless the file already exists.
func (c *Config) Write(configFile string, logger *log.Logger) (bool, error) {
	return WriteYamlWithComments(c, header, configFile, logger)
}

func (c *Config) Validate() error {
	if !log.IsValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Network == "" {
		return fmt.Errorf("no network configured")
	}

	gasAdjustment, err := c.GasAdjustmentDec()
	if err != nil {
		return err
	}
	if gasAdjustment.LT(sdkmath.LegacyOneDec()) {
		return fmt.Errorf("gas adjustment %s would under-provision gas, it must be at least 1", c.GasAdjustment)
	}

	if _, err := c.GasPriceDec(); err != nil {
		return err
	}

	if c.Node.Transport != rpc.TransportRest && c.Node.Transport != rpc.TransportGrpc {
		return fmt.Errorf("invalid node transport %q", c.Node.Transport)
	}
	if c.Node.Attempts == 0 {
		return fmt.Errorf("node attempts must be at least 1")
	}
	if c.Node.PollAttempts == 0 {
		return fmt.Errorf("node poll attempts must be at least 1")
	}

	for i := range c.Networks {
		if err := c.Networks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) GasAdjustmentDec() (sdkmath.LegacyDec, error) {
	gasAdjustment, err := sdkmath.LegacyNewDecFromStr(c.GasAdjustment)
	if err != nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("invalid gas adjustment %q: %w", c.GasAdjustment, err)
	}
	return gasAdjustment, nil
}

// GasPriceDec returns nil if no gas price is configured.
func (c *Config) GasPriceDec() (*sdkmath.LegacyDec, error) {
	if c.GasPrice == "" {
		return nil, nil
	}

	gasPrice, err := sdkmath.LegacyNewDecFromStr(c.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price %q: %w", c.GasPrice, err)
	}
	if gasPrice.IsNegative() {
		return nil, fmt.Errorf("gas price %q is negative", c.GasPrice)
	}
	return &gasPrice, nil
}

// Registry returns the built in networks, overlaid with the configured ones.
func (c *Config) Registry() *chains.OfflineChainRegistry {
	registry := chains.NewOfflineChainRegistry()
	for i := range c.Networks {
		network := c.Networks[i]
		registry.Add(&network)
	}
	return registry
}

// ResolveNetwork finds the configured network.
func (c *Config) ResolveNetwork() (*chains.Network, error) {
	return c.Registry().Lookup(c.Network)
}

func (c *Config) ClientFactoryOptions() rpc.FactoryOptions {
	return rpc.FactoryOptions{
		Transport:  c.Node.Transport,
		Timeout:    time.Duration(c.Node.TimeoutSeconds) * time.Second,
		Attempts:   c.Node.Attempts,
		RetryDelay: time.Duration(c.Node.RetryDelaySeconds) * time.Second,
	}
}

// SubmitterOptions maps the config onto the pipeline's options.
func (c *Config) SubmitterOptions() ([]tx.SubmitterOption, error) {
	gasAdjustment, err := c.GasAdjustmentDec()
	if err != nil {
		return nil, err
	}

	opts := []tx.SubmitterOption{
		tx.WithMemo(c.Memo),
		tx.WithGasAdjustment(gasAdjustment),
		tx.WithPolling(c.Node.PollAttempts, time.Duration(c.Node.PollDelaySeconds)*time.Second),
	}

	gasPrice, err := c.GasPriceDec()
	if err != nil {
		return nil, err
	}
	if gasPrice != nil {
		opts = append(opts, tx.WithGasPrice(*gasPrice))
	}
	return opts, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tessellated-io/blobtx/config"
	"github.com/tessellated-io/blobtx/log"
)

const (
	envPrefix = "BLOBTX"

	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagNetwork   = "network"
	flagTransport = "transport"

	// Only ever read from the environment, so it stays out of shell history.
	keyMnemonic = "mnemonic"
)

// app is what every command runs against. Flags and env are merged over the config file first.
type app struct {
	config *config.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "blobtx",
		Short:         "Build, sign and broadcast blob-carrying Cosmos transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationNoConfig] == "true" {
				a.logger = log.NewLoggerWithWriter(v.GetString(flagLogLevel), []string{}, cmd.ErrOrStderr())
				return nil
			}

			cfg, err := config.Load(v.GetString(flagConfig))
			if err != nil {
				return err
			}

			// Flags and env override the file.
			if v.IsSet(flagLogLevel) {
				cfg.LogLevel = v.GetString(flagLogLevel)
			}
			if v.IsSet(flagNetwork) {
				cfg.Network = v.GetString(flagNetwork)
			}
			if v.IsSet(flagTransport) {
				cfg.Node.Transport = v.GetString(flagTransport)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.config = cfg
			a.logger = log.NewLoggerWithWriter(cfg.LogLevel, []string{}, cmd.ErrOrStderr())
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, config.DefaultConfigFile, "path to the config file")
	flags.String(flagLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(flagNetwork, "", "chain name or chain ID, overriding the config file")
	flags.String(flagTransport, "", "node transport (rest or grpc), overriding the config file")
	for _, name := range []string{flagConfig, flagLogLevel, flagNetwork, flagTransport} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %s", name, err))
		}
	}

	rootCmd.AddCommand(
		initCmd(v, a),
		networksCmd(a),
		accountCmd(a),
		simulateCmd(a),
		sendCmd(v, a),
		decodeCmd(a),
	)
	return rootCmd
}

// Commands annotated with this run without a config file.
const annotationNoConfig = "no-config"

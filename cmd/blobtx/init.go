package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tessellated-io/blobtx/config"
)

func initCmd(v *viper.Viper, a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFile := v.GetString(flagConfig)

			cfg := config.DefaultConfig()
			if v.IsSet(flagNetwork) {
				cfg.Network = v.GetString(flagNetwork)
			}
			if v.IsSet(flagTransport) {
				cfg.Node.Transport = v.GetString(flagTransport)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			written, err := cfg.Write(configFile, a.logger)
			if err != nil {
				return err
			}
			if !written {
				return fmt.Errorf("config file already exists at %s", configFile)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote config to %s\n", configFile)
			return nil
		},
	}
}

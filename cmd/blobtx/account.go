package main

import (
	"github.com/spf13/cobra"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/cosmos/tx"
)

func accountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account [address]",
		Short: "Show the account number and sequence of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := a.config.ResolveNetwork()
			if err != nil {
				return err
			}

			clients, err := rpc.NewClientFactory(a.config.ClientFactoryOptions(), a.logger)
			if err != nil {
				return err
			}

			account, err := tx.NewAccountFetcher(clients, a.logger).Fetch(cmd.Context(), network, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, account)
		},
	}
}

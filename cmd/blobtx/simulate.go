package main

import (
	"github.com/spf13/cobra"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/cosmos/tx"
)

type simulateResult struct {
	Address  string `json:"address"`
	Sequence uint64 `json:"sequence"`
	GasLimit uint64 `json:"gas_limit"`
	Fee      string `json:"fee"`
}

func simulateCmd(a *app) *cobra.Command {
	var rawMsgs []string

	cmd := &cobra.Command{
		Use:   "simulate [address]",
		Short: "Estimate the gas and fee of messages sent from an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := parseMessages(rawMsgs)
			if err != nil {
				return err
			}

			network, err := a.config.ResolveNetwork()
			if err != nil {
				return err
			}
			gasAdjustment, err := a.config.GasAdjustmentDec()
			if err != nil {
				return err
			}
			gasPrice, err := a.config.GasPriceDec()
			if err != nil {
				return err
			}
			if gasPrice == nil {
				average, err := tx.GasPriceFromFloat(network.GasPrices.Average)
				if err != nil {
					return err
				}
				gasPrice = &average
			}

			clients, err := rpc.NewClientFactory(a.config.ClientFactoryOptions(), a.logger)
			if err != nil {
				return err
			}

			account, err := tx.NewAccountFetcher(clients, a.logger).Fetch(cmd.Context(), network, args[0])
			if err != nil {
				return err
			}

			gasLimit, err := tx.NewGasEstimator(clients, gasAdjustment, a.logger).Estimate(cmd.Context(), network, account, msgs, nil)
			if err != nil {
				return err
			}

			fee := tx.SuggestFee(gasLimit, network.NativeToken, *gasPrice)
			return printJSON(cmd, simulateResult{
				Address:  account.Address,
				Sequence: account.Sequence,
				GasLimit: gasLimit,
				Fee:      fee.Amount.String(),
			})
		},
	}
	cmd.Flags().StringArrayVar(&rawMsgs, flagMsg, nil, "message as type_url=base64_value, repeatable")
	return cmd
}

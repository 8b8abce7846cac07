package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/blobtx/arrays"
	"github.com/tessellated-io/blobtx/chains"
)

func networksCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List known networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			networks := a.config.Registry().Networks()
			if prefix != "" {
				networks = arrays.Filter(networks, func(n *chains.Network) bool {
					return n.AccountPrefix == prefix
				})
			}

			rows := arrays.Map(networks, func(n *chains.Network) string {
				return strings.Join([]string{
					n.ChainName,
					n.ChainID,
					n.AccountPrefix,
					n.NativeToken,
					fmt.Sprintf("%g", n.GasPrices.Average),
				}, "\t")
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCHAIN ID\tPREFIX\tDENOM\tGAS PRICE")
			for _, row := range rows {
				fmt.Fprintln(w, row)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list networks with this account prefix")
	return cmd
}

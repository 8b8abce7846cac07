package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tessellated-io/blobtx/arrays"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/cosmos/tx"
	"github.com/tessellated-io/blobtx/cosmos/util"
	"github.com/tessellated-io/blobtx/crypto"
	"github.com/tessellated-io/blobtx/wallet"
)

var (
	errMissingMnemonic    = errors.New("no mnemonic set, export " + envPrefix + "_MNEMONIC")
	errNoResubmitAttempts = errors.New("--resubmit-attempts must be at least 1")
)

type sendResult struct {
	TxHash  string `json:"tx_hash"`
	Height  int64  `json:"height,omitempty"`
	GasUsed int64  `json:"gas_used,omitempty"`
}

func sendCmd(v *viper.Viper, a *app) *cobra.Command {
	var (
		rawMsgs          []string
		rawBlobs         []string
		rawFees          string
		gasLimit         uint64
		wait             bool
		resubmitAttempts uint
		resubmitDelay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Sign and broadcast messages, optionally carrying blobs",
		Long: "Sign and broadcast messages with the key derived from " + envPrefix + "_MNEMONIC.\n" +
			"When blobs are given, the messages must already commit to them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if resubmitAttempts == 0 {
				return errNoResubmitAttempts
			}

			mnemonic := v.GetString(keyMnemonic)
			if mnemonic == "" {
				return errMissingMnemonic
			}

			msgs, err := parseMessages(rawMsgs)
			if err != nil {
				return err
			}
			blobs, err := parseBlobs(rawBlobs)
			if err != nil {
				return err
			}

			network, err := a.config.ResolveNetwork()
			if err != nil {
				return err
			}

			var fee *txtypes.Fee
			if rawFees != "" || gasLimit > 0 {
				fees, err := sdk.ParseCoinsNormalized(rawFees)
				if err != nil {
					return fmt.Errorf("invalid fees %q: %w", rawFees, err)
				}
				if rawFees != "" {
					if _, err := util.ExtractCoin(network.NativeToken, fees); err != nil {
						return err
					}
				}
				fee = codec.NewFee(fees, gasLimit)
			}

			keyPair, err := crypto.NewKeyPairFromMnemonic(mnemonic, network.CoinType)
			if err != nil {
				return err
			}
			sender := keyPair.GetAddress(network.AccountPrefix)

			clients, err := rpc.NewClientFactory(a.config.ClientFactoryOptions(), a.logger)
			if err != nil {
				return err
			}
			opts, err := a.config.SubmitterOptions()
			if err != nil {
				return err
			}
			opts = append(opts, tx.WithSender(tx.NewNodeSender(network, clients)))

			signer := wallet.NewLocalWallet("blobtx", keyPair, wallet.AutoApprove, a.logger)
			submitter := tx.NewSubmitter(network, signer, clients, a.logger, opts...)
			if err := submitter.Connect(ctx); err != nil {
				return err
			}
			defer func() {
				_ = submitter.Disconnect(context.Background())
			}()

			if len(blobs) > 0 {
				size := arrays.Reduce(blobs, func(total int, blob []byte) int { return total + len(blob) }, 0)
				a.logger.Info("submitting blobs", "sender", sender, "blobs", len(blobs), "bytes", size)
			}

			txHash, err := tx.RetryOnStaleSequence(ctx, resubmitAttempts, resubmitDelay, a.logger, func(ctx context.Context) (string, error) {
				if len(blobs) > 0 {
					return submitter.SendBlob(ctx, sender, msgs, fee, blobs...)
				}
				return submitter.SendMessages(ctx, sender, msgs, fee)
			})
			if err != nil {
				return err
			}

			result := sendResult{TxHash: txHash}
			if wait {
				res, err := submitter.WaitForInclusion(ctx, txHash)
				if err != nil {
					return err
				}
				result.Height = res.Height
				result.GasUsed = res.GasUsed
			}
			return printJSON(cmd, result)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&rawMsgs, flagMsg, nil, "message as type_url=base64_value, repeatable")
	flags.StringArrayVar(&rawBlobs, flagBlob, nil, "blob as namespace_sub_id_hex=file, repeatable")
	flags.StringVar(&rawFees, "fees", "", "fee to pay, e.g. 2000utia. Estimated when empty")
	flags.Uint64Var(&gasLimit, "gas", 0, "gas limit. Estimated when zero")
	flags.BoolVar(&wait, "wait", false, "wait until the transaction is included in a block")
	flags.UintVar(&resubmitAttempts, "resubmit-attempts", 3, "submissions to try while the node reports a stale sequence, at least 1")
	flags.DurationVar(&resubmitDelay, "resubmit-delay", 2*time.Second, "delay between resubmissions")
	_ = cmd.MarkFlagRequired(flagMsg)

	if err := v.BindEnv(keyMnemonic); err != nil {
		panic(err)
	}
	return cmd
}

package tx

import (
	"context"
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/coding"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/log"
)

// Simulation does not verify signatures, so the mode is only a placeholder.
const simulationSignMode = signing.SignMode_SIGN_MODE_DIRECT

// GasEstimator simulates an unsigned transaction and pads the result.
type GasEstimator struct {
	clients       rpc.ClientFactory
	gasAdjustment sdkmath.LegacyDec
	logger        *log.Logger
}

func NewGasEstimator(clients rpc.ClientFactory, gasAdjustment sdkmath.LegacyDec, logger *log.Logger) *GasEstimator {
	return &GasEstimator{
		clients:       clients,
		gasAdjustment: gasAdjustment,
		logger:        logger,
	}
}

func (ge *GasEstimator) GasAdjustment() sdkmath.LegacyDec {
	return ge.gasAdjustment
}

// Estimate returns the adjusted gas the messages need when sent from account.
func (ge *GasEstimator) Estimate(
	ctx context.Context,
	network *chains.Network,
	account *AccountState,
	msgs []codec.Message,
	feeCoins sdk.Coins,
) (uint64, error) {
	logger := ge.logger.With("chain_id", network.ChainID, "address", account.Address, "num_msgs", len(msgs))

	txBytes, err := BuildSimulationTx(account, msgs, feeCoins)
	if err != nil {
		return 0, err
	}

	client, err := ge.clients(network)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSimulationFailed, err)
	}
	defer client.Close()

	gasUsed, err := client.Simulate(ctx, txBytes)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return 0, ctx.Err()
	case errors.Is(err, rpc.ErrInvalidResponse):
		logger.Error("node returned an unusable simulation result", "error", err.Error())
		return 0, fmt.Errorf("%w: %w", ErrInvalidGasResponse, err)
	default:
		logger.Error("simulation failed", "error", err.Error())
		return 0, fmt.Errorf("%w: %w", ErrSimulationFailed, err)
	}

	if gasUsed == 0 {
		return 0, fmt.Errorf("%w: node simulated zero gas", ErrInvalidGasResponse)
	}

	gasWanted := AdjustGas(gasUsed, ge.gasAdjustment)
	logger.Debug("simulated transaction", "gas_used", gasUsed, "gas_adjustment", ge.gasAdjustment.String(), "gas_wanted", gasWanted)
	return gasWanted, nil
}

// BuildSimulationTx encodes a structurally valid but unsigned transaction: the real body and sequence, no public
// key, and a zeroed signature.
func BuildSimulationTx(account *AccountState, msgs []codec.Message, feeCoins sdk.Coins) ([]byte, error) {
	bodyBytes, err := codec.EncodeTxBody(codec.NewTxBody(msgs, ""))
	if err != nil {
		return nil, err
	}

	signerInfo := codec.NewSignerInfo(nil, simulationSignMode, account.Sequence)
	authInfo := codec.NewAuthInfo([]*txtypes.SignerInfo{signerInfo}, codec.NewFee(feeCoins, 0))
	authInfoBytes, err := codec.EncodeAuthInfo(authInfo)
	if err != nil {
		return nil, err
	}

	placeholderSignature := make([]byte, coding.SignatureLength)
	return codec.EncodeTxRaw(codec.NewTxRaw(bodyBytes, authInfoBytes, placeholderSignature))
}

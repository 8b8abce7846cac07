package tx_test

import (
	"context"
	"net/http"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/tx"
	"github.com/tessellated-io/blobtx/log"
)

var testAccount = &tx.AccountState{Address: testSender, AccountNumber: 42, Sequence: 7}

func TestGasEstimator_AppliesAdjustment(t *testing.T) {
	node, network := newFakeNode(t)
	estimator := tx.NewGasEstimator(restClients(t), tx.DefaultGasAdjustmentDec(), log.Discard())

	gas, err := estimator.Estimate(context.Background(), network, testAccount, testMessages(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(120000), gas)
	require.Equal(t, 1, node.numSimulated())
}

func TestGasEstimator_SimulationTxShape(t *testing.T) {
	node, network := newFakeNode(t)
	estimator := tx.NewGasEstimator(restClients(t), tx.DefaultGasAdjustmentDec(), log.Discard())
	feeCoins := sdk.NewCoins(sdk.NewInt64Coin("utia", 1000))

	_, err := estimator.Estimate(context.Background(), network, testAccount, testMessages(), feeCoins)
	require.NoError(t, err)

	txRaw, err := codec.DecodeTxRaw(node.lastSimulated())
	require.NoError(t, err)
	require.Equal(t, [][]byte{make([]byte, 64)}, txRaw.Signatures)

	body, err := codec.DecodeTxBody(txRaw.BodyBytes)
	require.NoError(t, err)
	require.Len(t, body.Messages, 1)
	require.Equal(t, "/cosmos.bank.v1beta1.MsgSend", body.Messages[0].TypeUrl)

	authInfo, err := codec.DecodeAuthInfo(txRaw.AuthInfoBytes)
	require.NoError(t, err)
	require.Len(t, authInfo.SignerInfos, 1)
	require.Nil(t, authInfo.SignerInfos[0].PublicKey)
	require.Equal(t, uint64(7), authInfo.SignerInfos[0].Sequence)
	require.True(t, feeCoins.Equal(authInfo.Fee.Amount))
}

func TestGasEstimator_InvalidGasResponse(t *testing.T) {
	for _, body := range []string{
		`{"gas_info":{"gas_used":"a lot"}}`,
		`{"gas_info":{"gas_used":"0"}}`,
		`{}`,
	} {
		node, network := newFakeNode(t)
		node.simulateBody = body
		estimator := tx.NewGasEstimator(restClients(t), tx.DefaultGasAdjustmentDec(), log.Discard())

		_, err := estimator.Estimate(context.Background(), network, testAccount, testMessages(), nil)
		require.ErrorIs(t, err, tx.ErrInvalidGasResponse, body)
	}
}

func TestGasEstimator_SimulationFailed(t *testing.T) {
	node, network := newFakeNode(t)
	node.simulateStatus = http.StatusBadRequest
	node.simulateBody = `{"code":3,"message":"insufficient funds"}`
	estimator := tx.NewGasEstimator(restClients(t), tx.DefaultGasAdjustmentDec(), log.Discard())

	_, err := estimator.Estimate(context.Background(), network, testAccount, testMessages(), nil)
	require.ErrorIs(t, err, tx.ErrSimulationFailed)
	require.NotErrorIs(t, err, tx.ErrInvalidGasResponse)
	require.Contains(t, err.Error(), "insufficient funds")
}

func TestGasEstimator_CustomAdjustment(t *testing.T) {
	_, network := newFakeNode(t)
	estimator := tx.NewGasEstimator(restClients(t), sdkmath.LegacyMustNewDecFromStr("1.5"), log.Discard())

	gas, err := estimator.Estimate(context.Background(), network, testAccount, testMessages(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(150000), gas)
}

func TestAdjustGas(t *testing.T) {
	adjustment := tx.DefaultGasAdjustmentDec()

	require.Equal(t, uint64(120000), tx.AdjustGas(100000, adjustment))
	require.Equal(t, uint64(2), tx.AdjustGas(1, adjustment))
	require.Equal(t, uint64(6), tx.AdjustGas(5, adjustment))
	require.Equal(t, uint64(0), tx.AdjustGas(0, adjustment))
}

func TestSuggestFee(t *testing.T) {
	gasPrice, err := tx.GasPriceFromFloat(0.02)
	require.NoError(t, err)

	fee := tx.SuggestFee(120000, "utia", gasPrice)
	require.Equal(t, uint64(120000), fee.GasLimit)
	require.Equal(t, "2400utia", fee.Amount.String())

	// Fractional amounts round up.
	fee = tx.SuggestFee(101, "utia", gasPrice)
	require.Equal(t, "3utia", fee.Amount.String())
}

package tx

import (
	"errors"
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
)

// DefaultGasAdjustment pads simulated gas, which is a lower bound on what execution will use.
const DefaultGasAdjustment = "1.2"

// DefaultGasAdjustmentDec is DefaultGasAdjustment as a decimal.
func DefaultGasAdjustmentDec() sdkmath.LegacyDec {
	return sdkmath.LegacyMustNewDecFromStr(DefaultGasAdjustment)
}

// AdjustGas multiplies gas by the adjustment, rounding up.
func AdjustGas(gasUsed uint64, adjustment sdkmath.LegacyDec) uint64 {
	gas := sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(gasUsed))
	return gas.Mul(adjustment).Ceil().TruncateInt().Uint64()
}

// GasPriceFromFloat converts a configured gas price into a decimal.
func GasPriceFromFloat(gasPrice float64) (sdkmath.LegacyDec, error) {
	return sdkmath.LegacyNewDecFromStr(strconv.FormatFloat(gasPrice, 'f', -1, 64))
}

// SuggestFee pays for gasLimit units at gasPrice, rounding up to a whole base unit.
func SuggestFee(gasLimit uint64, denom string, gasPrice sdkmath.LegacyDec) *txtypes.Fee {
	gas := sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(gasLimit))
	amount := gas.Mul(gasPrice).Ceil().TruncateInt()

	return codec.NewFee(sdk.NewCoins(sdk.NewCoin(denom, amount)), gasLimit)
}

// Helper function to know if an error had to do with gas.
func IsGasRelatedError(codespace string, code uint32) bool {
	return IsGasPriceError(codespace, code) || isGasAmountError(codespace, code)
}

// Helper function to determine if an error is related to too small of a gas price
func IsGasPriceError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 13) || (codespace == "gaia" && code == 4)
}

// Helper function to determine if an error is related to to few gas units
func isGasAmountError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 11)
}

// IsSequenceMismatch reports the node's "account sequence mismatch" code.
func IsSequenceMismatch(codespace string, code uint32) bool {
	return codespace == "sdk" && code == 32
}

// IsStaleSequenceError reports whether a failed submission would likely succeed with freshly fetched account
// state. Wallet extensions relay node errors as plain text, so the log is matched too.
func IsStaleSequenceError(err error) bool {
	if err == nil {
		return false
	}

	var rejection *rpc.RejectionError
	if errors.As(err, &rejection) {
		return IsSequenceMismatch(rejection.Codespace, rejection.Code)
	}
	return strings.Contains(err.Error(), "account sequence mismatch")
}

package util_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/cosmos/util"
)

func TestExtractCoin(t *testing.T) {
	coins := sdk.NewCoins(sdk.NewInt64Coin("unub", 5), sdk.NewInt64Coin("utia", 2400))

	coin, err := util.ExtractCoin("UTIA", coins)
	require.NoError(t, err)
	require.Equal(t, "utia", coin.Denom)
	require.True(t, coin.Amount.Equal(sdkmath.NewInt(2400)))
}

func TestExtractCoin_Missing(t *testing.T) {
	coins := sdk.NewCoins(sdk.NewInt64Coin("unub", 5))

	_, err := util.ExtractCoin("utia", coins)
	require.ErrorIs(t, err, util.ErrDenomNotFound)
}

func TestExtractCoin_Empty(t *testing.T) {
	_, err := util.ExtractCoin("utia", nil)
	require.ErrorIs(t, err, util.ErrDenomNotFound)
}

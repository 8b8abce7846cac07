package util

import (
	"errors"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var ErrDenomNotFound = errors.New("denom not found")

// ExtractCoin finds the coin of targetDenom, ignoring case.
func ExtractCoin(targetDenom string, coins []sdk.Coin) (*sdk.Coin, error) {
	for _, coin := range coins {
		if strings.EqualFold(targetDenom, coin.Denom) {
			return &coin, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s in %s", ErrDenomNotFound, targetDenom, sdk.Coins(coins))
}

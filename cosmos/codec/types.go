package codec

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sqtx "github.com/celestiaorg/go-square/v2/tx"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// Secp256k1PubKeyTypeURL identifies the only key algorithm signers may use.
	Secp256k1PubKeyTypeURL = "/cosmos.crypto.secp256k1.PubKey"

	// BlobTxTypeID marks a BlobTx so that the node routes it to the blob mempool.
	BlobTxTypeID = sqtx.ProtoBlobTxTypeID
)

// Message is a protocol message that has already been encoded by the caller, tagged with its type URL.
type Message struct {
	TypeURL string
	Value   []byte
}

// NewMessage wraps encoded message bytes with their type URL.
func NewMessage(typeURL string, value []byte) Message {
	return Message{
		TypeURL: typeURL,
		Value:   value,
	}
}

// ToAny converts the message into the Any carried by TxBody.
func (m Message) ToAny() *codectypes.Any {
	return &codectypes.Any{
		TypeUrl: m.TypeURL,
		Value:   m.Value,
	}
}

// MessageFromAny is the inverse of ToAny.
func MessageFromAny(any *codectypes.Any) Message {
	if any == nil {
		return Message{}
	}
	return NewMessage(any.TypeUrl, any.Value)
}

// NewCoin parses a base-10 integer amount for a denom.
func NewCoin(denom, amount string) (sdk.Coin, error) {
	if err := sdk.ValidateDenom(denom); err != nil {
		return sdk.Coin{}, errorsmod.Wrapf(ErrMalformedMessage, "invalid denom %q: %s", denom, err)
	}

	parsed, ok := sdkmath.NewIntFromString(amount)
	if !ok {
		return sdk.Coin{}, errorsmod.Wrapf(ErrMalformedMessage, "invalid coin amount: %q", amount)
	}
	if parsed.IsNegative() {
		return sdk.Coin{}, errorsmod.Wrapf(ErrMalformedMessage, "negative coin amount: %q", amount)
	}

	return sdk.Coin{Denom: denom, Amount: parsed}, nil
}

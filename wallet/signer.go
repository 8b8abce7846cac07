package wallet

import (
	"context"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/chains"
)

// Signer is an external signing authority, such as a browser wallet extension. Implementations hold key
// material; callers only ever see public keys and signatures.
//
// Every call may block for as long as a human takes to approve it. Cancelling the context abandons the
// request.
type Signer interface {
	SuggestChain(ctx context.Context, chainInfo chains.ChainInfo) error
	Enable(ctx context.Context, chainID string) error
	Disable(ctx context.Context) error

	Accounts(ctx context.Context, chainID string) ([]Account, error)
	Key(ctx context.Context, chainID string) (*Key, error)

	// SignDirect returns ErrRequestRejected if the user declines.
	SignDirect(ctx context.Context, chainID, signer string, signDoc *txtypes.SignDoc) (*DirectSignResponse, error)

	// SendTx returns the raw transaction hash the node assigned.
	SendTx(ctx context.Context, chainID string, txBytes []byte, mode BroadcastMode) ([]byte, error)
}

type Key struct {
	Name          string
	Algo          string
	PubKey        []byte
	Address       []byte
	Bech32Address string
}

type Account struct {
	Address string
	Algo    string
	PubKey  []byte
}

type PubKey struct {
	Type string `json:"type"`
	// Base64 encoded
	Value string `json:"value"`
}

type StdSignature struct {
	PubKey PubKey `json:"pub_key"`
	// Base64 encoded
	Signature string `json:"signature"`
}

// DirectSignResponse carries the document as the signer actually signed it, which may differ from the request if
// the user edited the fee.
type DirectSignResponse struct {
	Signed    *txtypes.SignDoc
	Signature StdSignature
}

type BroadcastMode string

const (
	BroadcastModeSync  BroadcastMode = "sync"
	BroadcastModeAsync BroadcastMode = "async"
	BroadcastModeBlock BroadcastMode = "block"
)

func (m BroadcastMode) ToProto() txtypes.BroadcastMode {
	switch m {
	case BroadcastModeSync:
		return txtypes.BroadcastMode_BROADCAST_MODE_SYNC
	case BroadcastModeAsync:
		return txtypes.BroadcastMode_BROADCAST_MODE_ASYNC
	case BroadcastModeBlock:
		return txtypes.BroadcastMode_BROADCAST_MODE_BLOCK
	default:
		return txtypes.BroadcastMode_BROADCAST_MODE_UNSPECIFIED
	}
}

package tx

import (
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/cosmos/codec"
)

// AccountState is what a signer needs from the chain. It is fetched for every submission and never cached.
type AccountState struct {
	Address       string `json:"address"`
	AccountNumber uint64 `json:"account_number"`
	Sequence      uint64 `json:"sequence"`
}

// SignedTx is a signed transaction ready for broadcast.
type SignedTx struct {
	Raw     *txtypes.TxRaw
	SignDoc *txtypes.SignDoc

	// Bytes is the encoded TxRaw, or the encoded BlobTx wrapping it.
	Bytes []byte
	Blob  bool
}

// Hash is the hash the node will report for the transaction.
func (st *SignedTx) Hash() string {
	return codec.TxHashHex(st.Bytes)
}

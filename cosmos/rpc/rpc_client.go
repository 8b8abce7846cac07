package rpc

import (
	"context"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// NodeClient is the narrow set of node calls the transaction pipeline needs.
type NodeClient interface {
	// Account returns ErrNotFound if the node does not know the address.
	Account(ctx context.Context, address string) (*AccountData, error)

	// Simulate returns the gas used by the simulated transaction.
	Simulate(ctx context.Context, txBytes []byte) (uint64, error)

	Broadcast(ctx context.Context, txBytes []byte, mode txtypes.BroadcastMode) (*TxResponse, error)

	// TxStatus returns nil, nil if the transaction is not yet indexed.
	TxStatus(ctx context.Context, txHash string) (*TxResponse, error)

	Close() error
}

type AccountData struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// TxResponse is the subset of a node's tx response that the pipeline inspects.
type TxResponse struct {
	TxHash    string
	Height    int64
	Code      uint32
	Codespace string
	RawLog    string
	GasWanted int64
	GasUsed   int64
}

// Err returns a *RejectionError if the node reported a non-zero code.
func (r *TxResponse) Err() error {
	if r.Code == 0 {
		return nil
	}
	return &RejectionError{
		Codespace: r.Codespace,
		Code:      r.Code,
		RawLog:    r.RawLog,
	}
}

// SendTx broadcasts and returns the hash the node assigned, or the node's rejection.
func SendTx(ctx context.Context, client NodeClient, txBytes []byte, mode txtypes.BroadcastMode) (string, error) {
	response, err := client.Broadcast(ctx, txBytes, mode)
	if err != nil {
		return "", err
	}
	if err := response.Err(); err != nil {
		return response.TxHash, err
	}
	return response.TxHash, nil
}

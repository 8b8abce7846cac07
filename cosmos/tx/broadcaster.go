package tx

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cometbft/cometbft/crypto/tmhash"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/coding"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/log"
	"github.com/tessellated-io/blobtx/wallet"
)

// TxSender submits transaction bytes and returns the raw hash. wallet.Signer is a TxSender.
type TxSender interface {
	SendTx(ctx context.Context, chainID string, txBytes []byte, mode wallet.BroadcastMode) ([]byte, error)
}

// Broadcaster submits signed transactions in sync mode, returning once the node accepts them into its mempool.
// It never retries.
type Broadcaster struct {
	sender TxSender
	logger *log.Logger
}

func NewBroadcaster(sender TxSender, logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		sender: sender,
		logger: logger,
	}
}

// Broadcast returns the transaction hash as lowercase hex.
func (b *Broadcaster) Broadcast(ctx context.Context, chainID string, txBytes []byte) (string, error) {
	logger := b.logger.With("chain_id", chainID, "tx_bytes", len(txBytes), "payload", coding.PayloadFingerprint(txBytes))

	// Nothing may be sent once the caller has given up.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	hash, err := b.sender.SendTx(ctx, chainID, txBytes, wallet.BroadcastModeSync)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		var rejection *rpc.RejectionError
		if errors.As(err, &rejection) {
			logger = logger.With("codespace", rejection.Codespace, "code", rejection.Code, "gas_related", IsGasRelatedError(rejection.Codespace, rejection.Code))
		}
		logger.Error("📣 broadcast rejected", "error", err.Error(), "stale_sequence", IsStaleSequenceError(err))
		return "", fmt.Errorf("%w: %w", ErrBroadcastRejected, err)
	}

	if len(hash) != tmhash.Size {
		return "", fmt.Errorf("%w: expected a %d byte transaction hash, got %d bytes", ErrBroadcastRejected, tmhash.Size, len(hash))
	}

	txHash := hex.EncodeToString(hash)
	if expected := codec.TxHashHex(txBytes); expected != txHash {
		logger.Warn("node reported an unexpected transaction hash", "tx_hash", txHash, "expected_tx_hash", expected)
	}

	logger.Info("📣 broadcast accepted", "tx_hash", txHash)
	return txHash, nil
}

// NodeSender sends directly to a node rather than through a wallet.
type NodeSender struct {
	network *chains.Network
	clients rpc.ClientFactory
}

var _ TxSender = (*NodeSender)(nil)

func NewNodeSender(network *chains.Network, clients rpc.ClientFactory) *NodeSender {
	return &NodeSender{
		network: network,
		clients: clients,
	}
}

func (ns *NodeSender) SendTx(ctx context.Context, chainID string, txBytes []byte, mode wallet.BroadcastMode) ([]byte, error) {
	if chainID != ns.network.ChainID {
		return nil, fmt.Errorf("%w: node sender is for %s", wallet.ErrUnknownChain, ns.network.ChainID)
	}

	client, err := ns.clients(ns.network)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	txHash, err := rpc.SendTx(ctx, client, txBytes, mode.ToProto())
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(txHash)
}

package tx_test

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/cosmos/tx"
	"github.com/tessellated-io/blobtx/log"
	"github.com/tessellated-io/blobtx/wallet"
)

func TestBroadcaster_ReturnsHexHash(t *testing.T) {
	signer := newFakeSigner()
	broadcaster := tx.NewBroadcaster(signer, log.Discard())
	txBytes := []byte{0x0a, 0x02, 0x01, 0x02}

	txHash, err := broadcaster.Broadcast(context.Background(), testChainID, txBytes)
	require.NoError(t, err)
	require.Len(t, txHash, 64)
	require.Equal(t, codec.TxHashHex(txBytes), txHash)
	require.Equal(t, [][]byte{txBytes}, signer.sent)
}

func TestBroadcaster_RejectsBadHash(t *testing.T) {
	signer := newFakeSigner()
	signer.sendHash = []byte{0x01, 0x02}
	broadcaster := tx.NewBroadcaster(signer, log.Discard())

	_, err := broadcaster.Broadcast(context.Background(), testChainID, []byte{0x01})
	require.ErrorIs(t, err, tx.ErrBroadcastRejected)
}

func TestBroadcaster_SenderFailure(t *testing.T) {
	cause := errors.New("Request rejected")
	signer := newFakeSigner()
	signer.sendErr = cause
	broadcaster := tx.NewBroadcaster(signer, log.Discard())

	_, err := broadcaster.Broadcast(context.Background(), testChainID, []byte{0x01})
	require.ErrorIs(t, err, tx.ErrBroadcastRejected)
	require.ErrorIs(t, err, cause)
}

func TestBroadcaster_NothingSentAfterCancellation(t *testing.T) {
	signer := newFakeSigner()
	broadcaster := tx.NewBroadcaster(signer, log.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := broadcaster.Broadcast(ctx, testChainID, []byte{0x01})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, signer.sent)
}

func TestBroadcaster_StaleSequence(t *testing.T) {
	node, network := newFakeNode(t)
	node.broadcastCode = 32
	node.broadcastLog = "account sequence mismatch, expected 8, got 7: incorrect account sequence"

	// Sign with the node's stale view of the account, then broadcast straight to the node.
	signer := newFakeSigner()
	assembler := tx.NewAssembler(signer, tx.NewAccountFetcher(restClients(t), log.Discard()), tx.DefaultMemo, log.Discard())
	signedTx, err := assembler.Sign(context.Background(), network, testSender, testMessages(), testFee(t))
	require.NoError(t, err)

	broadcaster := tx.NewBroadcaster(tx.NewNodeSender(network, restClients(t)), log.Discard())
	txHash, err := broadcaster.Broadcast(context.Background(), testChainID, signedTx.Bytes)
	require.ErrorIs(t, err, tx.ErrBroadcastRejected)
	require.Empty(t, txHash)
	require.True(t, tx.IsStaleSequenceError(err))

	var rejection *rpc.RejectionError
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, uint32(32), rejection.Code)
	require.Equal(t, node.broadcastLog, rejection.RawLog)
}

func TestNodeSender(t *testing.T) {
	node, network := newFakeNode(t)
	sender := tx.NewNodeSender(network, restClients(t))
	txBytes := []byte{0x0a, 0x01, 0x07}

	hash, err := sender.SendTx(context.Background(), testChainID, txBytes, wallet.BroadcastModeSync)
	require.NoError(t, err)
	require.Equal(t, codec.TxHashHex(txBytes), hex.EncodeToString(hash))
	require.Equal(t, txBytes, node.lastBroadcasted())

	_, err = sender.SendTx(context.Background(), "celestia", txBytes, wallet.BroadcastModeSync)
	require.ErrorIs(t, err, wallet.ErrUnknownChain)
}

func TestIsStaleSequenceError_Codes(t *testing.T) {
	require.False(t, tx.IsStaleSequenceError(nil))
	require.False(t, tx.IsStaleSequenceError(errors.New("out of gas")))
	require.False(t, tx.IsStaleSequenceError(&rpc.RejectionError{Codespace: "sdk", Code: 11}))
	require.True(t, tx.IsStaleSequenceError(&rpc.RejectionError{Codespace: "sdk", Code: 32}))
	require.True(t, tx.IsStaleSequenceError(errors.New("Broadcasting transaction failed with code 32 (codespace: sdk). Log: account sequence mismatch, expected 8, got 7")))
}

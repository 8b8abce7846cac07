package rpc

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/log"
)

// Retries reads and returns the last error. Broadcasts are passed through untouched, since resubmitting
// a transaction is a caller decision that needs fresh account state.
type retryableRpcClient struct {
	wrappedClient NodeClient

	attempts retry.Option
	delay    retry.Option

	logger *log.Logger
}

// Ensure that retryableRpcClient implements NodeClient
var _ NodeClient = (*retryableRpcClient)(nil)

// NewRetryableRpcClient returns a new retryableRpcClient
func NewRetryableRpcClient(attempts uint, delay time.Duration, rpcClient NodeClient, logger *log.Logger) NodeClient {
	return &retryableRpcClient{
		wrappedClient: rpcClient,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		logger: logger,
	}
}

// NodeClient Interface

func (r *retryableRpcClient) Account(ctx context.Context, address string) (*AccountData, error) {
	var result *AccountData

	err := retry.Do(func() error {
		var err error
		result, err = r.wrappedClient.Account(ctx, address)
		if err != nil {
			r.logger.Error("failed call in rpc client, will retry", "error", err.Error(), "method", "account")
		}
		return err
	}, r.options(ctx)...)

	return result, err
}

func (r *retryableRpcClient) Simulate(ctx context.Context, txBytes []byte) (uint64, error) {
	var result uint64

	err := retry.Do(func() error {
		var err error
		result, err = r.wrappedClient.Simulate(ctx, txBytes)
		if err != nil {
			r.logger.Error("failed call in rpc client, will retry", "error", err.Error(), "method", "simulate")
		}
		return err
	}, r.options(ctx)...)

	return result, err
}

func (r *retryableRpcClient) Broadcast(ctx context.Context, txBytes []byte, mode txtypes.BroadcastMode) (*TxResponse, error) {
	return r.wrappedClient.Broadcast(ctx, txBytes, mode)
}

func (r *retryableRpcClient) TxStatus(ctx context.Context, txHash string) (*TxResponse, error) {
	var result *TxResponse

	err := retry.Do(func() error {
		var err error
		result, err = r.wrappedClient.TxStatus(ctx, txHash)
		if err != nil {
			r.logger.Error("failed call in rpc client, will retry", "error", err.Error(), "method", "tx_status")
		}
		return err
	}, r.options(ctx)...)

	return result, err
}

func (r *retryableRpcClient) Close() error {
	return r.wrappedClient.Close()
}

func (r *retryableRpcClient) options(ctx context.Context) []retry.Option {
	return []retry.Option{
		r.delay,
		r.attempts,
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	}
}

// Answers from the node do not change on retry.
func isTransient(err error) bool {
	var rejection *RejectionError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidResponse), errors.As(err, &rejection):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

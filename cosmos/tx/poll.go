package tx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/log"
)

// PollInclusion waits for a broadcast transaction to be indexed in a block. A transaction that landed but failed
// is returned along with its *rpc.RejectionError.
func PollInclusion(
	ctx context.Context,
	client rpc.NodeClient,
	txHash string,
	attempts uint,
	delay time.Duration,
	logger *log.Logger,
) (*rpc.TxResponse, error) {
	logger = logger.With("tx_hash", txHash)
	logger.Info("polling for inclusion")

	// Nodes index hashes in upper case.
	queryHash := strings.ToUpper(txHash)

	var i uint
	for i = 0; i < attempts; i++ {
		// Initially sleep to give time to settle
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		txStatus, err := client.TxStatus(ctx, queryHash)
		if err != nil {
			// something more fundamental has gone wrong.
			return nil, err
		}
		if txStatus == nil {
			logger.Info("transaction still not included", "attempt", i+1, "max_attempts", attempts)
			continue
		}

		if err := txStatus.Err(); err != nil {
			logger.Error("transaction landed on chain but failed", "height", txStatus.Height, "error", err.Error())
			return txStatus, err
		}

		logger.Info("transaction landed on chain", "height", txStatus.Height, "gas_used", txStatus.GasUsed)
		return txStatus, nil
	}

	err := fmt.Errorf("%w: %s after %d attempts", ErrNotIncluded, txHash, attempts)
	logger.Error("polling finished", "error", err.Error())
	return nil, err
}

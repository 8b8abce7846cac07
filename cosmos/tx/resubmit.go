package tx

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/tessellated-io/blobtx/log"
)

// SubmitFunc fetches account state, signs and broadcasts, returning the tx hash.
type SubmitFunc func(ctx context.Context) (string, error)

// RetryOnStaleSequence re-runs submit while the node rejects it for a stale sequence. Every attempt re-runs
// the whole closure, so each one signs over freshly fetched account state. Other failures return immediately.
// submit runs at most attempts times, and at least once.
func RetryOnStaleSequence(ctx context.Context, attempts uint, delay time.Duration, logger *log.Logger, submit SubmitFunc) (string, error) {
	// retry-go treats zero attempts as unlimited.
	if attempts == 0 {
		attempts = 1
	}

	var txHash string

	err := retry.Do(
		func() error {
			var err error
			txHash, err = submit(ctx)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsStaleSequenceError),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("sequence was stale, resubmitting with fresh account state", "attempt", attempt+1, "max_attempts", attempts, "error", err.Error())
		}),
	)
	if err != nil {
		return "", err
	}
	return txHash, nil
}

package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/log"
)

// AccountFetcher reads a signer's account number and sequence.
type AccountFetcher struct {
	clients rpc.ClientFactory
	logger  *log.Logger
}

func NewAccountFetcher(clients rpc.ClientFactory, logger *log.Logger) *AccountFetcher {
	return &AccountFetcher{
		clients: clients,
		logger:  logger,
	}
}

// Fetch makes a single request for the account. Every failure other than cancellation is reported as
// ErrAccountNotFound, since the caller cannot sign either way.
func (af *AccountFetcher) Fetch(ctx context.Context, network *chains.Network, address string) (*AccountState, error) {
	logger := af.logger.With("chain_id", network.ChainID, "address", address)

	client, err := af.clients(network)
	if err != nil {
		logger.Warn("unable to reach node for account lookup", "error", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrAccountNotFound, err)
	}
	defer client.Close()

	account, err := client.Account(ctx, address)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if errors.Is(err, rpc.ErrNotFound) {
			logger.Info("account does not exist on chain, it may need funding")
		} else {
			logger.Warn("failed to fetch account", "error", err.Error())
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrAccountNotFound, address, err)
	}

	logger.Debug("fetched account", "account_number", account.AccountNumber, "sequence", account.Sequence)
	return &AccountState{
		Address:       address,
		AccountNumber: account.AccountNumber,
		Sequence:      account.Sequence,
	}, nil
}

package tx

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/log"
	"github.com/tessellated-io/blobtx/wallet"
)

const (
	defaultPollAttempts = 20
	defaultPollDelay    = 3 * time.Second
)

// Submitter runs the whole pipeline for one network: connect the wallet, estimate, sign, broadcast.
type Submitter struct {
	network *chains.Network
	signer  wallet.Signer
	clients rpc.ClientFactory

	accounts    *AccountFetcher
	estimator   *GasEstimator
	assembler   *Assembler
	broadcaster *Broadcaster

	// Optional
	locker   *AddressLocker
	gasPrice *sdkmath.LegacyDec

	memo          string
	gasAdjustment sdkmath.LegacyDec
	sender        TxSender
	pollAttempts  uint
	pollDelay     time.Duration

	logger *log.Logger
}

type SubmitterOption func(*Submitter)

// WithAddressSerialization makes submissions from the same address wait for each other.
func WithAddressSerialization() SubmitterOption {
	return func(s *Submitter) {
		s.locker = NewAddressLocker()
	}
}

// WithGasPrice overrides the network's average gas price when suggesting fees.
func WithGasPrice(gasPrice sdkmath.LegacyDec) SubmitterOption {
	return func(s *Submitter) {
		s.gasPrice = &gasPrice
	}
}

func WithMemo(memo string) SubmitterOption {
	return func(s *Submitter) {
		s.memo = memo
	}
}

func WithGasAdjustment(gasAdjustment sdkmath.LegacyDec) SubmitterOption {
	return func(s *Submitter) {
		s.gasAdjustment = gasAdjustment
	}
}

// WithSender broadcasts through sender instead of the wallet.
func WithSender(sender TxSender) SubmitterOption {
	return func(s *Submitter) {
		s.sender = sender
	}
}

func WithPolling(attempts uint, delay time.Duration) SubmitterOption {
	return func(s *Submitter) {
		s.pollAttempts = attempts
		s.pollDelay = delay
	}
}

func NewSubmitter(
	network *chains.Network,
	signer wallet.Signer,
	clients rpc.ClientFactory,
	logger *log.Logger,
	opts ...SubmitterOption,
) *Submitter {
	s := &Submitter{
		network: network,
		signer:  signer,
		clients: clients,

		memo:          DefaultMemo,
		gasAdjustment: DefaultGasAdjustmentDec(),
		sender:        signer,
		pollAttempts:  defaultPollAttempts,
		pollDelay:     defaultPollDelay,

		logger: logger.ApplyPrefix(fmt.Sprintf("[%s]", network.ChainID)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.accounts = NewAccountFetcher(clients, s.logger)
	s.estimator = NewGasEstimator(clients, s.gasAdjustment, s.logger)
	s.assembler = NewAssembler(signer, s.accounts, s.memo, s.logger)
	s.broadcaster = NewBroadcaster(s.sender, s.logger)
	return s
}

func (s *Submitter) Network() *chains.Network {
	return s.network
}

// Connect suggests the network to the wallet and enables it.
func (s *Submitter) Connect(ctx context.Context) error {
	if err := s.signer.SuggestChain(ctx, s.network.ChainInfo()); err != nil {
		return err
	}
	return s.signer.Enable(ctx, s.network.ChainID)
}

func (s *Submitter) Disconnect(ctx context.Context) error {
	return s.signer.Disable(ctx)
}

func (s *Submitter) Accounts(ctx context.Context) ([]wallet.Account, error) {
	return s.signer.Accounts(ctx, s.network.ChainID)
}

// Account fetches the sender's current account state.
func (s *Submitter) Account(ctx context.Context, sender string) (*AccountState, error) {
	return s.accounts.Fetch(ctx, s.network, sender)
}

// Simulate returns the adjusted gas the messages need.
func (s *Submitter) Simulate(ctx context.Context, sender string, msgs []codec.Message, feeCoins sdk.Coins) (uint64, error) {
	account, err := s.accounts.Fetch(ctx, s.network, sender)
	if err != nil {
		return 0, err
	}
	return s.estimator.Estimate(ctx, s.network, account, msgs, feeCoins)
}

// PrepareFee simulates the messages and prices the result. If the node's answer is unusable, the caller's
// fallback is used instead; a fee is never silently zero.
func (s *Submitter) PrepareFee(ctx context.Context, sender string, msgs []codec.Message, fallback *txtypes.Fee) (*txtypes.Fee, error) {
	var feeCoins sdk.Coins
	if fallback != nil {
		feeCoins = fallback.Amount
	}

	gasWanted, err := s.Simulate(ctx, sender, msgs, feeCoins)
	if errors.Is(err, ErrInvalidGasResponse) {
		if fallback == nil || fallback.GasLimit == 0 {
			return nil, err
		}
		s.logger.Warn("falling back to the caller's fee", "gas_limit", fallback.GasLimit, "error", err.Error())
		return fallback, nil
	} else if err != nil {
		return nil, err
	}

	gasPrice, err := s.suggestedGasPrice()
	if err != nil {
		return nil, err
	}
	return SuggestFee(gasWanted, s.network.NativeToken, gasPrice), nil
}

// SendMessages signs and broadcasts the messages. A nil fee or zero gas limit is estimated first.
func (s *Submitter) SendMessages(ctx context.Context, sender string, msgs []codec.Message, fee *txtypes.Fee) (string, error) {
	return s.submit(ctx, sender, msgs, fee, nil)
}

// SendBlob signs the messages, wraps them with the blobs and broadcasts.
func (s *Submitter) SendBlob(ctx context.Context, sender string, msgs []codec.Message, fee *txtypes.Fee, blobs ...[]byte) (string, error) {
	if len(blobs) == 0 {
		return "", ErrNoBlobs
	}
	return s.submit(ctx, sender, msgs, fee, blobs)
}

// WaitForInclusion polls until the transaction lands in a block.
func (s *Submitter) WaitForInclusion(ctx context.Context, txHash string) (*rpc.TxResponse, error) {
	client, err := s.clients(s.network)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return PollInclusion(ctx, client, txHash, s.pollAttempts, s.pollDelay, s.logger)
}

// Private helpers

func (s *Submitter) submit(ctx context.Context, sender string, msgs []codec.Message, fee *txtypes.Fee, blobs [][]byte) (string, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, sender)
		if err != nil {
			return "", err
		}
		defer unlock()
	}

	if fee == nil || fee.GasLimit == 0 {
		var err error
		fee, err = s.PrepareFee(ctx, sender, msgs, fee)
		if err != nil {
			return "", err
		}
	}

	var signedTx *SignedTx
	var err error
	if len(blobs) > 0 {
		signedTx, err = s.assembler.SignAsBlob(ctx, s.network, sender, msgs, fee, blobs...)
	} else {
		signedTx, err = s.assembler.Sign(ctx, s.network, sender, msgs, fee)
	}
	if err != nil {
		return "", err
	}

	return s.broadcaster.Broadcast(ctx, s.network.ChainID, signedTx.Bytes)
}

func (s *Submitter) suggestedGasPrice() (sdkmath.LegacyDec, error) {
	if s.gasPrice != nil {
		return *s.gasPrice, nil
	}
	return GasPriceFromFloat(s.network.GasPrices.Average)
}

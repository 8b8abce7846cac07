package wallet

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/crypto"
	"github.com/tessellated-io/blobtx/log"
)

const (
	keyAlgo        = "secp256k1"
	requestTimeout = 30 * time.Second
)

// ApprovalFunc decides whether a signing request goes ahead. Returning an error declines it.
type ApprovalFunc func(ctx context.Context, chainID, signer string, signDoc *txtypes.SignDoc) error

// AutoApprove approves every request.
func AutoApprove(_ context.Context, _, _ string, _ *txtypes.SignDoc) error {
	return nil
}

// LocalWallet is an in-process Signer over a single mnemonic-derived key, for development and tests.
type LocalWallet struct {
	name    string
	keyPair crypto.BytesSigner
	approve ApprovalFunc

	lock      sync.Mutex
	suggested map[string]chains.ChainInfo
	enabled   map[string]bool

	log *log.Logger
}

// Ensure that LocalWallet implements Signer
var _ Signer = (*LocalWallet)(nil)

// NewLocalWallet makes a wallet over the key pair, asking approve before every signature.
func NewLocalWallet(name string, keyPair crypto.BytesSigner, approve ApprovalFunc, log *log.Logger) *LocalWallet {
	if approve == nil {
		approve = AutoApprove
	}

	return &LocalWallet{
		name:    name,
		keyPair: keyPair,
		approve: approve,

		suggested: make(map[string]chains.ChainInfo),
		enabled:   make(map[string]bool),

		log: log.ApplyPrefix("🔐"),
	}
}

func (w *LocalWallet) SuggestChain(ctx context.Context, chainInfo chains.ChainInfo) error {
	if chainInfo.ChainID == "" {
		return fmt.Errorf("%w: chain info has no chain id", ErrUnknownChain)
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	w.suggested[chainInfo.ChainID] = chainInfo
	w.log.Debug("chain suggested", "chain_id", chainInfo.ChainID, "rest", chainInfo.Rest)
	return nil
}

func (w *LocalWallet) Enable(ctx context.Context, chainID string) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if _, ok := w.suggested[chainID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChain, chainID)
	}
	w.enabled[chainID] = true
	w.log.Info("chain enabled", "chain_id", chainID)
	return nil
}

func (w *LocalWallet) Disable(ctx context.Context) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.enabled = make(map[string]bool)
	w.log.Info("all chains disabled")
	return nil
}

func (w *LocalWallet) Accounts(ctx context.Context, chainID string) ([]Account, error) {
	chainInfo, err := w.enabledChain(chainID)
	if err != nil {
		return nil, err
	}

	return []Account{
		{
			Address: w.keyPair.GetAddress(chainInfo.Bech32Config.Bech32PrefixAccAddr),
			Algo:    keyAlgo,
			PubKey:  w.keyPair.GetPublicKey().Bytes(),
		},
	}, nil
}

func (w *LocalWallet) Key(ctx context.Context, chainID string) (*Key, error) {
	chainInfo, err := w.enabledChain(chainID)
	if err != nil {
		return nil, err
	}

	pubKey := w.keyPair.GetPublicKey()
	return &Key{
		Name:          w.name,
		Algo:          keyAlgo,
		PubKey:        pubKey.Bytes(),
		Address:       sdk.AccAddress(pubKey.Address()).Bytes(),
		Bech32Address: w.keyPair.GetAddress(chainInfo.Bech32Config.Bech32PrefixAccAddr),
	}, nil
}

func (w *LocalWallet) SignDirect(ctx context.Context, chainID, signer string, signDoc *txtypes.SignDoc) (*DirectSignResponse, error) {
	chainInfo, err := w.enabledChain(chainID)
	if err != nil {
		return nil, err
	}

	address := w.keyPair.GetAddress(chainInfo.Bech32Config.Bech32PrefixAccAddr)
	if signer != address {
		return nil, fmt.Errorf("%w: signer %s is not held by this wallet", ErrRequestRejected, signer)
	}
	if signDoc.ChainId != chainID {
		return nil, fmt.Errorf("%w: sign doc is for chain %s, not %s", ErrRequestRejected, signDoc.ChainId, chainID)
	}

	if err := w.approve(ctx, chainID, signer, signDoc); err != nil {
		w.log.Info("signing request declined", "chain_id", chainID, "signer", signer, "error", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrRequestRejected, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signBytes, err := signDoc.Marshal()
	if err != nil {
		return nil, err
	}
	signature, err := w.keyPair.SignBytes(signBytes)
	if err != nil {
		return nil, err
	}
	w.log.Debug("signed document", "chain_id", chainID, "account_number", signDoc.AccountNumber)

	return &DirectSignResponse{
		Signed: signDoc,
		Signature: StdSignature{
			PubKey: PubKey{
				Type:  "tendermint/PubKeySecp256k1",
				Value: base64.StdEncoding.EncodeToString(w.keyPair.GetPublicKey().Bytes()),
			},
			Signature: base64.StdEncoding.EncodeToString(signature),
		},
	}, nil
}

func (w *LocalWallet) SendTx(ctx context.Context, chainID string, txBytes []byte, mode BroadcastMode) ([]byte, error) {
	chainInfo, err := w.enabledChain(chainID)
	if err != nil {
		return nil, err
	}

	client := rpc.NewRestClient(chainInfo.Rest, requestTimeout, w.log)
	defer client.Close()

	txHash, err := rpc.SendTx(ctx, client, txBytes, mode.ToProto())
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(txHash)
}

// Private helpers

func (w *LocalWallet) enabledChain(chainID string) (chains.ChainInfo, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if !w.enabled[chainID] {
		return chains.ChainInfo{}, fmt.Errorf("%w: %s", ErrChainNotEnabled, chainID)
	}
	return w.suggested[chainID], nil
}

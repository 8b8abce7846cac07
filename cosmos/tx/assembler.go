package tx

import (
	"context"
	"errors"
	"fmt"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/coding"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/log"
	"github.com/tessellated-io/blobtx/wallet"
)

// DefaultMemo tags transactions with the application that built them.
const DefaultMemo = "Sent via Explorer.nubit.org"

// Assembler builds a signing document, has the external signer sign it, and reassembles the result.
type Assembler struct {
	signer   wallet.Signer
	accounts *AccountFetcher
	memo     string

	logger *log.Logger
}

func NewAssembler(signer wallet.Signer, accounts *AccountFetcher, memo string, logger *log.Logger) *Assembler {
	return &Assembler{
		signer:   signer,
		accounts: accounts,
		memo:     memo,

		logger: logger,
	}
}

// Sign returns a signed TxRaw for the messages.
func (a *Assembler) Sign(
	ctx context.Context,
	network *chains.Network,
	sender string,
	msgs []codec.Message,
	fee *txtypes.Fee,
) (*SignedTx, error) {
	return a.sign(ctx, network, sender, msgs, fee, nil)
}

// SignAsBlob returns a signed TxRaw wrapped in a BlobTx carrying the blobs.
func (a *Assembler) SignAsBlob(
	ctx context.Context,
	network *chains.Network,
	sender string,
	msgs []codec.Message,
	fee *txtypes.Fee,
	blobs ...[]byte,
) (*SignedTx, error) {
	if len(blobs) == 0 {
		return nil, ErrNoBlobs
	}
	// Nothing is signed for a blob the node would refuse.
	for i, blob := range blobs {
		if _, err := codec.DecodeBlob(blob); err != nil {
			return nil, fmt.Errorf("blob %d: %w", i, err)
		}
	}
	return a.sign(ctx, network, sender, msgs, fee, blobs)
}

func (a *Assembler) sign(
	ctx context.Context,
	network *chains.Network,
	sender string,
	msgs []codec.Message,
	fee *txtypes.Fee,
	blobs [][]byte,
) (*SignedTx, error) {
	chainID := network.ChainID
	logger := a.logger.With("chain_id", chainID, "sender", sender)

	// Account state is fetched fresh, a guessed sequence would be rejected by the node.
	account, err := a.accounts.Fetch(ctx, network, sender)
	if err != nil {
		return nil, err
	}

	// The public key is only ever taken from the signer.
	key, err := a.signer.Key(ctx, chainID)
	if err != nil {
		return nil, signerError(ctx, err)
	}
	pubKey, err := codec.NewSecp256k1PubKey(key.PubKey)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := codec.EncodeTxBody(codec.NewTxBody(msgs, a.memo))
	if err != nil {
		return nil, err
	}

	signerInfo := codec.NewSignerInfo(pubKey, signing.SignMode_SIGN_MODE_DIRECT, account.Sequence)
	authInfoBytes, err := codec.EncodeAuthInfo(codec.NewAuthInfo([]*txtypes.SignerInfo{signerInfo}, fee))
	if err != nil {
		return nil, err
	}

	signDoc := codec.NewSignDoc(bodyBytes, authInfoBytes, chainID, account.AccountNumber)
	logger.Debug("requesting signature", "account_number", account.AccountNumber, "sequence", account.Sequence)

	// Blocks until the user answers or the caller gives up.
	response, err := a.signer.SignDirect(ctx, chainID, sender, signDoc)
	if err != nil {
		logger.Info("signer did not sign", "error", err.Error())
		return nil, signerError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateSignResponse(response, signDoc); err != nil {
		return nil, err
	}

	signature, err := coding.DecodeSignature(response.Signature.Signature)
	if err != nil {
		return nil, err
	}
	logger.Debug("received signature", "signature", coding.PayloadFingerprint(signature))

	// Reassemble from exactly the bytes that were signed.
	signed := response.Signed
	txRaw := codec.NewTxRaw(signed.BodyBytes, signed.AuthInfoBytes, signature)
	txBytes, err := codec.EncodeTxRaw(txRaw)
	if err != nil {
		return nil, err
	}

	signedTx := &SignedTx{
		Raw:     txRaw,
		SignDoc: signed,
		Bytes:   txBytes,
	}

	if len(blobs) > 0 {
		blobTxBytes, err := codec.EncodeBlobTx(codec.NewBlobTx(txBytes, blobs...))
		if err != nil {
			return nil, err
		}
		signedTx.Bytes = blobTxBytes
		signedTx.Blob = true
	}

	logger.Info("✍️ signed transaction", "tx_hash", signedTx.Hash(), "blob", signedTx.Blob, "num_blobs", len(blobs))
	return signedTx, nil
}

// Private helpers

// signerError marks only a user's refusal as a rejection. Cancellation and wallet failures pass through.
func signerError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, wallet.ErrRequestRejected) {
		return fmt.Errorf("%w: %w", ErrSigningRejected, err)
	}
	return err
}

// The signer may adjust the fee, but it must sign for the same chain and account.
func validateSignResponse(response *wallet.DirectSignResponse, requested *txtypes.SignDoc) error {
	if response == nil || response.Signed == nil {
		return fmt.Errorf("%w: signer returned no signed document", ErrSigningRejected)
	}

	signed := response.Signed
	if signed.ChainId != requested.ChainId {
		return fmt.Errorf("%w: signer signed for chain %s, requested %s", ErrSigningRejected, signed.ChainId, requested.ChainId)
	}
	if signed.AccountNumber != requested.AccountNumber {
		return fmt.Errorf("%w: signer signed for account number %d, requested %d", ErrSigningRejected, signed.AccountNumber, requested.AccountNumber)
	}
	return nil
}

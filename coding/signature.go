package coding

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// SignatureLength is the size of a compact secp256k1 signature (R || S).
const SignatureLength = 64

// DecodeSignature converts a base64 signature, as returned by a wallet, into the raw bytes carried in TxRaw.
// The payload passes through its hex form, which is validated before decoding. Unpadded base64 is accepted
// because some wallets strip the padding.
func DecodeSignature(encoded string) ([]byte, error) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return nil, errorsmod.Wrap(ErrInvalidSignatureEncoding, "empty signature")
	}

	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(trimmed)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidSignatureEncoding, "signature is not base64: %s", err)
		}
	}

	return DecodeSignatureHex(hex.EncodeToString(raw))
}

// DecodeSignatureHex decodes a bare hex signature and checks it is exactly SignatureLength bytes. A 0x prefix
// is rejected.
func DecodeSignatureHex(in string) ([]byte, error) {
	if trimHexPrefix(in) != in {
		return nil, errorsmod.Wrap(ErrInvalidSignatureEncoding, "hex signature must not carry a 0x prefix")
	}
	if len(in)%2 != 0 {
		return nil, errorsmod.Wrapf(ErrInvalidSignatureEncoding, "odd length hex signature: %d characters", len(in))
	}

	signature, err := hex.DecodeString(in)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidSignatureEncoding, "signature is not hex: %s", err)
	}

	if len(signature) != SignatureLength {
		return nil, errorsmod.Wrapf(ErrInvalidSignatureEncoding, "expected %d signature bytes, got %d", SignatureLength, len(signature))
	}

	return signature, nil
}

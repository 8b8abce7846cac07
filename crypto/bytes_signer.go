package crypto

import cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

// BytesSigner holds key material on behalf of a wallet. Callers hand it sign doc bytes, never the key.
type BytesSigner interface {
	// GetAddress renders the signer's address with a bech32 prefix.
	GetAddress(prefix string) string
	// SignBytes returns a 64 byte compact signature over sha256(msg).
	SignBytes(msg []byte) ([]byte, error)
	GetPublicKey() cryptotypes.PubKey
}

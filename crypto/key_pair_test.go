package crypto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/crypto"
)

// Well known test mnemonic, never holds funds.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewCosmosKeyPairFromMnemonic(t *testing.T) {
	keyPair, err := crypto.NewCosmosKeyPairFromMnemonic(testMnemonic)
	require.NoError(t, err)

	require.Equal(t, "cosmos19rl4cm2hmr8afy4kldpxz3fka4jguq0auqdal4", keyPair.GetAddress("cosmos"))
	require.Len(t, keyPair.GetPublicKey().Bytes(), 33)
}

func TestNewKeyPairFromMnemonic_PrefixAndCoinType(t *testing.T) {
	cosmosKey, err := crypto.NewKeyPairFromMnemonic(testMnemonic, 118)
	require.NoError(t, err)
	otherKey, err := crypto.NewKeyPairFromMnemonic(testMnemonic, 60)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(cosmosKey.GetAddress("celestia"), "celestia1"))
	require.NotEqual(t, cosmosKey.GetPublicKey().Bytes(), otherKey.GetPublicKey().Bytes())
}

func TestNewKeyPairFromMnemonic_Invalid(t *testing.T) {
	_, err := crypto.NewKeyPairFromMnemonic("not a real mnemonic", 118)
	require.ErrorIs(t, err, crypto.ErrInvalidMnemonic)
}

func TestKeyPair_SignBytes(t *testing.T) {
	keyPair, err := crypto.NewCosmosKeyPairFromMnemonic(testMnemonic)
	require.NoError(t, err)

	message := []byte("sign doc bytes")
	signature, err := keyPair.SignBytes(message)
	require.NoError(t, err)
	require.Len(t, signature, 64)
	require.True(t, keyPair.GetPublicKey().VerifySignature(message, signature))
}

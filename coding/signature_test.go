package coding_test

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/coding"
)

func testSignature() []byte {
	signature := make([]byte, coding.SignatureLength)
	for i := range signature {
		signature[i] = byte(i * 7)
	}
	return signature
}

func TestDecodeSignature_RoundTrip(t *testing.T) {
	signature := testSignature()

	decoded, err := coding.DecodeSignature(base64.StdEncoding.EncodeToString(signature))
	require.NoError(t, err)
	require.Equal(t, signature, decoded)
}

func TestDecodeSignature_Unpadded(t *testing.T) {
	signature := testSignature()

	decoded, err := coding.DecodeSignature(base64.RawStdEncoding.EncodeToString(signature))
	require.NoError(t, err)
	require.Equal(t, signature, decoded)
}

func TestDecodeSignature_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"not base64": "!!!not-base64!!!",
		"too short":  base64.StdEncoding.EncodeToString([]byte{0x01, 0x02}),
		"too long":   base64.StdEncoding.EncodeToString(make([]byte, coding.SignatureLength+1)),
	}

	for name, in := range cases {
		_, err := coding.DecodeSignature(in)
		require.Error(t, err, name)
		require.True(t, errors.Is(err, coding.ErrInvalidSignatureEncoding), name)
	}
}

func TestDecodeSignatureHex(t *testing.T) {
	signature := testSignature()

	decoded, err := coding.DecodeSignatureHex(hex.EncodeToString(signature))
	require.NoError(t, err)
	require.Equal(t, signature, decoded)

	// Odd length
	_, err = coding.DecodeSignatureHex(hex.EncodeToString(signature)[1:])
	require.ErrorIs(t, err, coding.ErrInvalidSignatureEncoding)

	// Not hex
	_, err = coding.DecodeSignatureHex(strings.Repeat("zz", coding.SignatureLength))
	require.ErrorIs(t, err, coding.ErrInvalidSignatureEncoding)

	// Prefixed
	_, err = coding.DecodeSignatureHex("0x" + hex.EncodeToString(signature))
	require.ErrorIs(t, err, coding.ErrInvalidSignatureEncoding)
	_, err = coding.DecodeSignatureHex("0X" + hex.EncodeToString(signature))
	require.ErrorIs(t, err, coding.ErrInvalidSignatureEncoding)
}

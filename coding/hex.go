package coding

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHex decodes a hex string, tolerating a 0x prefix.
func DecodeHex(in string) ([]byte, error) {
	return hex.DecodeString(trimHexPrefix(in))
}

func NormalizeBytesToHex(input []byte) string {
	return strings.ToLower("0x" + hex.EncodeToString(input))
}

// PayloadFingerprint pretty prints a hex payload in an identifiable and succint way.
func PayloadFingerprint(payload []byte) string {
	if len(payload) < 8 {
		return NormalizeMaybeEmptyBytes(payload)
	}

	return fmt.Sprintf("[%s...%s]", hex.EncodeToString(payload[0:4]), hex.EncodeToString(payload[len(payload)-4:]))
}

// Returns an empty byte slice rather than no output for empty byte arrays
func NormalizeMaybeEmptyBytes(bytes []byte) string {
	if len(bytes) > 0 {
		return hex.EncodeToString(bytes)
	}
	return "[]"
}

func trimHexPrefix(in string) string {
	if strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X") {
		return in[2:]
	}
	return in
}

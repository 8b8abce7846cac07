package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/blobtx/coding"
	"github.com/tessellated-io/blobtx/cosmos/codec"
)

const (
	flagMsg  = "msg"
	flagBlob = "blob"
)

// parseMessages reads type_url=base64_value pairs.
func parseMessages(raw []string) ([]codec.Message, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --%s is required", flagMsg)
	}

	msgs := make([]codec.Message, 0, len(raw))
	for _, entry := range raw {
		typeURL, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(typeURL, "/") {
			return nil, fmt.Errorf("invalid --%s %q, expected /type.Url=base64", flagMsg, entry)
		}

		bz, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s value for %s: %w", flagMsg, typeURL, err)
		}
		msgs = append(msgs, codec.NewMessage(typeURL, bz))
	}
	return msgs, nil
}

// parseBlobs reads namespace_sub_id_hex=file pairs into encoded blobs.
func parseBlobs(raw []string) ([][]byte, error) {
	blobs := make([][]byte, 0, len(raw))
	for _, entry := range raw {
		namespace, file, ok := strings.Cut(entry, "=")
		if !ok || file == "" {
			return nil, fmt.Errorf("invalid --%s %q, expected namespace_hex=file", flagBlob, entry)
		}

		subID, err := coding.DecodeHex(namespace)
		if err != nil {
			return nil, fmt.Errorf("invalid namespace %q: %w", namespace, err)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		blob, err := codec.NewBlob(subID, data)
		if err != nil {
			return nil, err
		}
		bz, err := codec.EncodeBlob(blob)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, bz)
	}
	return blobs, nil
}

// decodeInput accepts hex (optionally 0x prefixed) or standard base64.
func decodeInput(input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if bz, err := coding.DecodeHex(input); err == nil {
		return bz, nil
	}
	bz, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return nil, errors.New("input is neither hex nor base64")
	}
	return bz, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

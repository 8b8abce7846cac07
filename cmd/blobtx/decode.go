package main

import (
	"fmt"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/spf13/cobra"
	"github.com/tessellated-io/blobtx/arrays"
	"github.com/tessellated-io/blobtx/coding"
	"github.com/tessellated-io/blobtx/cosmos/codec"
)

type decodedMessage struct {
	TypeURL string `json:"type_url"`
	Size    int    `json:"size"`
}

type decodedBlob struct {
	NamespaceVersion uint8  `json:"namespace_version"`
	NamespaceID      string `json:"namespace_id"`
	ShareVersion     uint8  `json:"share_version"`
	Signer           string `json:"signer,omitempty"`
	Size             int    `json:"size"`
}

type decodedTx struct {
	Hash       string           `json:"hash"`
	Blob       bool             `json:"blob"`
	Memo       string           `json:"memo"`
	Messages   []decodedMessage `json:"messages"`
	Fee        string           `json:"fee"`
	GasLimit   uint64           `json:"gas_limit"`
	Sequences  []uint64         `json:"sequences"`
	Signatures int              `json:"signatures"`
	Blobs      []decodedBlob    `json:"blobs,omitempty"`
}

func decodeCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:         "decode [hex or base64 tx bytes]",
		Short:       "Decode a signed transaction or blob transaction",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := decodeInput(args[0])
			if err != nil {
				return err
			}

			decoded, err := decodeTx(bz)
			if err != nil {
				return err
			}
			return printJSON(cmd, decoded)
		},
	}
}

func decodeTx(bz []byte) (*decodedTx, error) {
	decoded := &decodedTx{Hash: codec.TxHashHex(bz)}

	txBytes := bz
	if codec.IsBlobTx(bz) {
		blobTx, err := codec.DecodeBlobTx(bz)
		if err != nil {
			return nil, err
		}

		decoded.Blob = true
		txBytes = blobTx.Tx
		for i, encoded := range blobTx.Blobs {
			blob, err := codec.DecodeBlob(encoded)
			if err != nil {
				return nil, fmt.Errorf("blob %d: %w", i, err)
			}
			summary := decodedBlob{
				NamespaceVersion: blob.Namespace().Version(),
				NamespaceID:      coding.NormalizeBytesToHex(blob.Namespace().ID()),
				ShareVersion:     blob.ShareVersion(),
				Size:             len(blob.Data()),
			}
			if signer := blob.Signer(); len(signer) > 0 {
				summary.Signer = coding.NormalizeBytesToHex(signer)
			}
			decoded.Blobs = append(decoded.Blobs, summary)
		}
	}

	txRaw, err := codec.DecodeTxRaw(txBytes)
	if err != nil {
		return nil, err
	}
	body, err := codec.DecodeTxBody(txRaw.BodyBytes)
	if err != nil {
		return nil, err
	}
	authInfo, err := codec.DecodeAuthInfo(txRaw.AuthInfoBytes)
	if err != nil {
		return nil, err
	}

	decoded.Memo = body.Memo
	decoded.Messages = arrays.Map(body.Messages, func(msg *codectypes.Any) decodedMessage {
		message := codec.MessageFromAny(msg)
		return decodedMessage{TypeURL: message.TypeURL, Size: len(message.Value)}
	})
	decoded.Signatures = len(txRaw.Signatures)
	for _, signerInfo := range authInfo.SignerInfos {
		decoded.Sequences = append(decoded.Sequences, signerInfo.Sequence)
	}
	if authInfo.Fee != nil {
		decoded.Fee = authInfo.Fee.Amount.String()
		decoded.GasLimit = authInfo.Fee.GasLimit
	}
	return decoded, nil
}

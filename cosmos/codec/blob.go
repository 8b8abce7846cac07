package codec

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/celestiaorg/go-square/v2/share"
	sqtx "github.com/celestiaorg/go-square/v2/tx"
)

// BlobTx wraps a signed TxRaw together with the blobs it pays for. Blobs holds each blob's protobuf encoding.
type BlobTx struct {
	Tx     []byte
	Blobs  [][]byte
	TypeID string
}

// NewBlobTx wraps tx bytes and encoded blobs, tagging the result as a blob transaction.
func NewBlobTx(tx []byte, blobs ...[]byte) *BlobTx {
	return &BlobTx{
		Tx:     tx,
		Blobs:  blobs,
		TypeID: BlobTxTypeID,
	}
}

// NewBlob creates a share version 0 blob in the version 0 namespace with the given sub ID.
func NewBlob(namespaceSubID, data []byte) (*share.Blob, error) {
	namespace, err := share.NewV0Namespace(namespaceSubID)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "namespace: %s", err)
	}

	blob, err := share.NewV0Blob(namespace, data)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "blob: %s", err)
	}
	return blob, nil
}

// NewSignedBlob creates a share version 1 blob, which commits to the address of its signer.
func NewSignedBlob(namespaceSubID, data, signer []byte) (*share.Blob, error) {
	namespace, err := share.NewV0Namespace(namespaceSubID)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "namespace: %s", err)
	}

	blob, err := share.NewV1Blob(namespace, data, signer)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "blob: %s", err)
	}
	return blob, nil
}

func EncodeBlob(blob *share.Blob) ([]byte, error) {
	if blob == nil {
		return nil, errorsmod.Wrap(ErrMalformedMessage, "cannot encode nil blob")
	}

	bz, err := blob.Marshal()
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "failed to encode blob: %s", err)
	}
	return bz, nil
}

// DecodeBlob parses and validates an encoded blob, including its namespace and signer.
func DecodeBlob(bz []byte) (*share.Blob, error) {
	blob, err := share.UnmarshalBlob(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "failed to decode blob: %s", err)
	}
	return blob, nil
}

// EncodeBlobTx validates every blob before wrapping. Only the BLOB type id is supported.
func EncodeBlobTx(blobTx *BlobTx) ([]byte, error) {
	if blobTx == nil {
		return nil, errorsmod.Wrap(ErrMalformedMessage, "cannot encode nil blob tx")
	}
	if blobTx.TypeID != BlobTxTypeID {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "unsupported blob tx type id %q", blobTx.TypeID)
	}
	if len(blobTx.Tx) == 0 {
		return nil, errorsmod.Wrap(ErrMalformedMessage, "blob tx carries no transaction")
	}
	if len(blobTx.Blobs) == 0 {
		return nil, errorsmod.Wrap(ErrMalformedMessage, "blob tx carries no blobs")
	}

	blobs := make([]*share.Blob, 0, len(blobTx.Blobs))
	for i, encoded := range blobTx.Blobs {
		blob, err := share.UnmarshalBlob(encoded)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrMalformedMessage, "blob %d: %s", i, err)
		}
		blobs = append(blobs, blob)
	}

	bz, err := sqtx.MarshalBlobTx(blobTx.Tx, blobs...)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "failed to encode blob tx: %s", err)
	}
	return bz, nil
}

// DecodeBlobTx rejects anything that is not a BLOB tagged transaction with valid blobs.
func DecodeBlobTx(bz []byte) (*BlobTx, error) {
	decoded, isBlobTx, err := sqtx.UnmarshalBlobTx(bz)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "failed to decode blob tx: %s", err)
	}
	if !isBlobTx {
		return nil, errorsmod.Wrap(ErrMalformedMessage, "not a blob tx")
	}

	blobTx := &BlobTx{
		Tx:     decoded.Tx,
		Blobs:  make([][]byte, 0, len(decoded.Blobs)),
		TypeID: BlobTxTypeID,
	}
	for i, blob := range decoded.Blobs {
		encoded, err := blob.Marshal()
		if err != nil {
			return nil, errorsmod.Wrapf(ErrMalformedMessage, "blob %d: %s", i, err)
		}
		blobTx.Blobs = append(blobTx.Blobs, encoded)
	}
	return blobTx, nil
}

// IsBlobTx reports whether the bytes decode as a BlobTx carrying the BLOB type id.
func IsBlobTx(bz []byte) bool {
	blobTx, err := DecodeBlobTx(bz)
	return err == nil && len(blobTx.Tx) > 0
}

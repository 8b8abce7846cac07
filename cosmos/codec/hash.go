package codec

import (
	"encoding/hex"

	"github.com/cometbft/cometbft/crypto/tmhash"
)

// TxHash returns the hash a node reports for submitted bytes. Blob transactions are identified by the
// hash of the TxRaw they wrap.
func TxHash(txBytes []byte) []byte {
	if blobTx, err := DecodeBlobTx(txBytes); err == nil && blobTx.TypeID == BlobTxTypeID && len(blobTx.Tx) > 0 {
		return tmhash.Sum(blobTx.Tx)
	}
	return tmhash.Sum(txBytes)
}

// TxHashHex is TxHash as lowercase hex.
func TxHashHex(txBytes []byte) string {
	return hex.EncodeToString(TxHash(txBytes))
}

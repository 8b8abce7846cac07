package codec

import (
	"reflect"

	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	gogoproto "github.com/cosmos/gogoproto/proto"
)

// Constructors. Omitted fields take their protobuf defaults rather than failing.

// NewSecp256k1PubKey wraps a compressed secp256k1 key into the Any used by SignerInfo.
func NewSecp256k1PubKey(key []byte) (*codectypes.Any, error) {
	value, err := (&secp256k1.PubKey{Key: key}).Marshal()
	if err != nil {
		return nil, err
	}

	return &codectypes.Any{
		TypeUrl: Secp256k1PubKeyTypeURL,
		Value:   value,
	}, nil
}

// Secp256k1KeyFromPubKey extracts the raw compressed key from a public key Any.
func Secp256k1KeyFromPubKey(pubKey *codectypes.Any) ([]byte, error) {
	if pubKey == nil {
		return nil, errorsmod.Wrap(ErrMalformedMessage, "missing public key")
	}
	if pubKey.TypeUrl != Secp256k1PubKeyTypeURL {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "unsupported public key type: %s", pubKey.TypeUrl)
	}

	key, err := decode[secp256k1.PubKey](pubKey.Value, "secp256k1 public key")
	if err != nil {
		return nil, err
	}
	return key.Key, nil
}

// NewFee builds a fee. A nil amount is an empty fee.
func NewFee(amount sdk.Coins, gasLimit uint64) *txtypes.Fee {
	return &txtypes.Fee{
		Amount:   amount,
		GasLimit: gasLimit,
	}
}

// NewSignerInfo builds a single-signature SignerInfo. A nil public key is left empty, which the node
// tolerates during simulation.
func NewSignerInfo(pubKey *codectypes.Any, mode signing.SignMode, sequence uint64) *txtypes.SignerInfo {
	return &txtypes.SignerInfo{
		PublicKey: pubKey,
		ModeInfo: &txtypes.ModeInfo{
			Sum: &txtypes.ModeInfo_Single_{
				Single: &txtypes.ModeInfo_Single{Mode: mode},
			},
		},
		Sequence: sequence,
	}
}

// NewAuthInfo builds an AuthInfo. A nil fee becomes an empty fee.
func NewAuthInfo(signerInfos []*txtypes.SignerInfo, fee *txtypes.Fee) *txtypes.AuthInfo {
	if fee == nil {
		fee = NewFee(nil, 0)
	}

	return &txtypes.AuthInfo{
		SignerInfos: signerInfos,
		Fee:         fee,
	}
}

// NewTxBody builds a body from opaque messages and a memo.
func NewTxBody(messages []Message, memo string) *txtypes.TxBody {
	var anys []*codectypes.Any
	for _, message := range messages {
		anys = append(anys, message.ToAny())
	}

	return &txtypes.TxBody{
		Messages: anys,
		Memo:     memo,
	}
}

// NewSignDoc builds the document a SIGN_MODE_DIRECT signer commits to.
func NewSignDoc(bodyBytes, authInfoBytes []byte, chainID string, accountNumber uint64) *txtypes.SignDoc {
	return &txtypes.SignDoc{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}
}

// NewTxRaw builds the broadcastable form of a signed transaction.
func NewTxRaw(bodyBytes, authInfoBytes []byte, signatures ...[]byte) *txtypes.TxRaw {
	return &txtypes.TxRaw{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		Signatures:    signatures,
	}
}

// Encoding

func EncodePubKey(pubKey *codectypes.Any) ([]byte, error) {
	return encode(pubKey, "public key")
}

func EncodeFee(fee *txtypes.Fee) ([]byte, error) {
	return encode(fee, "fee")
}

func EncodeSignerInfo(signerInfo *txtypes.SignerInfo) ([]byte, error) {
	return encode(signerInfo, "signer info")
}

func EncodeAuthInfo(authInfo *txtypes.AuthInfo) ([]byte, error) {
	return encode(authInfo, "auth info")
}

func EncodeTxBody(body *txtypes.TxBody) ([]byte, error) {
	return encode(body, "tx body")
}

func EncodeSignDoc(signDoc *txtypes.SignDoc) ([]byte, error) {
	return encode(signDoc, "sign doc")
}

func EncodeTxRaw(txRaw *txtypes.TxRaw) ([]byte, error) {
	return encode(txRaw, "tx raw")
}

// Decoding

func DecodePubKey(bz []byte) (*codectypes.Any, error) {
	return decode[codectypes.Any](bz, "public key")
}

func DecodeFee(bz []byte) (*txtypes.Fee, error) {
	return decode[txtypes.Fee](bz, "fee")
}

func DecodeSignerInfo(bz []byte) (*txtypes.SignerInfo, error) {
	return decode[txtypes.SignerInfo](bz, "signer info")
}

func DecodeAuthInfo(bz []byte) (*txtypes.AuthInfo, error) {
	return decode[txtypes.AuthInfo](bz, "auth info")
}

func DecodeTxBody(bz []byte) (*txtypes.TxBody, error) {
	return decode[txtypes.TxBody](bz, "tx body")
}

func DecodeSignDoc(bz []byte) (*txtypes.SignDoc, error) {
	return decode[txtypes.SignDoc](bz, "sign doc")
}

func DecodeTxRaw(bz []byte) (*txtypes.TxRaw, error) {
	return decode[txtypes.TxRaw](bz, "tx raw")
}

// Helpers

func encode(message gogoproto.Message, noun string) ([]byte, error) {
	if message == nil || reflect.ValueOf(message).IsNil() {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "cannot encode nil %s", noun)
	}

	bz, err := gogoproto.Marshal(message)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "failed to encode %s: %s", noun, err)
	}
	return bz, nil
}

// decode never returns a partially populated message.
func decode[T any, PT interface {
	*T
	gogoproto.Message
}](bz []byte, noun string) (*T, error) {
	message := PT(new(T))
	if err := gogoproto.Unmarshal(bz, message); err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedMessage, "failed to decode %s: %s", noun, err)
	}
	return (*T)(message), nil
}

package tx_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/cosmos/codec"
	"github.com/tessellated-io/blobtx/cosmos/rpc"
	"github.com/tessellated-io/blobtx/log"
	"github.com/tessellated-io/blobtx/wallet"
)

const (
	testChainID = "mocha-4"
	testSender  = "celestia1sender"
)

// fakeNode serves the REST endpoints the pipeline uses.
type fakeNode struct {
	lock sync.Mutex

	accountStatus  int
	accountBody    string
	simulateStatus int
	simulateBody   string
	broadcastCode  uint32
	broadcastLog   string

	simulated   [][]byte
	broadcasted [][]byte
}

func newFakeNode(t *testing.T) (*fakeNode, *chains.Network) {
	t.Helper()

	node := &fakeNode{
		accountStatus:  http.StatusOK,
		accountBody:    `{"account":{"@type":"/cosmos.auth.v1beta1.BaseAccount","address":"celestia1sender","account_number":"42","sequence":"7"}}`,
		simulateStatus: http.StatusOK,
		simulateBody:   `{"gas_info":{"gas_wanted":"0","gas_used":"100000"}}`,
	}

	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	network := &chains.Network{
		ChainName:           "celestia-mocha",
		ChainID:             testChainID,
		PrettyName:          "Mocha",
		AccountPrefix:       "celestia",
		CoinType:            118,
		RestUrl:             server.URL,
		NativeToken:         "utia",
		NativeTokenDisplay:  "TIA",
		NativeTokenDecimals: 6,
		GasPrices:           chains.GasPrices{Low: 0.01, Average: 0.02, High: 0.1},
	}
	return node, network
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/cosmos/auth/v1beta1/accounts/"):
		w.WriteHeader(n.accountStatus)
		_, _ = w.Write([]byte(n.accountBody))

	case r.URL.Path == "/cosmos/tx/v1beta1/simulate":
		n.simulated = append(n.simulated, readTxBytes(r))
		w.WriteHeader(n.simulateStatus)
		_, _ = w.Write([]byte(n.simulateBody))

	case r.URL.Path == "/cosmos/tx/v1beta1/txs":
		txBytes := readTxBytes(r)
		n.broadcasted = append(n.broadcasted, txBytes)
		txHash := strings.ToUpper(codec.TxHashHex(txBytes))
		_, _ = fmt.Fprintf(w, `{"tx_response":{"txhash":%q,"codespace":"sdk","code":%d,"raw_log":%q}}`, txHash, n.broadcastCode, n.broadcastLog)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (n *fakeNode) lastSimulated() []byte {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.simulated[len(n.simulated)-1]
}

func (n *fakeNode) numSimulated() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.simulated)
}

func (n *fakeNode) lastBroadcasted() []byte {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.broadcasted[len(n.broadcasted)-1]
}

func (n *fakeNode) numBroadcasted() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.broadcasted)
}

func readTxBytes(r *http.Request) []byte {
	var body struct {
		TxBytes string `json:"tx_bytes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil
	}
	txBytes, _ := base64.StdEncoding.DecodeString(body.TxBytes)
	return txBytes
}

func restClients(t *testing.T) rpc.ClientFactory {
	t.Helper()

	clients, err := rpc.NewClientFactory(rpc.FactoryOptions{Transport: rpc.TransportRest}, log.Discard())
	require.NoError(t, err)
	return clients
}

// fakeSigner is a scripted wallet.Signer.
type fakeSigner struct {
	pubKey    []byte
	signature string

	keyErr  error
	signErr error

	// Applied to the signed document before it is returned.
	mutate func(*txtypes.SignDoc) *txtypes.SignDoc
	// Runs while the signing request is pending.
	onSign func()

	sendHash []byte
	sendErr  error

	signedDocs [][]byte
	sent       [][]byte
}

var _ wallet.Signer = (*fakeSigner)(nil)

func newFakeSigner() *fakeSigner {
	signature := make([]byte, 64)
	for i := range signature {
		signature[i] = byte(i + 1)
	}

	pubKey := make([]byte, 33)
	pubKey[0] = 0x02

	return &fakeSigner{
		pubKey:    pubKey,
		signature: base64.StdEncoding.EncodeToString(signature),
	}
}

func (s *fakeSigner) SuggestChain(ctx context.Context, chainInfo chains.ChainInfo) error {
	return nil
}

func (s *fakeSigner) Enable(ctx context.Context, chainID string) error {
	return nil
}

func (s *fakeSigner) Disable(ctx context.Context) error {
	return nil
}

func (s *fakeSigner) Accounts(ctx context.Context, chainID string) ([]wallet.Account, error) {
	return []wallet.Account{{Address: testSender, Algo: "secp256k1", PubKey: s.pubKey}}, nil
}

func (s *fakeSigner) Key(ctx context.Context, chainID string) (*wallet.Key, error) {
	if s.keyErr != nil {
		return nil, s.keyErr
	}
	return &wallet.Key{Name: "fake", Algo: "secp256k1", PubKey: s.pubKey, Bech32Address: testSender}, nil
}

func (s *fakeSigner) SignDirect(ctx context.Context, chainID, signer string, signDoc *txtypes.SignDoc) (*wallet.DirectSignResponse, error) {
	encoded, err := signDoc.Marshal()
	if err != nil {
		return nil, err
	}
	s.signedDocs = append(s.signedDocs, encoded)

	if s.onSign != nil {
		s.onSign()
	}
	if s.signErr != nil {
		return nil, s.signErr
	}

	signed := signDoc
	if s.mutate != nil {
		signed = s.mutate(signDoc)
	}
	return &wallet.DirectSignResponse{
		Signed:    signed,
		Signature: wallet.StdSignature{Signature: s.signature},
	}, nil
}

func (s *fakeSigner) SendTx(ctx context.Context, chainID string, txBytes []byte, mode wallet.BroadcastMode) ([]byte, error) {
	s.sent = append(s.sent, txBytes)
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	if s.sendHash != nil {
		return s.sendHash, nil
	}
	return codec.TxHash(txBytes), nil
}

func testMessages() []codec.Message {
	return []codec.Message{
		codec.NewMessage("/cosmos.bank.v1beta1.MsgSend", []byte{0x0a, 0x03, 'a', 'b', 'c'}),
	}
}

// testBlob is an encoded share version 0 blob.
func testBlob(t *testing.T, data string) []byte {
	t.Helper()

	blob, err := codec.NewBlob([]byte("nubit"), []byte(data))
	require.NoError(t, err)
	bz, err := codec.EncodeBlob(blob)
	require.NoError(t, err)
	return bz
}

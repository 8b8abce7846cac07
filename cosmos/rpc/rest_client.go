package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/tessellated-io/blobtx/log"
	"github.com/tessellated-io/blobtx/util"
)

// restClient talks to a node's gRPC-gateway REST endpoint.
type restClient struct {
	baseUrl    string
	httpClient *http.Client

	log *log.Logger
}

// Ensure that restClient implements NodeClient
var _ NodeClient = (*restClient)(nil)

// NewRestClient makes a NodeClient against the given REST base url.
func NewRestClient(baseUrl string, timeout time.Duration, log *log.Logger) NodeClient {
	return &restClient{
		baseUrl:    strings.TrimSuffix(baseUrl, "/"),
		httpClient: &http.Client{Timeout: timeout},

		log: log,
	}
}

// Wire shapes

type accountResponse struct {
	Account struct {
		Address       string      `json:"address"`
		AccountNumber json.Number `json:"account_number"`
		Sequence      json.Number `json:"sequence"`

		// Vesting accounts nest their base account.
		BaseVestingAccount *struct {
			BaseAccount struct {
				Address       string      `json:"address"`
				AccountNumber json.Number `json:"account_number"`
				Sequence      json.Number `json:"sequence"`
			} `json:"base_account"`
		} `json:"base_vesting_account"`
	} `json:"account"`
}

type simulateRequest struct {
	TxBytes string `json:"tx_bytes"`
}

type simulateResponse struct {
	GasInfo *struct {
		GasUsed json.Number `json:"gas_used"`
	} `json:"gas_info"`
}

type broadcastRequest struct {
	TxBytes string `json:"tx_bytes"`
	Mode    string `json:"mode"`
}

type txResponseEnvelope struct {
	TxResponse *struct {
		TxHash    string      `json:"txhash"`
		Height    json.Number `json:"height"`
		Code      uint32      `json:"code"`
		Codespace string      `json:"codespace"`
		RawLog    string      `json:"raw_log"`
		GasWanted json.Number `json:"gas_wanted"`
		GasUsed   json.Number `json:"gas_used"`
	} `json:"tx_response"`
}

type gatewayError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NodeClient interface

func (rc *restClient) Account(ctx context.Context, address string) (*AccountData, error) {
	url := fmt.Sprintf("%s/cosmos/auth/v1beta1/accounts/%s", rc.baseUrl, address)

	body, err := rc.makeRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var response accountResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	account := response.Account
	if account.BaseVestingAccount != nil {
		base := account.BaseVestingAccount.BaseAccount
		account.Address = base.Address
		account.AccountNumber = base.AccountNumber
		account.Sequence = base.Sequence
	}

	accountNumber, err := util.ParseUint64(account.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: account number: %w", ErrInvalidResponse, err)
	}

	// Sequence is omitted for accounts that have never signed.
	var sequence uint64
	if account.Sequence != "" {
		sequence, err = util.ParseUint64(account.Sequence)
		if err != nil {
			return nil, fmt.Errorf("%w: sequence: %w", ErrInvalidResponse, err)
		}
	}

	return &AccountData{
		Address:       account.Address,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}, nil
}

func (rc *restClient) Simulate(ctx context.Context, txBytes []byte) (uint64, error) {
	url := fmt.Sprintf("%s/cosmos/tx/v1beta1/simulate", rc.baseUrl)
	request := simulateRequest{
		TxBytes: base64.StdEncoding.EncodeToString(txBytes),
	}

	body, err := rc.makeRequest(ctx, http.MethodPost, url, request)
	if err != nil {
		return 0, err
	}

	var response simulateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if response.GasInfo == nil {
		return 0, fmt.Errorf("%w: no gas info in simulation response", ErrInvalidResponse)
	}

	gasUsed, err := util.ParseUint64(response.GasInfo.GasUsed)
	if err != nil {
		return 0, fmt.Errorf("%w: gas used: %w", ErrInvalidResponse, err)
	}
	return gasUsed, nil
}

func (rc *restClient) Broadcast(ctx context.Context, txBytes []byte, mode txtypes.BroadcastMode) (*TxResponse, error) {
	url := fmt.Sprintf("%s/cosmos/tx/v1beta1/txs", rc.baseUrl)
	request := broadcastRequest{
		TxBytes: base64.StdEncoding.EncodeToString(txBytes),
		Mode:    mode.String(),
	}

	body, err := rc.makeRequest(ctx, http.MethodPost, url, request)
	if err != nil {
		return nil, err
	}
	return parseTxResponse(body)
}

func (rc *restClient) TxStatus(ctx context.Context, txHash string) (*TxResponse, error) {
	url := fmt.Sprintf("%s/cosmos/tx/v1beta1/txs/%s", rc.baseUrl, txHash)

	body, err := rc.makeRequest(ctx, http.MethodGet, url, nil)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return parseTxResponse(body)
}

func (rc *restClient) Close() error {
	rc.httpClient.CloseIdleConnections()
	return nil
}

// Private helpers

func parseTxResponse(body []byte) (*TxResponse, error) {
	var envelope txResponseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if envelope.TxResponse == nil {
		return nil, fmt.Errorf("%w: no tx_response in body", ErrInvalidResponse)
	}

	raw := envelope.TxResponse
	height, err := util.ParseInt64(raw.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: height: %w", ErrInvalidResponse, err)
	}
	gasWanted, err := util.ParseInt64(raw.GasWanted)
	if err != nil {
		return nil, fmt.Errorf("%w: gas wanted: %w", ErrInvalidResponse, err)
	}
	gasUsed, err := util.ParseInt64(raw.GasUsed)
	if err != nil {
		return nil, fmt.Errorf("%w: gas used: %w", ErrInvalidResponse, err)
	}

	return &TxResponse{
		TxHash:    raw.TxHash,
		Height:    height,
		Code:      raw.Code,
		Codespace: raw.Codespace,
		RawLog:    raw.RawLog,
		GasWanted: gasWanted,
		GasUsed:   gasUsed,
	}, nil
}

func (rc *restClient) makeRequest(ctx context.Context, method, url string, payload any) ([]byte, error) {
	rc.log.Debug("making request to node", "method", method, "url", url)

	var requestBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		requestBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := rc.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		rc.log.Debug("received http 200 response from node", "url", url)
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		var gatewayErr gatewayError
		if err := json.Unmarshal(data, &gatewayErr); err == nil && gatewayErr.Message != "" {
			return nil, fmt.Errorf("node returned http %d: %s", resp.StatusCode, gatewayErr.Message)
		}
		return nil, fmt.Errorf("node returned http %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
}

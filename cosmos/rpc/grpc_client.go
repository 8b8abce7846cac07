package rpc

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	"github.com/tessellated-io/blobtx/grpc"
	"github.com/tessellated-io/blobtx/log"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcClient talks to a node's gRPC query and tx services.
type grpcClient struct {
	conn *grpclib.ClientConn
	cdc  *codec.ProtoCodec

	authClient authtypes.QueryClient
	txClient   txtypes.ServiceClient

	log *log.Logger
}

// Ensure that grpcClient implements NodeClient
var _ NodeClient = (*grpcClient)(nil)

// NewGrpcClient dials the node and makes a NodeClient over the connection.
func NewGrpcClient(nodeGrpcUri string, log *log.Logger) (NodeClient, error) {
	conn, err := grpc.GetGrpcConnection(nodeGrpcUri)
	if err != nil {
		log.Error("unable to connect to gRPC", "grpc_url", nodeGrpcUri, "error", err.Error())
		return nil, err
	}

	return NewGrpcClientWithConn(conn, log), nil
}

// NewGrpcClientWithConn makes a NodeClient over an existing connection, which it takes ownership of.
func NewGrpcClientWithConn(conn *grpclib.ClientConn, log *log.Logger) NodeClient {
	return &grpcClient{
		conn: conn,
		cdc:  codec.NewProtoCodec(accountInterfaceRegistry()),

		authClient: authtypes.NewQueryClient(conn),
		txClient:   txtypes.NewServiceClient(conn),

		log: log,
	}
}

// accountInterfaceRegistry knows the account and key types an auth query can return.
func accountInterfaceRegistry() codectypes.InterfaceRegistry {
	registry := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	vestingtypes.RegisterInterfaces(registry)
	return registry
}

// NodeClient interface

func (r *grpcClient) Account(ctx context.Context, address string) (*AccountData, error) {
	// Make a query
	query := &authtypes.QueryAccountRequest{Address: address}
	res, err := r.authClient.Account(ctx, query)
	if err != nil {
		return nil, mapStatusError(err)
	}

	// Deserialize response
	var account sdk.AccountI
	if err := r.cdc.UnpackAny(res.Account, &account); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return &AccountData{
		Address:       account.GetAddress().String(),
		AccountNumber: account.GetAccountNumber(),
		Sequence:      account.GetSequence(),
	}, nil
}

func (r *grpcClient) Simulate(ctx context.Context, txBytes []byte) (uint64, error) {
	query := &txtypes.SimulateRequest{
		TxBytes: txBytes,
	}
	simulationResponse, err := r.txClient.Simulate(ctx, query)
	if err != nil {
		return 0, mapStatusError(err)
	}
	if simulationResponse.GasInfo == nil {
		return 0, fmt.Errorf("%w: no gas info in simulation response", ErrInvalidResponse)
	}

	return simulationResponse.GasInfo.GasUsed, nil
}

func (r *grpcClient) Broadcast(ctx context.Context, txBytes []byte, mode txtypes.BroadcastMode) (*TxResponse, error) {
	query := &txtypes.BroadcastTxRequest{
		Mode:    mode,
		TxBytes: txBytes,
	}

	response, err := r.txClient.BroadcastTx(ctx, query)
	if err != nil {
		return nil, mapStatusError(err)
	}
	if response.TxResponse == nil {
		return nil, fmt.Errorf("%w: no tx response in broadcast response", ErrInvalidResponse)
	}

	return fromSdkTxResponse(response.TxResponse), nil
}

func (r *grpcClient) TxStatus(ctx context.Context, txHash string) (*TxResponse, error) {
	request := &txtypes.GetTxRequest{Hash: txHash}
	response, err := r.txClient.GetTx(ctx, request)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if response.TxResponse == nil {
		return nil, fmt.Errorf("%w: no tx response in tx query", ErrInvalidResponse)
	}

	return fromSdkTxResponse(response.TxResponse), nil
}

func (r *grpcClient) Close() error {
	return r.conn.Close()
}

// Private helpers

func fromSdkTxResponse(response *sdk.TxResponse) *TxResponse {
	return &TxResponse{
		TxHash:    response.TxHash,
		Height:    response.Height,
		Code:      response.Code,
		Codespace: response.Codespace,
		RawLog:    response.RawLog,
		GasWanted: response.GasWanted,
		GasUsed:   response.GasUsed,
	}
}

func mapStatusError(err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, status.Convert(err).Message())
	}
	return err
}

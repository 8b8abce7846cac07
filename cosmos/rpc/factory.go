package rpc

import (
	"fmt"
	"time"

	"github.com/tessellated-io/blobtx/chains"
	"github.com/tessellated-io/blobtx/log"
)

const (
	TransportRest = "rest"
	TransportGrpc = "grpc"
)

// ClientFactory opens a NodeClient for a network. Callers close the client when their call is done.
type ClientFactory func(network *chains.Network) (NodeClient, error)

// FactoryOptions configures the clients a factory makes.
type FactoryOptions struct {
	Transport  string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
}

// NewClientFactory makes clients over the configured transport, retrying reads when more than one attempt is
// configured.
func NewClientFactory(options FactoryOptions, logger *log.Logger) (ClientFactory, error) {
	if options.Transport != TransportRest && options.Transport != TransportGrpc {
		return nil, fmt.Errorf("unknown node transport %q, expected %q or %q", options.Transport, TransportRest, TransportGrpc)
	}

	return func(network *chains.Network) (NodeClient, error) {
		clientLogger := logger.With("chain_id", network.ChainID, "transport", options.Transport)

		var client NodeClient
		switch options.Transport {
		case TransportGrpc:
			if network.GrpcUrl == "" {
				return nil, fmt.Errorf("network %s has no grpc url", network.ChainID)
			}

			var err error
			client, err = NewGrpcClient(network.GrpcUrl, clientLogger)
			if err != nil {
				return nil, err
			}
		default:
			if network.RestUrl == "" {
				return nil, fmt.Errorf("network %s has no rest url", network.ChainID)
			}
			client = NewRestClient(network.RestUrl, options.Timeout, clientLogger)
		}

		if options.Attempts > 1 {
			client = NewRetryableRpcClient(options.Attempts, options.RetryDelay, client, clientLogger)
		}
		return client, nil
	}, nil
}

// StaticClientFactory always returns the given client. Closing what it hands out leaves the client open.
func StaticClientFactory(client NodeClient) ClientFactory {
	return func(_ *chains.Network) (NodeClient, error) {
		return unclosableClient{client}, nil
	}
}

type unclosableClient struct {
	NodeClient
}

func (unclosableClient) Close() error {
	return nil
}

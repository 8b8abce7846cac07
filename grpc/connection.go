package grpc

import (
	"crypto/tls"
	"crypto/x509"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Blob transactions can be large; allow messages well beyond gRPC's 4MiB default.
const maxMessageSize = 64 * 1024 * 1024

func GetGrpcConnection(grpcUri string) (*grpc.ClientConn, error) {
	transportCredentials, err := transportCredentialsFor(grpcUri)
	if err != nil {
		return nil, err
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(transportCredentials),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize),
		),
	}

	return grpc.NewClient(grpcUri, opts...)
}

// Handle connections using SSL on port 443, plaintext otherwise.
func transportCredentialsFor(grpcUri string) (credentials.TransportCredentials, error) {
	if !strings.HasSuffix(grpcUri, ":443") {
		return insecure.NewCredentials(), nil
	}

	certPool, err := x509.SystemCertPool()
	if err != nil {
		return nil, err
	}

	return credentials.NewTLS(&tls.Config{
		RootCAs:    certPool,
		MinVersion: tls.VersionTLS12,
	}), nil
}

package grpc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransportCredentialsFor(t *testing.T) {
	plaintext, err := transportCredentialsFor("localhost:9090")
	require.NoError(t, err)
	require.Equal(t, "insecure", plaintext.Info().SecurityProtocol)

	secure, err := transportCredentialsFor("grpc.example.com:443")
	require.NoError(t, err)
	require.Equal(t, "tls", secure.Info().SecurityProtocol)
}

func TestGetGrpcConnection_IsLazy(t *testing.T) {
	// NewClient does not dial until the first call, so an unreachable target still yields a connection.
	conn, err := GetGrpcConnection("localhost:1")
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

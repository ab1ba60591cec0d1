package transport

import (
	"context"

	"github.com/hydrakv/hydrakv-go/rpc/common"
)

// IClientTransport is the strategy interface behind the operation
// dispatcher. One logical operation, two physical execution paths: the
// dispatcher builds a validated request and the selected transport turns it
// into the matching HTTP exchange or RPC call. Both implementations must
// produce logically equivalent outcomes for the same request.
//
// Implementations are safe for concurrent use once connected; they are
// stateless message-passing facilities backed by a pooled http.Client or a
// multiplexed gRPC channel.
type IClientTransport interface {
	// Connect initializes the transport with the given configuration.
	Connect(config common.ClientConfig) error
	// Name returns the transport name used in logs, errors and metrics.
	Name() string
	// Execute performs a single validated request against the server.
	// Application-level "not found" outcomes are reported through the
	// response, never as errors.
	Execute(ctx context.Context, req *common.Request) (*common.Response, error)
	// Close releases the transport's network resources.
	Close() error
}

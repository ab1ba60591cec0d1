// Package rpc groups the communication layer of the HydraKV client. It
// translates validated operation requests into exchanges with the server
// over one of two transports.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures used across the client, including the
//     request/response models, client configuration, normalized errors and
//     logging.
//
//   - transport: The transport strategy interface with the two concrete
//     variants (HTTP, gRPC) as subpackages.
//
//   - serializer: Wire codecs (JSON, GOB) for the RPC transport.
//
//   - kvpb: Typed messages and stub for the server's KVService RPC surface.
package rpc

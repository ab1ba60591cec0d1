// Package grpc implements the binary RPC variant of the client transport on
// top of a single gRPC channel. Requests are marshalled into the typed
// messages of rpc/kvpb, carried by the configured serializer codec, and every
// call is bounded by the configured deadline.
//
// Operations that exist only on the server's HTTP API (database lifecycle,
// queue creation, api key renewal) are rejected with an unsupported error;
// the dispatcher routes them to the HTTP transport instead.
package grpc

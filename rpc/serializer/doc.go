// Package serializer provides the pluggable wire codecs for the RPC
// transport. Each implementation encodes the typed messages of rpc/kvpb and
// doubles as a gRPC call codec through its Name method.
//
// Two formats are available: json (default, matches the server's HTTP
// documents) and gob (compact binary).
package serializer

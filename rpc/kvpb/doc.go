// Package kvpb is a hand-maintained mirror of the server's KVService RPC
// schema: the typed request and response messages, the method names, and a
// stub client shaped like generated gRPC code.
//
// The messages are plain structs rather than protoc output so they can be
// carried by any of the pluggable codecs in rpc/serializer. The wire schema
// itself is owned by the server and is out of scope here.
package kvpb

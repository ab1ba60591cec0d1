// Package transport defines the client transport strategy interface and its
// shared instrumentation. The two concrete transports live in the http and
// grpc subpackages; exactly one of them is selected when a client is
// constructed and kept for the client's lifetime.
package transport

// Package cmd implements the command-line interface of the HydraKV client.
// It provides a hierarchical command structure for talking to a HydraKV
// server from the shell.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (get, set, incr, etc.) and the perf benchmark
//   - db: Commands for database lifecycle and api key management
//   - queue: Commands for FiFoLiFo queue operations
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See hydrakv -help for a list of all commands.
package cmd

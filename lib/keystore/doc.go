// Package keystore implements the per-database credential cache of the
// client: a concurrency-safe mapping from database name to api key with an
// explicit get/set surface and JSON file export/import conveniences.
package keystore

// Package http implements the HTTP variant of the client transport. Each
// operation is mapped onto the server's resource paths and structured JSON
// documents; results are normalized into the transport-independent response
// shape. A lazily-created, pooled http.Client is reused for all calls.
package http

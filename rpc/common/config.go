package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Transport selection
// --------------------------------------------------------------------------

// TransportKind identifies which of the two server APIs a client speaks.
// The choice is made once at construction and is fixed for the client's lifetime.
type TransportKind string

const (
	// TransportHTTP selects the JSON/HTTP API of the server.
	TransportHTTP TransportKind = "http"
	// TransportGRPC selects the binary RPC API of the server.
	TransportGRPC TransportKind = "grpc"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// Default values applied by WithDefaults for every zero field.
const (
	DefaultHost            = "127.0.0.1"
	DefaultHTTPPort        = 9191
	DefaultGRPCPort        = 9292
	DefaultGRPCDeadlineSec = 3
	DefaultHTTPTimeoutSec  = 30
	DefaultCodec           = "json"
	DefaultLogLevel        = "info"
)

// ClientConfig holds all configuration parameters for a HydraKV client.
// The struct is treated as immutable once a client has been constructed from it.
type ClientConfig struct {
	// Server address
	Host     string
	HTTPPort int
	GRPCPort int

	// Transport selection (fixed after construction)
	Transport TransportKind

	// Timeouts
	GRPCDeadlineSec int // per-call deadline for the RPC transport
	HTTPTimeoutSec  int // overall request timeout for the HTTP transport

	// TLS settings
	TLS             bool
	TrustedCertFile string // optional PEM file with the server certificate

	// Wire codec for the RPC transport (json, gob)
	Codec string

	// Logging configuration
	LogLevel string

	// Initial per-database api keys, copied into the credential store at construction
	APIKeys map[string]string
}

// WithDefaults returns a copy of the configuration with every zero field
// replaced by its default value.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.HTTPPort == 0 {
		c.HTTPPort = DefaultHTTPPort
	}
	if c.GRPCPort == 0 {
		c.GRPCPort = DefaultGRPCPort
	}
	if c.Transport == "" {
		c.Transport = TransportHTTP
	}
	if c.GRPCDeadlineSec == 0 {
		c.GRPCDeadlineSec = DefaultGRPCDeadlineSec
	}
	if c.HTTPTimeoutSec == 0 {
		c.HTTPTimeoutSec = DefaultHTTPTimeoutSec
	}
	if c.Codec == "" {
		c.Codec = DefaultCodec
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Validate checks the configuration for values a client cannot be built from.
func (c *ClientConfig) Validate() error {
	if c.Transport != TransportHTTP && c.Transport != TransportGRPC {
		return fmt.Errorf("invalid transport %q, must be one of %q, %q", c.Transport, TransportHTTP, TransportGRPC)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTPPort)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port %d", c.GRPCPort)
	}
	return nil
}

// Scheme returns the URL scheme for the HTTP endpoint.
func (c *ClientConfig) Scheme() string {
	if c.TLS {
		return "https"
	}
	return "http"
}

// HTTPBaseURL returns the base URL of the server's HTTP API, without a trailing slash.
func (c *ClientConfig) HTTPBaseURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Host, c.HTTPPort)
}

// GRPCTarget returns the dial target of the server's RPC API.
func (c *ClientConfig) GRPCTarget() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Server")
	addField("Host", c.Host)
	addField("HTTP Port", strconv.Itoa(c.HTTPPort))
	addField("RPC Port", strconv.Itoa(c.GRPCPort))
	addField("TLS", fmt.Sprintf("%t", c.TLS))
	if c.TrustedCertFile != "" {
		addField("Trusted Cert", c.TrustedCertFile)
	}

	addSection("Transport")
	addField("Selected", string(c.Transport))
	addField("RPC Deadline", fmt.Sprintf("%d sec", c.GRPCDeadlineSec))
	addField("HTTP Timeout", fmt.Sprintf("%d sec", c.HTTPTimeoutSec))
	addField("RPC Codec", c.Codec)

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	if len(c.APIKeys) > 0 {
		addSection("API Keys")
		for db := range c.APIKeys {
			addField(db, "********")
		}
	}

	return sb.String()
}

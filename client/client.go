package client

import (
	"context"
	"time"

	"github.com/hydrakv/hydrakv-go/lib/keystore"
	"github.com/hydrakv/hydrakv-go/rpc/common"
	"github.com/hydrakv/hydrakv-go/rpc/transport"
	grpctransport "github.com/hydrakv/hydrakv-go/rpc/transport/grpc"
	httptransport "github.com/hydrakv/hydrakv-go/rpc/transport/http"
)

var logger = common.GetLogger("client")

// Client is the operation dispatcher of the HydraKV client library. For each
// logical operation it resolves the credential, builds a validated request,
// delegates to the selected transport strategy and normalizes the outcome.
//
// A Client is safe for concurrent use. The transport choice is fixed at
// construction; switching transports requires a new Client.
type Client struct {
	config   common.ClientConfig
	strategy transport.IClientTransport
	http     transport.IClientTransport
	keys     *keystore.Store
}

// New creates a Client from the given configuration and verifies that the
// server is reachable. An unreachable or misconfigured server aborts
// construction with a connectivity error; no half-initialized client is
// ever returned.
func New(config common.ClientConfig) (*Client, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := common.SetLogLevel(config.LogLevel); err != nil {
		return nil, err
	}

	// The HTTP transport is always constructed: it carries the probe and
	// the operations without an RPC equivalent.
	httpT := httptransport.NewHTTPClientTransport()
	if err := httpT.Connect(config); err != nil {
		return nil, err
	}

	c := &Client{
		config:   config,
		http:     httpT,
		strategy: httpT,
		keys:     keystore.New(config.APIKeys),
	}

	if config.Transport == common.TransportGRPC {
		grpcT := grpctransport.NewGRPCClientTransport()
		if err := grpcT.Connect(config); err != nil {
			_ = httpT.Close()
			return nil, err
		}
		c.strategy = grpcT
	}

	// Single synchronous reachability check at construction time.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.HTTPTimeoutSec)*time.Second)
	defer cancel()
	if err := c.probe(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	logger.Infof("connected to hydrakv server at %s (%s transport)", config.Host, config.Transport)
	return c, nil
}

// probe issues one call to a deterministic, certainly-nonexistent resource.
// Only reachability matters, not the answer's content.
func (c *Client) probe(ctx context.Context) error {
	_, err := c.http.Execute(ctx, &common.Request{Op: common.OpProbe})
	return err
}

// Close releases the transport handles: pooled HTTP connections and, if the
// RPC transport is selected, the gRPC channel.
func (c *Client) Close() error {
	err := c.http.Close()
	if c.strategy != c.http {
		if serr := c.strategy.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// Config returns the immutable configuration the client was built from.
func (c *Client) Config() common.ClientConfig {
	return c.config
}

// --------------------------------------------------------------------------
// Dispatch helpers
// --------------------------------------------------------------------------

// exec routes a validated request to the selected transport. Operations
// without an RPC equivalent bypass the strategy unconditionally and go over
// HTTP; the dispatcher itself never branches on the configured transport.
func (c *Client) exec(ctx context.Context, req *common.Request) (*common.Response, error) {
	t := c.strategy
	if req.Op.HTTPOnly() {
		t = c.http
	}
	return t.Execute(ctx, req)
}

// resolveAPIKey returns the credential for a database: an explicit argument
// wins over the credential store, which defaults to empty if absent.
func (c *Client) resolveAPIKey(db string, explicit []string) string {
	if len(explicit) > 0 {
		return explicit[0]
	}
	return c.keys.Get(db)
}

// --------------------------------------------------------------------------
// Key-value operations
// --------------------------------------------------------------------------

// Set stores a value under a key. A ttl of 0 means no expiration. An
// explicit apiKey overrides the credential store.
func (c *Client) Set(ctx context.Context, db, key, value string, ttl uint64, apiKey ...string) error {
	req, err := common.NewSetRequest(db, key, value, ttl)
	if err != nil {
		return err
	}
	req.APIKey = c.resolveAPIKey(db, apiKey)
	_, err = c.exec(ctx, req)
	return err
}

// SetNX stores a value only if the key is unset. It reports whether the
// value was stored.
func (c *Client) SetNX(ctx context.Context, db, key, value string, ttl uint64, apiKey ...string) (bool, error) {
	req, err := common.NewSetNXRequest(db, key, value, ttl)
	if err != nil {
		return false, err
	}
	req.APIKey = c.resolveAPIKey(db, apiKey)
	resp, err := c.exec(ctx, req)
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

// Get returns the value for a key. The boolean reports whether the key was
// found; a missing key is a regular outcome, not an error.
func (c *Client) Get(ctx context.Context, db, key string, apiKey ...string) (string, bool, error) {
	req, err := common.NewGetRequest(db, key)
	if err != nil {
		return "", false, err
	}
	req.APIKey = c.resolveAPIKey(db, apiKey)
	resp, err := c.exec(ctx, req)
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

// Incr increments the numeric value of a key by delta (a delta of 0 counts
// as 1) and returns the new value. An unset key starts at 0.
func (c *Client) Incr(ctx context.Context, db, key string, delta int64, apiKey ...string) (int64, error) {
	req, err := common.NewIncrRequest(db, key, delta)
	if err != nil {
		return 0, err
	}
	req.APIKey = c.resolveAPIKey(db, apiKey)
	resp, err := c.exec(ctx, req)
	if err != nil {
		return 0, err
	}
	return resp.Num, nil
}

// Delete removes a key. Deleting a key that was never set is a no-op.
func (c *Client) Delete(ctx context.Context, db, key string, apiKey ...string) error {
	req, err := common.NewDeleteRequest(db, key)
	if err != nil {
		return err
	}
	req.APIKey = c.resolveAPIKey(db, apiKey)
	_, err = c.exec(ctx, req)
	return err
}

// --------------------------------------------------------------------------
// Database lifecycle operations (HTTP only)
// --------------------------------------------------------------------------

// CreateDB creates a database. If the server issues an api key for it, the
// key is captured into the credential store.
func (c *Client) CreateDB(ctx context.Context, name string) error {
	req, err := common.NewDBCreateRequest(name)
	if err != nil {
		return err
	}
	resp, err := c.exec(ctx, req)
	if err != nil {
		return err
	}
	if resp.APIKey != "" {
		c.keys.Set(name, resp.APIKey)
		logger.Debugf("stored server-issued api key for db %s", name)
	}
	return nil
}

// DeleteDB deletes a database and purges its credential store entry.
func (c *Client) DeleteDB(ctx context.Context, name string, apiKey ...string) error {
	req, err := common.NewDBDeleteRequest(name)
	if err != nil {
		return err
	}
	req.APIKey = c.resolveAPIKey(name, apiKey)
	if _, err := c.exec(ctx, req); err != nil {
		return err
	}
	c.keys.Delete(name)
	return nil
}

// RenewAPIKey lets the server rotate the api key of a database. The new key
// replaces the cached one and is returned. Failures are reported as errors,
// never as an empty-string result.
func (c *Client) RenewAPIKey(ctx context.Context, db string) (string, error) {
	req, err := common.NewKeyRenewRequest(db)
	if err != nil {
		return "", err
	}
	req.APIKey = c.keys.Get(db)
	resp, err := c.exec(ctx, req)
	if err != nil {
		return "", err
	}
	c.keys.Set(db, resp.APIKey)
	return resp.APIKey, nil
}

// --------------------------------------------------------------------------
// FiFoLiFo queue operations
// --------------------------------------------------------------------------

// QueueCreate creates a capacity-bounded queue. This operation exists only
// on the HTTP API and bypasses the selected transport.
func (c *Client) QueueCreate(ctx context.Context, name string, limit int) error {
	req, err := common.NewQueueCreateRequest(name, limit)
	if err != nil {
		return err
	}
	_, err = c.exec(ctx, req)
	return err
}

// QueuePush appends a value to a queue.
func (c *Client) QueuePush(ctx context.Context, name, value string) error {
	req, err := common.NewQueuePushRequest(name, value)
	if err != nil {
		return err
	}
	_, err = c.exec(ctx, req)
	return err
}

// QueueDelete removes a queue.
func (c *Client) QueueDelete(ctx context.Context, name string) error {
	req, err := common.NewQueueDeleteRequest(name)
	if err != nil {
		return err
	}
	_, err = c.exec(ctx, req)
	return err
}

// FIFOPop removes and returns the oldest value of a queue. The boolean
// reports whether a value was available; an empty queue is a regular
// outcome, not an error.
func (c *Client) FIFOPop(ctx context.Context, name string) (string, bool, error) {
	req, err := common.NewFIFOPopRequest(name)
	if err != nil {
		return "", false, err
	}
	resp, err := c.exec(ctx, req)
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

// LIFOPop removes and returns the newest value of a queue. The boolean
// reports whether a value was available.
func (c *Client) LIFOPop(ctx context.Context, name string) (string, bool, error) {
	req, err := common.NewLIFOPopRequest(name)
	if err != nil {
		return "", false, err
	}
	resp, err := c.exec(ctx, req)
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

// --------------------------------------------------------------------------
// Credential store conveniences
// --------------------------------------------------------------------------

// APIKeyFor returns the cached api key for a database, empty if none.
func (c *Client) APIKeyFor(db string) string {
	return c.keys.Get(db)
}

// APIKeys returns a copy of the current credential mapping.
func (c *Client) APIKeys() map[string]string {
	return c.keys.Snapshot()
}

// ExportAPIKeys writes the current credential mapping as JSON to path.
func (c *Client) ExportAPIKeys(path string) error {
	return c.keys.ExportFile(path)
}

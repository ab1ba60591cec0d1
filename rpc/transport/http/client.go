package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/hydrakv/hydrakv-go/rpc/common"
	"github.com/hydrakv/hydrakv-go/rpc/transport"
)

var logger = common.GetLogger("transport/http")

// headerAPIKey carries the per-database token; it is absent when no token is
// configured for the database.
const headerAPIKey = "X-API-Key"

// ProbePath is the deterministic, certainly-nonexistent resource used for
// the construction-time reachability check.
const ProbePath = "/db/random4223423"

// NewHTTPClientTransport creates the HTTP variant of the client transport.
func NewHTTPClientTransport() transport.IClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	baseURL    string
	timeout    time.Duration
	tlsConfig  *tls.Config
	client     *http.Client
	clientOnce sync.Once
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	t.baseURL = config.HTTPBaseURL()
	t.timeout = time.Duration(config.HTTPTimeoutSec) * time.Second

	// Trusted certificate material is read eagerly so a bad path fails at
	// construction instead of on the first call.
	if config.TLS && config.TrustedCertFile != "" {
		pem, err := os.ReadFile(config.TrustedCertFile)
		if err != nil {
			return fmt.Errorf("failed to read trusted certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return fmt.Errorf("no certificates found in %s", config.TrustedCertFile)
		}
		t.tlsConfig = &tls.Config{RootCAs: pool}
	}

	return nil
}

func (t *httpClientTransport) Name() string {
	return "http"
}

func (t *httpClientTransport) Execute(ctx context.Context, req *common.Request) (resp *common.Response, err error) {
	start := time.Now()
	defer func() { transport.Observe(t.Name(), req.Op, start, err) }()

	method, path, body := buildCall(req)

	httpResp, raw, err := t.do(ctx, req, method, path, body)
	if err != nil {
		logger.Errorf("%s failed: %v", req.Op, err)
		return nil, err
	}

	resp, err = mapResponse(req.Op, httpResp.StatusCode, raw)
	if err != nil {
		logger.Errorf("%s failed: %v", req.Op, err)
		return nil, err
	}
	return resp, nil
}

func (t *httpClientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	return nil
}

// --------------------------------------------------------------------------
// Call shapes
// --------------------------------------------------------------------------

// buildCall returns the method, resource path and request document for an
// operation. A nil body means the exchange carries headers only.
func buildCall(req *common.Request) (method, path string, body map[string]any) {
	switch req.Op {
	case common.OpProbe:
		return http.MethodGet, ProbePath, nil
	case common.OpDBCreate:
		return http.MethodPost, "/create", map[string]any{"name": req.Name}
	case common.OpDBDelete:
		return http.MethodDelete, "/db/" + req.Name, nil
	case common.OpKeyRenew:
		// The server uses a custom method for token rotation.
		return "UPDATE", "/db/" + req.DB, nil
	case common.OpSet:
		return http.MethodPut, "/db/" + req.DB, kvBody(req)
	case common.OpSetNX:
		return http.MethodPost, "/db/" + req.DB, kvBody(req)
	case common.OpGet:
		return http.MethodPost, "/db/" + req.DB + "/keys", map[string]any{"key": req.Key, "apikey": req.APIKey}
	case common.OpIncr:
		return http.MethodPatch, "/db/" + req.DB, map[string]any{"key": req.Key, "delta": req.Delta, "apikey": req.APIKey}
	case common.OpDelete:
		return http.MethodDelete, "/db/" + req.DB + "/keys", map[string]any{"key": req.Key, "apikey": req.APIKey}
	case common.OpQueueCreate:
		return http.MethodPost, "/fifolifo", map[string]any{"name": req.Name, "limit": req.Limit}
	case common.OpQueuePush:
		return http.MethodPut, "/fifolifo", map[string]any{"name": req.Name, "value": req.Value}
	case common.OpQueueDelete:
		return http.MethodDelete, "/fifolifo", map[string]any{"name": req.Name}
	case common.OpFIFOPop:
		return http.MethodPost, "/fifo", map[string]any{"name": req.Name}
	case common.OpLIFOPop:
		return http.MethodPost, "/lifo", map[string]any{"name": req.Name}
	default:
		return "", "", nil
	}
}

func kvBody(req *common.Request) map[string]any {
	return map[string]any{
		"key":    req.Key,
		"value":  req.Value,
		"ttl":    req.TTL,
		"apikey": req.APIKey,
	}
}

// --------------------------------------------------------------------------
// Exchange
// --------------------------------------------------------------------------

// getClient returns the pooled http client, creating it lazily on first use.
func (t *httpClientTransport) getClient() *http.Client {
	t.clientOnce.Do(func() {
		logger.Debug("creating pooled http client")
		httpTransport := &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig:     t.tlsConfig,
		}
		t.client = &http.Client{
			Transport: httpTransport,
			Timeout:   t.timeout,
		}
	})
	return t.client
}

func (t *httpClientTransport) do(ctx context.Context, req *common.Request, method, path string, body map[string]any) (*http.Response, []byte, error) {
	if method == "" {
		return nil, nil, common.NewUnsupportedError(req.Op, t.Name())
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, common.NewTransportError(req.Op, t.Name(), "failed to encode request document", err)
		}
		reader = bytes.NewReader(data)
	}

	url := t.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, nil, common.NewTransportError(req.Op, t.Name(), "failed to build request", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.APIKey != "" {
		httpReq.Header.Set(headerAPIKey, req.APIKey)
	}

	logger.Debugf("sending %s to %s", method, url)
	httpResp, err := t.getClient().Do(httpReq)
	if err != nil {
		return nil, nil, common.NewConnectivityError(req.Op, t.Name(), err)
	}
	defer func() {
		if err := httpResp.Body.Close(); err != nil {
			logger.Errorf("failed to close response body: %v", err)
		}
	}()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, nil, common.NewTransportError(req.Op, t.Name(), "failed to read response body", err)
	}
	return httpResp, raw, nil
}

// --------------------------------------------------------------------------
// Response mapping
// --------------------------------------------------------------------------

// document is the generic structured response of the HTTP API.
type document struct {
	Value  *string `json:"value"`
	APIKey string  `json:"apikey"`
	Exists *bool   `json:"exists"`
}

func parseDocument(op common.Operation, raw []byte) (*document, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewTransportError(op, "http", "malformed response document", err)
	}
	return &doc, nil
}

// mapResponse normalizes a status code and response document into the
// operation's result shape. Application-level absence (missing key, empty
// queue) is a regular result, never an error.
func mapResponse(op common.Operation, status int, raw []byte) (*common.Response, error) {
	success := status >= 200 && status < 300

	switch op {
	case common.OpProbe:
		// Only reachability matters: the server must answer with a document
		// containing the exists indicator, its value is irrelevant.
		doc, err := parseDocument(op, raw)
		if err != nil {
			return nil, err
		}
		if doc.Exists == nil {
			return nil, common.NewTransportError(op, "http", "response carries no exists indicator", nil)
		}
		return &common.Response{Ok: true}, nil

	case common.OpSet, common.OpQueueCreate, common.OpQueuePush:
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		return &common.Response{Ok: true}, nil

	case common.OpSetNX:
		if status == http.StatusConflict {
			return &common.Response{Ok: false}, nil
		}
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		return &common.Response{Ok: true}, nil

	case common.OpGet:
		if status == http.StatusNotFound {
			return &common.Response{Ok: false}, nil
		}
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		doc, err := parseDocument(op, raw)
		if err != nil {
			return nil, err
		}
		if doc.Value == nil {
			return &common.Response{Ok: false}, nil
		}
		return &common.Response{Ok: true, Value: *doc.Value}, nil

	case common.OpIncr:
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		var doc struct {
			Value int64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, common.NewTransportError(op, "http", "malformed response document", err)
		}
		return &common.Response{Ok: true, Num: doc.Value}, nil

	case common.OpDelete, common.OpDBDelete, common.OpQueueDelete:
		// Deleting something that does not exist is an application-level
		// no-op, not a failure.
		if status == http.StatusNotFound || success {
			return &common.Response{Ok: true}, nil
		}
		return nil, unexpectedStatus(op, status, raw)

	case common.OpDBCreate:
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		doc, err := parseDocument(op, raw)
		if err != nil {
			return nil, err
		}
		return &common.Response{Ok: true, APIKey: doc.APIKey}, nil

	case common.OpKeyRenew:
		if status == http.StatusServiceUnavailable {
			return nil, common.NewAuthError(op, "http", "server is not using api key auth for this database")
		}
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		doc, err := parseDocument(op, raw)
		if err != nil {
			return nil, err
		}
		if doc.APIKey == "" {
			return nil, common.NewTransportError(op, "http", "response carries no api key", nil)
		}
		return &common.Response{Ok: true, APIKey: doc.APIKey}, nil

	case common.OpFIFOPop, common.OpLIFOPop:
		if status == http.StatusNotFound {
			return &common.Response{Ok: false}, nil
		}
		if !success {
			return nil, unexpectedStatus(op, status, raw)
		}
		doc, err := parseDocument(op, raw)
		if err != nil {
			return nil, err
		}
		if doc.Value == nil || *doc.Value == "" {
			return &common.Response{Ok: false}, nil
		}
		return &common.Response{Ok: true, Value: *doc.Value}, nil

	default:
		return nil, common.NewUnsupportedError(op, "http")
	}
}

func unexpectedStatus(op common.Operation, status int, raw []byte) error {
	msg := fmt.Sprintf("unexpected status %d", status)
	if len(raw) > 0 && len(raw) <= 256 {
		msg = fmt.Sprintf("%s: %s", msg, raw)
	}
	return common.NewTransportError(op, "http", msg, nil)
}

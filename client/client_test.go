package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/hydrakv/hydrakv-go/lib/keystore"
	"github.com/hydrakv/hydrakv-go/rpc/common"
)

// fakeTransport records the requests it receives and replays canned
// responses.
type fakeTransport struct {
	name string
	reqs []*common.Request
	resp *common.Response
	err  error
}

func (f *fakeTransport) Connect(config common.ClientConfig) error { return nil }
func (f *fakeTransport) Name() string                             { return f.name }
func (f *fakeTransport) Close() error                             { return nil }

func (f *fakeTransport) Execute(ctx context.Context, req *common.Request) (*common.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &common.Response{Ok: true}, nil
}

// newFakeClient wires a client directly onto fake transports, bypassing the
// construction-time probe.
func newFakeClient(strategy, httpT *fakeTransport, seed map[string]string) *Client {
	return &Client{
		config:   common.ClientConfig{}.WithDefaults(),
		strategy: strategy,
		http:     httpT,
		keys:     keystore.New(seed),
	}
}

// TestManagementRouting tests that operations without an RPC equivalent
// always go over HTTP, even when the RPC transport is selected.
func TestManagementRouting(t *testing.T) {
	strategy := &fakeTransport{name: "grpc"}
	httpT := &fakeTransport{name: "http", resp: &common.Response{Ok: true, APIKey: "issued"}}
	c := newFakeClient(strategy, httpT, nil)
	ctx := context.Background()

	if err := c.CreateDB(ctx, "bench"); err != nil {
		t.Fatalf("create db failed: %v", err)
	}
	if _, err := c.RenewAPIKey(ctx, "bench"); err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if err := c.QueueCreate(ctx, "jobs", 10); err != nil {
		t.Fatalf("queue create failed: %v", err)
	}
	if err := c.DeleteDB(ctx, "bench"); err != nil {
		t.Fatalf("delete db failed: %v", err)
	}

	if len(strategy.reqs) != 0 {
		t.Errorf("management operations reached the %s transport: %+v", strategy.name, strategy.reqs)
	}
	want := []common.Operation{common.OpDBCreate, common.OpKeyRenew, common.OpQueueCreate, common.OpDBDelete}
	if len(httpT.reqs) != len(want) {
		t.Fatalf("http transport saw %d requests, expected %d", len(httpT.reqs), len(want))
	}
	for i, op := range want {
		if httpT.reqs[i].Op != op {
			t.Errorf("request %d = %s, expected %s", i, httpT.reqs[i].Op, op)
		}
	}
}

// TestDataRouting tests that data operations go over the selected strategy.
func TestDataRouting(t *testing.T) {
	strategy := &fakeTransport{name: "grpc"}
	httpT := &fakeTransport{name: "http"}
	c := newFakeClient(strategy, httpT, nil)
	ctx := context.Background()

	if err := c.Set(ctx, "bench", "k", "v", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, _, err := c.Get(ctx, "bench", "k"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, _, err := c.FIFOPop(ctx, "jobs"); err != nil {
		t.Fatalf("fifo pop failed: %v", err)
	}

	if len(httpT.reqs) != 0 {
		t.Errorf("data operations reached the http transport: %+v", httpT.reqs)
	}
	if len(strategy.reqs) != 3 {
		t.Errorf("strategy saw %d requests, expected 3", len(strategy.reqs))
	}
}

// TestCredentialResolution tests the precedence rules of the credential
// store: explicit argument, then stored key, then empty.
func TestCredentialResolution(t *testing.T) {
	strategy := &fakeTransport{name: "http"}
	c := newFakeClient(strategy, strategy, map[string]string{"bench": "stored"})
	ctx := context.Background()

	_ = c.Set(ctx, "bench", "k", "v", 0)
	_ = c.Set(ctx, "bench", "k", "v", 0, "explicit")
	_ = c.Set(ctx, "other", "k", "v", 0)

	got := []string{strategy.reqs[0].APIKey, strategy.reqs[1].APIKey, strategy.reqs[2].APIKey}
	want := []string{"stored", "explicit", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d carried api key %q, expected %q", i, got[i], want[i])
		}
	}
}

// TestCredentialLifecycle tests capture on create, replacement on renew and
// purge on delete.
func TestCredentialLifecycle(t *testing.T) {
	httpT := &fakeTransport{name: "http", resp: &common.Response{Ok: true, APIKey: "issued"}}
	c := newFakeClient(httpT, httpT, nil)
	ctx := context.Background()

	if err := c.CreateDB(ctx, "bench"); err != nil {
		t.Fatalf("create db failed: %v", err)
	}
	if got := c.APIKeyFor("bench"); got != "issued" {
		t.Errorf("after create, stored key = %q, expected %q", got, "issued")
	}

	httpT.resp = &common.Response{Ok: true, APIKey: "rotated"}
	fresh, err := c.RenewAPIKey(ctx, "bench")
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if fresh != "rotated" || c.APIKeyFor("bench") != "rotated" {
		t.Errorf("after renew, key = %q (stored %q), expected %q", fresh, c.APIKeyFor("bench"), "rotated")
	}

	httpT.resp = &common.Response{Ok: true}
	if err := c.DeleteDB(ctx, "bench"); err != nil {
		t.Fatalf("delete db failed: %v", err)
	}
	if got := c.APIKeyFor("bench"); got != "" {
		t.Errorf("after delete, stored key = %q, expected it purged", got)
	}
}

// TestValidationShortCircuit tests that invalid arguments are rejected
// before any transport is involved.
func TestValidationShortCircuit(t *testing.T) {
	strategy := &fakeTransport{name: "http"}
	c := newFakeClient(strategy, strategy, nil)
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"empty db", func() error { return c.Set(ctx, "", "k", "v", 0) }},
		{"empty key", func() error { _, _, err := c.Get(ctx, "bench", ""); return err }},
		{"empty queue name", func() error { return c.QueuePush(ctx, "", "v") }},
		{"nonpositive limit", func() error { return c.QueueCreate(ctx, "jobs", 0) }},
	}

	for _, check := range checks {
		if err := check.call(); !common.IsValidation(err) {
			t.Errorf("%s: expected a validation error, got %v", check.name, err)
		}
	}
	if len(strategy.reqs) != 0 {
		t.Errorf("invalid arguments reached the transport: %+v", strategy.reqs)
	}
}

// TestNewAbortsOnUnreachableServer tests the construction-time probe.
func TestNewAbortsOnUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	config := configFor(t, server.URL)
	server.Close()

	if _, err := New(config); !common.IsConnectivity(err) {
		t.Errorf("expected a connectivity error, got %v", err)
	}
}

// configFor builds a client configuration pointing at an httptest server.
func configFor(t *testing.T, serverURL string) common.ClientConfig {
	t.Helper()
	parsed, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("failed to parse server url: %v", err)
	}
	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		t.Fatalf("failed to parse server port: %v", err)
	}
	return common.ClientConfig{
		Host:      parsed.Hostname(),
		HTTPPort:  port,
		Transport: common.TransportHTTP,
		LogLevel:  "error",
	}
}

// --------------------------------------------------------------------------
// End-to-end lifecycle against an in-memory server
// --------------------------------------------------------------------------

// memServer is a minimal in-memory rendition of the server's HTTP API, just
// enough to drive a full client lifecycle.
type memServer struct {
	mu     sync.Mutex
	dbs    map[string]map[string]string
	keys   map[string]string
	queues map[string][]string
	limits map[string]int
}

func newMemServer() *memServer {
	return &memServer{
		dbs:    map[string]map[string]string{},
		keys:   map[string]string{},
		queues: map[string][]string{},
		limits: map[string]int{},
	}
}

func (s *memServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	str := func(field string) string {
		v, _ := body[field].(string)
		return v
	}

	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/db/random"):
		fmt.Fprint(w, `{"exists":false}`)

	case r.Method == http.MethodPost && r.URL.Path == "/create":
		name := str("name")
		s.dbs[name] = map[string]string{}
		s.keys[name] = "key-" + name
		fmt.Fprintf(w, `{"apikey":%q}`, s.keys[name])

	case strings.HasPrefix(r.URL.Path, "/db/"):
		s.serveDB(w, r, str, body)

	case r.URL.Path == "/fifolifo" && r.Method == http.MethodPost:
		name := str("name")
		s.queues[name] = nil
		s.limits[name] = int(body["limit"].(float64))

	case r.URL.Path == "/fifolifo" && r.Method == http.MethodPut:
		name := str("name")
		if len(s.queues[name]) >= s.limits[name] {
			w.WriteHeader(http.StatusConflict)
			return
		}
		s.queues[name] = append(s.queues[name], str("value"))

	case r.URL.Path == "/fifolifo" && r.Method == http.MethodDelete:
		delete(s.queues, str("name"))
		delete(s.limits, str("name"))

	case r.URL.Path == "/fifo" || r.URL.Path == "/lifo":
		name := str("name")
		q := s.queues[name]
		if len(q) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var v string
		if r.URL.Path == "/fifo" {
			v, s.queues[name] = q[0], q[1:]
		} else {
			v, s.queues[name] = q[len(q)-1], q[:len(q)-1]
		}
		fmt.Fprintf(w, `{"value":%q}`, v)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *memServer) serveDB(w http.ResponseWriter, r *http.Request, str func(string) string, body map[string]any) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/db/"), "/")
	name := parts[0]

	db, exists := s.dbs[name]
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Header.Get("X-API-Key") != s.keys[name] {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	keysResource := len(parts) == 2 && parts[1] == "keys"
	switch {
	case r.Method == http.MethodPut && !keysResource: // set
		db[str("key")] = str("value")

	case r.Method == http.MethodPost && !keysResource: // setnx
		if _, taken := db[str("key")]; taken {
			w.WriteHeader(http.StatusConflict)
			return
		}
		db[str("key")] = str("value")

	case r.Method == http.MethodPost && keysResource: // get
		v, found := db[str("key")]
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"value":%q}`, v)

	case r.Method == http.MethodPatch: // incr
		n, _ := strconv.ParseInt(db[str("key")], 10, 64)
		n += int64(body["delta"].(float64))
		db[str("key")] = strconv.FormatInt(n, 10)
		fmt.Fprintf(w, `{"value":%d}`, n)

	case r.Method == http.MethodDelete && keysResource:
		delete(db, str("key"))

	case r.Method == http.MethodDelete: // delete db
		delete(s.dbs, name)
		delete(s.keys, name)

	case r.Method == "UPDATE": // renew
		s.keys[name] = s.keys[name] + "-r"
		fmt.Fprintf(w, `{"apikey":%q}`, s.keys[name])

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// TestLifecycle drives a full session against the in-memory server: database
// creation with credential capture, the key-value operations, key rotation,
// queue usage and teardown.
func TestLifecycle(t *testing.T) {
	server := httptest.NewServer(newMemServer())
	defer server.Close()

	c, err := New(configFor(t, server.URL))
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.CreateDB(ctx, "bench"); err != nil {
		t.Fatalf("create db failed: %v", err)
	}
	if c.APIKeyFor("bench") != "key-bench" {
		t.Fatalf("issued api key was not captured, store holds %q", c.APIKeyFor("bench"))
	}

	// Key-value roundtrip under the captured credential.
	if err := c.Set(ctx, "bench", "greeting", "hello", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, found, err := c.Get(ctx, "bench", "greeting")
	if err != nil || !found || v != "hello" {
		t.Fatalf("get = (%q, %v, %v), expected (hello, true, nil)", v, found, err)
	}

	// SetNX refuses a taken key and reports it without an error.
	stored, err := c.SetNX(ctx, "bench", "greeting", "other", 0)
	if err != nil {
		t.Fatalf("setnx failed: %v", err)
	}
	if stored {
		t.Error("setnx stored over an existing key")
	}

	// Counters start at zero and return the new value.
	for want := int64(1); want <= 3; want++ {
		n, err := c.Incr(ctx, "bench", "hits", 1)
		if err != nil {
			t.Fatalf("incr failed: %v", err)
		}
		if n != want {
			t.Errorf("incr = %d, expected %d", n, want)
		}
	}

	if err := c.Delete(ctx, "bench", "greeting"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := c.Get(ctx, "bench", "greeting"); found {
		t.Error("key still present after delete")
	}

	// Rotation invalidates the old key server-side; subsequent calls must
	// pick up the replacement transparently.
	if _, err := c.RenewAPIKey(ctx, "bench"); err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if err := c.Set(ctx, "bench", "k", "v", 0); err != nil {
		t.Fatalf("set after rotation failed: %v", err)
	}

	// Queue ordering: fifo pops the oldest, lifo the newest.
	if err := c.QueueCreate(ctx, "jobs", 3); err != nil {
		t.Fatalf("queue create failed: %v", err)
	}
	for _, v := range []string{"a", "b", "c"} {
		if err := c.QueuePush(ctx, "jobs", v); err != nil {
			t.Fatalf("push %q failed: %v", v, err)
		}
	}
	if err := c.QueuePush(ctx, "jobs", "overflow"); err == nil {
		t.Error("push over capacity succeeded")
	}
	if v, _, _ := c.FIFOPop(ctx, "jobs"); v != "a" {
		t.Errorf("fifo pop = %q, expected a", v)
	}
	if v, _, _ := c.LIFOPop(ctx, "jobs"); v != "c" {
		t.Errorf("lifo pop = %q, expected c", v)
	}

	if err := c.QueueDelete(ctx, "jobs"); err != nil {
		t.Fatalf("queue delete failed: %v", err)
	}
	if _, found, err := c.FIFOPop(ctx, "jobs"); err != nil || found {
		t.Errorf("pop on a deleted queue = (%v, %v), expected (false, nil)", found, err)
	}

	if err := c.DeleteDB(ctx, "bench"); err != nil {
		t.Fatalf("delete db failed: %v", err)
	}
}

package grpc

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/hydrakv/hydrakv-go/rpc/common"
	"github.com/hydrakv/hydrakv-go/rpc/kvpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// fakeConn stands in for a client channel and records what the stub invokes.
type fakeConn struct {
	method string
	args   any
	out    any
	err    error
	ctx    context.Context
}

func (f *fakeConn) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	f.ctx = ctx
	f.method = method
	f.args = args
	if f.err != nil {
		return f.err
	}
	reflect.ValueOf(reply).Elem().Set(reflect.ValueOf(f.out).Elem())
	return nil
}

func (f *fakeConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	panic("streaming is not part of the service")
}

func newTestTransport(conn *fakeConn) *grpcClientTransport {
	return &grpcClientTransport{
		stub:     kvpb.NewKVServiceClient(conn),
		deadline: 3 * time.Second,
	}
}

// TestConcurrentConnect tests that independent transports can be set up
// from multiple goroutines: the codec registry is touched only at package
// load, never during Connect.
func TestConcurrentConnect(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		codecName := "json"
		if i%2 == 1 {
			codecName = "gob"
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			tr := NewGRPCClientTransport()
			if err := tr.Connect(common.ClientConfig{Codec: name}.WithDefaults()); err != nil {
				t.Errorf("connect with codec %s failed: %v", name, err)
				return
			}
			if err := tr.Close(); err != nil {
				t.Errorf("close failed: %v", err)
			}
		}(codecName)
	}
	wg.Wait()

	for _, name := range []string{"json", "gob"} {
		if encoding.GetCodec(name) == nil {
			t.Errorf("codec %s is not registered", name)
		}
	}
}

// TestMethodDispatch tests that every operation invokes the right service
// method with the right message and maps the reply back.
func TestMethodDispatch(t *testing.T) {
	tests := []struct {
		name       string
		req        *common.Request
		out        any
		wantMethod string
		wantArgs   any
		wantResp   *common.Response
	}{
		{
			name:       "set",
			req:        &common.Request{Op: common.OpSet, DB: "bench", APIKey: "tok", Key: "k1", Value: "v1", TTL: 5},
			out:        &kvpb.SetResponse{Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodSet),
			wantArgs:   &kvpb.SetRequest{Db: "bench", Apikey: "tok", Key: "k1", Value: "v1", Ttl: 5},
			wantResp:   &common.Response{Ok: true},
		},
		{
			name:       "setnx taken",
			req:        &common.Request{Op: common.OpSetNX, DB: "bench", Key: "k1", Value: "v1"},
			out:        &kvpb.SetResponse{Ok: false},
			wantMethod: kvpb.MethodPath(kvpb.MethodSetNX),
			wantArgs:   &kvpb.SetRequest{Db: "bench", Key: "k1", Value: "v1"},
			wantResp:   &common.Response{Ok: false},
		},
		{
			name:       "get hit",
			req:        &common.Request{Op: common.OpGet, DB: "bench", Key: "k1"},
			out:        &kvpb.GetResponse{Value: "v1", Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodGet),
			wantArgs:   &kvpb.GetRequest{Db: "bench", Key: "k1"},
			wantResp:   &common.Response{Ok: true, Value: "v1"},
		},
		{
			name:       "get miss",
			req:        &common.Request{Op: common.OpGet, DB: "bench", Key: "nope"},
			out:        &kvpb.GetResponse{Ok: false},
			wantMethod: kvpb.MethodPath(kvpb.MethodGet),
			wantArgs:   &kvpb.GetRequest{Db: "bench", Key: "nope"},
			wantResp:   &common.Response{Ok: false},
		},
		{
			name:       "increment",
			req:        &common.Request{Op: common.OpIncr, DB: "bench", Key: "n", Delta: 2},
			out:        &kvpb.IncrResponse{Value: 44, Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodIncr),
			wantArgs:   &kvpb.IncrRequest{Db: "bench", Key: "n", Amount: "2"},
			wantResp:   &common.Response{Ok: true, Num: 44},
		},
		{
			name:       "delete",
			req:        &common.Request{Op: common.OpDelete, DB: "bench", Key: "k1"},
			out:        &kvpb.DeleteResponse{Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodDelete),
			wantArgs:   &kvpb.DeleteRequest{Db: "bench", Key: "k1"},
			wantResp:   &common.Response{Ok: true},
		},
		{
			name:       "queue push",
			req:        &common.Request{Op: common.OpQueuePush, Name: "jobs", Value: "v"},
			out:        &kvpb.FiFoLiFoPushResponse{Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodFiFoLiFoPush),
			wantArgs:   &kvpb.FiFoLiFoPushRequest{Name: "jobs", Value: "v"},
			wantResp:   &common.Response{Ok: true},
		},
		{
			name:       "queue delete",
			req:        &common.Request{Op: common.OpQueueDelete, Name: "jobs"},
			out:        &kvpb.FiFoLiFoDeleteResponse{Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodFiFoLiFoDelete),
			wantArgs:   &kvpb.FiFoLiFoDeleteRequest{Name: "jobs"},
			wantResp:   &common.Response{Ok: true},
		},
		{
			name:       "fifo pop",
			req:        &common.Request{Op: common.OpFIFOPop, Name: "jobs"},
			out:        &kvpb.FiFoLiFoPopResponse{Value: "first", Ok: true},
			wantMethod: kvpb.MethodPath(kvpb.MethodFiFoLiFoFPop),
			wantArgs:   &kvpb.FiFoLiFoPopRequest{Name: "jobs"},
			wantResp:   &common.Response{Ok: true, Value: "first"},
		},
		{
			name:       "lifo pop empty",
			req:        &common.Request{Op: common.OpLIFOPop, Name: "jobs"},
			out:        &kvpb.FiFoLiFoPopResponse{Ok: false},
			wantMethod: kvpb.MethodPath(kvpb.MethodFiFoLiFoLPop),
			wantArgs:   &kvpb.FiFoLiFoPopRequest{Name: "jobs"},
			wantResp:   &common.Response{Ok: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{out: tt.out}
			tr := newTestTransport(conn)

			resp, err := tr.Execute(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("execute failed: %v", err)
			}

			if conn.method != tt.wantMethod {
				t.Errorf("method = %s, expected %s", conn.method, tt.wantMethod)
			}
			if !reflect.DeepEqual(conn.args, tt.wantArgs) {
				t.Errorf("request message = %+v, expected %+v", conn.args, tt.wantArgs)
			}
			if !reflect.DeepEqual(resp, tt.wantResp) {
				t.Errorf("response = %+v, expected %+v", resp, tt.wantResp)
			}
		})
	}
}

// TestManagementOpsRejected tests that operations belonging to the management
// surface never reach the binary channel.
func TestManagementOpsRejected(t *testing.T) {
	ops := []common.Operation{
		common.OpDBCreate,
		common.OpDBDelete,
		common.OpKeyRenew,
		common.OpQueueCreate,
		common.OpProbe,
	}

	for _, op := range ops {
		conn := &fakeConn{}
		tr := newTestTransport(conn)

		_, err := tr.Execute(context.Background(), &common.Request{Op: op})
		if !common.IsUnsupported(err) {
			t.Errorf("%s: expected an unsupported error, got %v", op, err)
		}
		if conn.method != "" {
			t.Errorf("%s: reached the channel as %s", op, conn.method)
		}
	}
}

// TestCallDeadline tests that every invocation carries the configured
// deadline.
func TestCallDeadline(t *testing.T) {
	conn := &fakeConn{out: &kvpb.GetResponse{Ok: true}}
	tr := newTestTransport(conn)

	before := time.Now()
	if _, err := tr.Execute(context.Background(), &common.Request{Op: common.OpGet, DB: "db", Key: "k"}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	deadline, ok := conn.ctx.Deadline()
	if !ok {
		t.Fatal("call context carries no deadline")
	}
	if remaining := deadline.Sub(before); remaining > 3*time.Second+time.Second || remaining <= 0 {
		t.Errorf("deadline %s away from call time, expected about 3s", remaining)
	}
}

// TestErrorMapping tests the taxonomy applied to failed calls.
func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		kind  string
	}{
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), common.IsConnectivity, "connectivity"},
		{"deadline exceeded", status.Error(codes.DeadlineExceeded, "deadline exceeded"), common.IsConnectivity, "connectivity"},
		{"server fault", status.Error(codes.Internal, "boom"), common.IsTransport, "transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{err: tt.err}
			tr := newTestTransport(conn)

			_, err := tr.Execute(context.Background(), &common.Request{Op: common.OpGet, DB: "db", Key: "k"})
			if !tt.check(err) {
				t.Errorf("expected a %s error, got %v", tt.kind, err)
			}
		})
	}
}

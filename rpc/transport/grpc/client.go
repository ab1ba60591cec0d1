package grpc

import (
	"context"
	"crypto/tls"
	"strconv"
	"time"

	"github.com/hydrakv/hydrakv-go/rpc/common"
	"github.com/hydrakv/hydrakv-go/rpc/kvpb"
	"github.com/hydrakv/hydrakv-go/rpc/serializer"
	"github.com/hydrakv/hydrakv-go/rpc/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

var logger = common.GetLogger("transport/grpc")

// NewGRPCClientTransport creates the binary RPC variant of the client
// transport. The channel and stub are created once during Connect and held
// for the client's lifetime.
func NewGRPCClientTransport() transport.IClientTransport {
	return &grpcClientTransport{}
}

type grpcClientTransport struct {
	conn     *grpc.ClientConn
	stub     kvpb.KVServiceClient
	deadline time.Duration
	callOpts []grpc.CallOption
}

// --------------------------------------------------------------------------
// Serializer-backed call codec
// --------------------------------------------------------------------------

// codec adapts an IRPCSerializer to gRPC's encoding.Codec so the typed kvpb
// messages can travel in the configured wire format.
type codec struct {
	s serializer.IRPCSerializer
}

// The codec registry is global and not safe for concurrent writes, so both
// codecs are registered exactly once at package load. Connect only selects
// the content subtype per client.
func init() {
	encoding.RegisterCodec(codec{s: serializer.NewJSONSerializer()})
	encoding.RegisterCodec(codec{s: serializer.NewGOBSerializer()})
}

func (c codec) Marshal(v any) ([]byte, error) { return c.s.Serialize(v) }

func (c codec) Unmarshal(data []byte, v any) error { return c.s.Deserialize(data, v) }

func (c codec) Name() string { return c.s.Name() }

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *grpcClientTransport) Connect(config common.ClientConfig) error {
	s, err := serializer.New(config.Codec)
	if err != nil {
		return err
	}

	creds := insecure.NewCredentials()
	if config.TLS {
		if config.TrustedCertFile != "" {
			creds, err = credentials.NewClientTLSFromFile(config.TrustedCertFile, "")
			if err != nil {
				return err
			}
		} else {
			creds = credentials.NewTLS(&tls.Config{})
		}
	}

	conn, err := grpc.NewClient(config.GRPCTarget(), grpc.WithTransportCredentials(creds))
	if err != nil {
		return err
	}

	t.conn = conn
	t.stub = kvpb.NewKVServiceClient(conn)
	t.deadline = time.Duration(config.GRPCDeadlineSec) * time.Second
	t.callOpts = []grpc.CallOption{grpc.CallContentSubtype(s.Name())}

	logger.Debugf("created rpc channel to %s (codec %s, deadline %s)", config.GRPCTarget(), s.Name(), t.deadline)
	return nil
}

func (t *grpcClientTransport) Name() string {
	return "grpc"
}

func (t *grpcClientTransport) Execute(ctx context.Context, req *common.Request) (resp *common.Response, err error) {
	start := time.Now()
	defer func() { transport.Observe(t.Name(), req.Op, start, err) }()

	if req.Op.HTTPOnly() {
		err = common.NewUnsupportedError(req.Op, t.Name())
		return nil, err
	}

	// Every call is bounded by the configured deadline.
	ctx, cancel := context.WithTimeout(ctx, t.deadline)
	defer cancel()

	resp, err = t.invoke(ctx, req)
	if err != nil {
		logger.Errorf("%s failed: %v", req.Op, err)
		return nil, err
	}
	return resp, nil
}

func (t *grpcClientTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// --------------------------------------------------------------------------
// Method dispatch
// --------------------------------------------------------------------------

func (t *grpcClientTransport) invoke(ctx context.Context, req *common.Request) (*common.Response, error) {
	switch req.Op {
	case common.OpSet:
		out, err := t.stub.Set(ctx, setRequest(req), t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok}, nil

	case common.OpSetNX:
		out, err := t.stub.SetNX(ctx, setRequest(req), t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok}, nil

	case common.OpGet:
		out, err := t.stub.Get(ctx, &kvpb.GetRequest{Db: req.DB, Apikey: req.APIKey, Key: req.Key}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok, Value: out.Value}, nil

	case common.OpIncr:
		out, err := t.stub.Incr(ctx, &kvpb.IncrRequest{
			Db:     req.DB,
			Apikey: req.APIKey,
			Key:    req.Key,
			Amount: strconv.FormatInt(req.Delta, 10),
		}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok, Num: out.Value}, nil

	case common.OpDelete:
		out, err := t.stub.Delete(ctx, &kvpb.DeleteRequest{Db: req.DB, Apikey: req.APIKey, Key: req.Key}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok}, nil

	case common.OpQueuePush:
		out, err := t.stub.FiFoLiFoPush(ctx, &kvpb.FiFoLiFoPushRequest{Name: req.Name, Value: req.Value}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok}, nil

	case common.OpQueueDelete:
		out, err := t.stub.FiFoLiFoDelete(ctx, &kvpb.FiFoLiFoDeleteRequest{Name: req.Name}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok}, nil

	case common.OpFIFOPop:
		out, err := t.stub.FiFoLiFoFPop(ctx, &kvpb.FiFoLiFoPopRequest{Name: req.Name}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok, Value: out.Value}, nil

	case common.OpLIFOPop:
		out, err := t.stub.FiFoLiFoLPop(ctx, &kvpb.FiFoLiFoPopRequest{Name: req.Name}, t.callOpts...)
		if err != nil {
			return nil, t.mapError(req.Op, err)
		}
		return &common.Response{Ok: out.Ok, Value: out.Value}, nil

	default:
		return nil, common.NewUnsupportedError(req.Op, t.Name())
	}
}

func setRequest(req *common.Request) *kvpb.SetRequest {
	return &kvpb.SetRequest{
		Db:     req.DB,
		Apikey: req.APIKey,
		Key:    req.Key,
		Value:  req.Value,
		Ttl:    req.TTL,
	}
}

// mapError normalizes a gRPC call error. Unreachability and exceeded
// deadlines surface as connectivity failures, everything else as transport
// failures carrying the server's status message.
func (t *grpcClientTransport) mapError(op common.Operation, err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return common.NewConnectivityError(op, t.Name(), err)
	default:
		return common.NewTransportError(op, t.Name(), status.Convert(err).Message(), err)
	}
}

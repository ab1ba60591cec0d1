package kvpb

import (
	"context"

	"google.golang.org/grpc"
)

// KVServiceClient is the typed stub for the server's KVService. It is shaped
// like a generated gRPC client so the transport layer can treat it as one.
type KVServiceClient interface {
	Set(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetResponse, error)
	SetNX(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetResponse, error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
	Incr(ctx context.Context, in *IncrRequest, opts ...grpc.CallOption) (*IncrResponse, error)
	Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteResponse, error)
	FiFoLiFoPush(ctx context.Context, in *FiFoLiFoPushRequest, opts ...grpc.CallOption) (*FiFoLiFoPushResponse, error)
	FiFoLiFoDelete(ctx context.Context, in *FiFoLiFoDeleteRequest, opts ...grpc.CallOption) (*FiFoLiFoDeleteResponse, error)
	FiFoLiFoFPop(ctx context.Context, in *FiFoLiFoPopRequest, opts ...grpc.CallOption) (*FiFoLiFoPopResponse, error)
	FiFoLiFoLPop(ctx context.Context, in *FiFoLiFoPopRequest, opts ...grpc.CallOption) (*FiFoLiFoPopResponse, error)
}

// NewKVServiceClient creates a KVService stub on top of an established
// connection (or any other ClientConnInterface, e.g. a test double).
func NewKVServiceClient(cc grpc.ClientConnInterface) KVServiceClient {
	return &kvServiceClient{cc: cc}
}

type kvServiceClient struct {
	cc grpc.ClientConnInterface
}

func (c *kvServiceClient) Set(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetResponse, error) {
	out := new(SetResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodSet), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) SetNX(ctx context.Context, in *SetRequest, opts ...grpc.CallOption) (*SetResponse, error) {
	out := new(SetResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodSetNX), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	out := new(GetResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodGet), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) Incr(ctx context.Context, in *IncrRequest, opts ...grpc.CallOption) (*IncrResponse, error) {
	out := new(IncrResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodIncr), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	out := new(DeleteResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodDelete), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) FiFoLiFoPush(ctx context.Context, in *FiFoLiFoPushRequest, opts ...grpc.CallOption) (*FiFoLiFoPushResponse, error) {
	out := new(FiFoLiFoPushResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodFiFoLiFoPush), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) FiFoLiFoDelete(ctx context.Context, in *FiFoLiFoDeleteRequest, opts ...grpc.CallOption) (*FiFoLiFoDeleteResponse, error) {
	out := new(FiFoLiFoDeleteResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodFiFoLiFoDelete), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) FiFoLiFoFPop(ctx context.Context, in *FiFoLiFoPopRequest, opts ...grpc.CallOption) (*FiFoLiFoPopResponse, error) {
	out := new(FiFoLiFoPopResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodFiFoLiFoFPop), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kvServiceClient) FiFoLiFoLPop(ctx context.Context, in *FiFoLiFoPopRequest, opts ...grpc.CallOption) (*FiFoLiFoPopResponse, error) {
	out := new(FiFoLiFoPopResponse)
	if err := c.cc.Invoke(ctx, MethodPath(MethodFiFoLiFoLPop), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

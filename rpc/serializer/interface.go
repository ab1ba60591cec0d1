package serializer

import "fmt"

// IRPCSerializer converts wire messages to and from bytes for the RPC
// transport. The interface is compatible with gRPC's encoding.Codec so every
// implementation can be registered as a call codec.
type IRPCSerializer interface {
	// Serialize encodes a wire message.
	Serialize(v any) ([]byte, error)
	// Deserialize decodes bytes into a wire message.
	Deserialize(data []byte, v any) error
	// Name returns the codec name used as the gRPC content subtype.
	Name() string
}

// New creates a serializer by name.
func New(name string) (IRPCSerializer, error) {
	switch name {
	case "json":
		return NewJSONSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", name)
	}
}

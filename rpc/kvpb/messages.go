package kvpb

// ServiceName is the fully qualified name of the server's RPC service.
const ServiceName = "hydrakv.KVService"

// Method names of the RPC surface. Queue creation and api key renewal have
// no RPC equivalent, they exist only on the HTTP API.
const (
	MethodSet            = "Set"
	MethodGet            = "Get"
	MethodSetNX          = "SetNX"
	MethodIncr           = "Incr"
	MethodDelete         = "Delete"
	MethodFiFoLiFoPush   = "FiFoLiFoPush"
	MethodFiFoLiFoDelete = "FiFoLiFoDelete"
	MethodFiFoLiFoFPop   = "FiFoLiFoFPop"
	MethodFiFoLiFoLPop   = "FiFoLiFoLPop"
)

// MethodPath returns the full RPC method path for a method name.
func MethodPath(method string) string {
	return "/" + ServiceName + "/" + method
}

// --------------------------------------------------------------------------
// Wire Messages
// --------------------------------------------------------------------------

// The message set mirrors the server's KVService schema. The structs are
// carried by the pluggable codecs in rpc/serializer; field names follow the
// schema so the json codec matches the server's expectations.

// SetRequest is the request for Set and SetNX.
type SetRequest struct {
	Db     string `json:"db"`
	Apikey string `json:"apikey,omitempty"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Ttl    uint64 `json:"ttl,omitempty"`
}

// SetResponse is the response for Set and SetNX. For SetNX, Ok reports
// whether the value was stored (false if the key already existed).
type SetResponse struct {
	Ok bool `json:"ok"`
}

// GetRequest is the request for Get.
type GetRequest struct {
	Db     string `json:"db"`
	Apikey string `json:"apikey,omitempty"`
	Key    string `json:"key"`
}

// GetResponse is the response for Get. Ok reports whether the key was found.
type GetResponse struct {
	Value string `json:"value"`
	Ok    bool   `json:"ok"`
}

// IncrRequest is the request for Incr. The amount travels as a string,
// matching the server schema.
type IncrRequest struct {
	Db     string `json:"db"`
	Apikey string `json:"apikey,omitempty"`
	Key    string `json:"key"`
	Amount string `json:"amount"`
}

// IncrResponse is the response for Incr and carries the new value.
type IncrResponse struct {
	Value int64 `json:"value"`
	Ok    bool  `json:"ok"`
}

// DeleteRequest is the request for Delete.
type DeleteRequest struct {
	Db     string `json:"db"`
	Apikey string `json:"apikey,omitempty"`
	Key    string `json:"key"`
}

// DeleteResponse is the response for Delete. Deleting a missing key is a
// no-op and still reports Ok.
type DeleteResponse struct {
	Ok bool `json:"ok"`
}

// FiFoLiFoPushRequest is the request for FiFoLiFoPush.
type FiFoLiFoPushRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FiFoLiFoPushResponse is the response for FiFoLiFoPush.
type FiFoLiFoPushResponse struct {
	Ok bool `json:"ok"`
}

// FiFoLiFoDeleteRequest is the request for FiFoLiFoDelete.
type FiFoLiFoDeleteRequest struct {
	Name string `json:"name"`
}

// FiFoLiFoDeleteResponse is the response for FiFoLiFoDelete.
type FiFoLiFoDeleteResponse struct {
	Ok bool `json:"ok"`
}

// FiFoLiFoPopRequest is the request for FiFoLiFoFPop and FiFoLiFoLPop.
type FiFoLiFoPopRequest struct {
	Name string `json:"name"`
}

// FiFoLiFoPopResponse is the response for both pop methods. Ok is false when
// the queue was empty.
type FiFoLiFoPopResponse struct {
	Value string `json:"value"`
	Ok    bool   `json:"ok"`
}

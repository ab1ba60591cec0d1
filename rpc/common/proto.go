package common

// --------------------------------------------------------------------------
// Request / Response Structure
// --------------------------------------------------------------------------

// Request represents a single validated operation request. Which fields are
// used depends on the operation. Requests are constructed fresh for every
// call through the factory functions below and are never reused.
type Request struct {
	Op Operation `json:"op"`

	// Key-value fields
	DB     string `json:"db,omitempty"`     // Used for: all key-value operations
	APIKey string `json:"apikey,omitempty"` // Resolved credential, empty for "no authentication"
	Key    string `json:"key,omitempty"`    // Used for: Set, SetNX, Get, Incr, Delete
	Value  string `json:"value,omitempty"`  // Used for: Set, SetNX, QueuePush
	TTL    uint64 `json:"ttl,omitempty"`    // Used for: Set, SetNX (0 = no expiration)
	Delta  int64  `json:"delta,omitempty"`  // Used for: Incr

	// Queue and database lifecycle fields
	Name  string `json:"name,omitempty"`  // Used for: queue operations, DBCreate, DBDelete
	Limit int    `json:"limit,omitempty"` // Used for: QueueCreate
}

// Response represents the transport-independent outcome of a request.
// Which fields are meaningful depends on the operation.
type Response struct {
	Ok     bool   // Used for: SetNX ("was set"), Get / queue pops ("was found")
	Value  string // Used for: Get, FIFOPop, LIFOPop
	Num    int64  // Used for: Incr (new value)
	APIKey string // Used for: DBCreate, KeyRenew (server-issued token)
}

// --------------------------------------------------------------------------
// Request Factory Functions
// --------------------------------------------------------------------------

// Every factory validates the required fields of its operation and returns a
// validation error before any network activity can happen.

// NewSetRequest creates a validated Set request. A ttl of 0 means no expiration.
func NewSetRequest(db, key, value string, ttl uint64) (*Request, error) {
	if err := requireDB(OpSet, db); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, NewValidationError(OpSet, "key is required")
	}
	if value == "" {
		return nil, NewValidationError(OpSet, "value is required")
	}
	return &Request{Op: OpSet, DB: db, Key: key, Value: value, TTL: ttl}, nil
}

// NewSetNXRequest creates a validated SetNX request. A ttl of 0 means no expiration.
func NewSetNXRequest(db, key, value string, ttl uint64) (*Request, error) {
	if err := requireDB(OpSetNX, db); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, NewValidationError(OpSetNX, "key is required")
	}
	if value == "" {
		return nil, NewValidationError(OpSetNX, "value is required")
	}
	return &Request{Op: OpSetNX, DB: db, Key: key, Value: value, TTL: ttl}, nil
}

// NewGetRequest creates a validated Get request.
func NewGetRequest(db, key string) (*Request, error) {
	if err := requireDB(OpGet, db); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, NewValidationError(OpGet, "key is required")
	}
	return &Request{Op: OpGet, DB: db, Key: key}, nil
}

// NewIncrRequest creates a validated Incr request. A delta of 0 defaults to 1.
func NewIncrRequest(db, key string, delta int64) (*Request, error) {
	if err := requireDB(OpIncr, db); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, NewValidationError(OpIncr, "key is required")
	}
	if delta == 0 {
		delta = 1
	}
	return &Request{Op: OpIncr, DB: db, Key: key, Delta: delta}, nil
}

// NewDeleteRequest creates a validated Delete request.
func NewDeleteRequest(db, key string) (*Request, error) {
	if err := requireDB(OpDelete, db); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, NewValidationError(OpDelete, "key is required")
	}
	return &Request{Op: OpDelete, DB: db, Key: key}, nil
}

// NewDBCreateRequest creates a validated database creation request.
func NewDBCreateRequest(name string) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpDBCreate, "name is required")
	}
	return &Request{Op: OpDBCreate, Name: name}, nil
}

// NewDBDeleteRequest creates a validated database deletion request.
func NewDBDeleteRequest(name string) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpDBDelete, "name is required")
	}
	return &Request{Op: OpDBDelete, Name: name}, nil
}

// NewKeyRenewRequest creates a validated api key renewal request.
func NewKeyRenewRequest(db string) (*Request, error) {
	if db == "" {
		return nil, NewValidationError(OpKeyRenew, "db is required")
	}
	return &Request{Op: OpKeyRenew, DB: db, Name: db}, nil
}

// NewQueueCreateRequest creates a validated queue creation request.
// The limit must be a positive capacity.
func NewQueueCreateRequest(name string, limit int) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpQueueCreate, "name is required")
	}
	if limit <= 0 {
		return nil, NewValidationError(OpQueueCreate, "limit must be positive")
	}
	return &Request{Op: OpQueueCreate, Name: name, Limit: limit}, nil
}

// NewQueuePushRequest creates a validated queue push request.
func NewQueuePushRequest(name, value string) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpQueuePush, "name is required")
	}
	if value == "" {
		return nil, NewValidationError(OpQueuePush, "value is required")
	}
	return &Request{Op: OpQueuePush, Name: name, Value: value}, nil
}

// NewQueueDeleteRequest creates a validated queue deletion request.
func NewQueueDeleteRequest(name string) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpQueueDelete, "name is required")
	}
	return &Request{Op: OpQueueDelete, Name: name}, nil
}

// NewFIFOPopRequest creates a validated FIFO pop request.
func NewFIFOPopRequest(name string) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpFIFOPop, "name is required")
	}
	return &Request{Op: OpFIFOPop, Name: name}, nil
}

// NewLIFOPopRequest creates a validated LIFO pop request.
func NewLIFOPopRequest(name string) (*Request, error) {
	if name == "" {
		return nil, NewValidationError(OpLIFOPop, "name is required")
	}
	return &Request{Op: OpLIFOPop, Name: name}, nil
}

func requireDB(op Operation, db string) error {
	if db == "" {
		return NewValidationError(op, "db is required")
	}
	return nil
}

// --------------------------------------------------------------------------
// Operation Type Definition
// --------------------------------------------------------------------------

// Operation identifies a logical client operation.
type Operation uint8

// String returns the string representation of an Operation.
func (o Operation) String() string {
	switch o {
	case OpDBCreate:
		return "create_db"
	case OpDBDelete:
		return "delete_db"
	case OpKeyRenew:
		return "renew_api_key"
	case OpSet:
		return "set"
	case OpSetNX:
		return "setnx"
	case OpGet:
		return "get"
	case OpIncr:
		return "incr"
	case OpDelete:
		return "delete"
	case OpQueueCreate:
		return "fifolifo_create"
	case OpQueuePush:
		return "fifolifo_push"
	case OpQueueDelete:
		return "fifolifo_delete"
	case OpFIFOPop:
		return "fifo_pop"
	case OpLIFOPop:
		return "lifo_pop"
	case OpProbe:
		return "probe"
	default:
		return "unknown"
	}
}

// HTTPOnly reports whether the operation exists only on the server's HTTP
// API. These operations bypass the selected transport unconditionally.
func (o Operation) HTTPOnly() bool {
	switch o {
	case OpDBCreate, OpDBDelete, OpKeyRenew, OpQueueCreate, OpProbe:
		return true
	default:
		return false
	}
}

// --------------------------------------------------------------------------
// Operation Constants
// --------------------------------------------------------------------------

const (
	OpUnknown Operation = iota

	// Database lifecycle operations (HTTP only)

	OpDBCreate // Create a database
	OpDBDelete // Delete a database
	OpKeyRenew // Let the server rotate the api key of a database

	// Key-value operations

	OpSet    // Set a key-value pair
	OpSetNX  // Set a key-value pair if the key is unset
	OpGet    // Get a value by key
	OpIncr   // Increment a numeric value
	OpDelete // Delete a key-value pair

	// FiFoLiFo queue operations

	OpQueueCreate // Create a capacity-bounded queue (HTTP only)
	OpQueuePush   // Push a value
	OpQueueDelete // Delete a queue
	OpFIFOPop     // Pop in insertion order
	OpLIFOPop     // Pop in reverse insertion order

	// Internal operations

	OpProbe // Construction-time reachability check
)

// Package credstore is the durable backing for client session state. It is
// a narrow KV so the state machine stays storage-agnostic: the only promise
// is that values round-trip through process restarts and that anything
// unreadable is discarded wholesale rather than surfaced as a parse error.
package credstore

// Well-known entry keys.
const (
	KeySession     = "session"
	KeyActiveHouse = "active_house"
)

// Store persists opaque client state blobs.
type Store interface {
	// Load returns the stored bytes for key, with ok=false when the key is
	// absent or its content is unusable.
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
	Delete(key string) error
	// Clear removes every entry. Used on logout.
	Clear() error
}

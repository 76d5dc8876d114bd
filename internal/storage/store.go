// Package storage provides the key-value persistence medium backing the
// omegaboard core. Values are opaque byte slices (JSON-serialized records);
// every write replaces the whole value under its key.
//
// Two scopes exist: the durable scope survives restarts and is shared
// between execution contexts, the ephemeral scope lives and dies with one
// execution context. The medium has no cross-context transactions: two
// contexts writing the same key concurrently are last-writer-wins, and the
// loser's change is silently gone. Callers needing multi-writer safety must
// coordinate elsewhere.
package storage

import "context"

// Fixed keys of the persisted collections. The os5_ prefixes are part of
// the stored data layout and must not change.
const (
	KeyAccounts   = "os5_users"
	KeyPosts      = "os5_posts"
	KeyComments   = "os5_comments"
	KeySession    = "currentUser"
	KeyVisitCount = "os5_visit_count"

	avatarKeyPrefix = "os5_avatar_"
)

// AvatarKey returns the per-user key holding a custom avatar blob.
func AvatarKey(username string) string {
	return avatarKeyPrefix + username
}

// Store is a flat key-value store. Get returns (nil, nil) when the key is
// absent. Reads and writes are synchronous.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Dual pairs the two persistence scopes. A Dual is built once per execution
// context; the ephemeral store must never be shared between contexts.
type Dual struct {
	Durable   Store
	Ephemeral Store
}

func NewDual(durable, ephemeral Store) *Dual {
	return &Dual{Durable: durable, Ephemeral: ephemeral}
}

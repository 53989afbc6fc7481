package store

import "context"

// Well-known keys.
const (
	KeyToken = "token"
	KeyEmail = "email"
)

// Store persists string values by key. An empty value is never reported:
// Get returns ("", false) for it, so writing "" is a valid way to clear a key
// that cannot be deleted.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// SetMany writes all pairs or none of them.
	SetMany(ctx context.Context, values map[string]string) error
}

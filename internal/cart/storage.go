package cart

import "context"

// StorageKey is the fixed logical key under which a cart snapshot lives.
// Every backend stores exactly one snapshot per session under this key.
const StorageKey = "cart"

// Storage persists full cart snapshots. Save always rewrites the whole
// snapshot; there are no partial writes. Load reports an absent snapshot
// as an empty slice with no error.
type Storage interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

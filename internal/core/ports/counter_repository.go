package ports

import "context"

// CounterRepository mints strictly increasing sequences per key. Next must be
// a single atomic increment-and-fetch at the storage layer: two concurrent
// callers for the same key must never observe the same value.
type CounterRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}

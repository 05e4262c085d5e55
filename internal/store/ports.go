// Package store defines the key/value persistence port the expense
// ledger writes through, plus its sqlite and in-memory
// implementations.
package store

import "context"

// Keys the ledger persists under.
const (
	KeyExpenseList = "expense_list"
	KeyTripCache   = "trip_expenses_cache"
)

// KV is a string key/value store. Get reports ok=false for a missing
// key rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

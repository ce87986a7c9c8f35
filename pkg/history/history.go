// Package history records every calculation attempt, successful or not, in
// insertion order.
package history

import "context"

// Record is one calculation attempt. Outcome is the rendered value or the
// error message shown to the user.
type Record struct {
	Input      string `json:"input"`
	Expression string `json:"expression"`
	Outcome    string `json:"outcome"`
}

// Store is an append-only log of records. Append is the only mutation
// besides Clear; List returns records in insertion order. Once Clear returns,
// List yields nothing until the next Append.
type Store interface {
	Append(ctx context.Context, r Record) error
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
}

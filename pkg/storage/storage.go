// Package storage provides the durable-state boundary for the transaction
// store: a single JSON document read at startup and rewritten on mutation.
package storage

import "context"

// DocumentStore persists an opaque JSON document.
type DocumentStore interface {
	// Load reads the current document. A missing document returns
	// (nil, nil) so first-run callers can start from empty state.
	Load(ctx context.Context) ([]byte, error)

	// Save atomically replaces the document.
	Save(ctx context.Context, data []byte) error
}

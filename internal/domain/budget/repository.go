package budget

import "context"

type Repository interface {
	// Get returns the singleton ledger row.
	Get(ctx context.Context) (*Budget, error)
	// GetForUpdate locks the row for the duration of the enclosing tx.
	GetForUpdate(ctx context.Context) (*Budget, error)
	Save(ctx context.Context, b *Budget) error
}

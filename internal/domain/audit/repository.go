package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// List returns up to limit entries, most recent first.
	List(ctx context.Context, limit int) ([]Entry, error)
	DeleteAll(ctx context.Context) error
}

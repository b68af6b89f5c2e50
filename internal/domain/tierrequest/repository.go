package tierrequest

import "context"

type Repository interface {
	Create(ctx context.Context, r *TierRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*TierRequest, error)
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*TierRequest, error)
	// GetPendingByBorrowerID enforces at most one pending request per
	// borrower at the call site.
	GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*TierRequest, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]TierRequest, error)
	Save(ctx context.Context, r *TierRequest) error
	DeleteAll(ctx context.Context) error
}

package tierrequestmock

import (
	"context"

	domain "vnv-money-backend/internal/domain/tierrequest"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.TierRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.TierRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.TierRequest, error)
	GetPendingByBorrowerIDFn  func(ctx context.Context, borrowerID string) (*domain.TierRequest, error)
	ListByBorrowerIDFn        func(ctx context.Context, borrowerID string) ([]domain.TierRequest, error)
	SaveFn                    func(ctx context.Context, r *domain.TierRequest) error
	DeleteAllFn               func(ctx context.Context) error
}

func (m *Repo) Create(ctx context.Context, r *domain.TierRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.TierRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.TierRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*domain.TierRequest, error) {
	if m.GetPendingByBorrowerIDFn != nil {
		return m.GetPendingByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.TierRequest, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, r *domain.TierRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}
	return nil
}

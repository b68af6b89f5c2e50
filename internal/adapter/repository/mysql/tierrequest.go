package mysql

import (
	"context"

	trDomain "vnv-money-backend/internal/domain/tierrequest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TierRequestRepository struct{ db *gorm.DB }

func NewTierRequestRepository(db *gorm.DB) *TierRequestRepository {
	return &TierRequestRepository{db: db}
}

func (r *TierRequestRepository) Create(ctx context.Context, req *trDomain.TierRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *TierRequestRepository) Save(ctx context.Context, req *trDomain.TierRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *TierRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*trDomain.TierRequest, error) {
	var out trDomain.TierRequest
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *TierRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*trDomain.TierRequest, error) {
	var out trDomain.TierRequest
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *TierRequestRepository) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*trDomain.TierRequest, error) {
	var out trDomain.TierRequest
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status = ?", borrowerID, trDomain.StatusPending).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *TierRequestRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]trDomain.TierRequest, error) {
	var out []trDomain.TierRequest
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

// DeleteAll hard-deletes so the request_id unique index is freed for new rows.
func (r *TierRequestRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&trDomain.TierRequest{}).Error
}

package mysql

import (
	"context"

	borrowerDomain "vnv-money-backend/internal/domain/borrower"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) Save(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BorrowerRepository) GetByBorrowerID(ctx context.Context, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID).First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("borrower_id = ?", borrowerID).
		First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) GetByZaloNumber(ctx context.Context, zalo string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("zalo_number = ?", zalo).First(&out)
	return &out, res.Error
}

// DeleteAllExcept hard-deletes: a soft-deleted row would keep holding the
// zalo_number unique index and block that person from registering again.
func (r *BorrowerRepository) DeleteAllExcept(ctx context.Context, keepBorrowerID string) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("borrower_id <> ?", keepBorrowerID).
		Delete(&borrowerDomain.Borrower{}).Error
}

package mysql

import (
	"context"
	"errors"

	budgetDomain "vnv-money-backend/internal/domain/budget"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetRepository struct{ db *gorm.DB }

func NewBudgetRepository(db *gorm.DB) *BudgetRepository { return &BudgetRepository{db: db} }

func (r *BudgetRepository) Get(ctx context.Context) (*budgetDomain.Budget, error) {
	var out budgetDomain.Budget
	res := r.db.WithContext(ctx).Where("id = ?", budgetDomain.SingletonID).First(&out)
	return &out, res.Error
}

func (r *BudgetRepository) GetForUpdate(ctx context.Context) (*budgetDomain.Budget, error) {
	var out budgetDomain.Budget
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", budgetDomain.SingletonID).
		First(&out)
	return &out, res.Error
}

func (r *BudgetRepository) Save(ctx context.Context, b *budgetDomain.Budget) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// EnsureSeeded creates the singleton ledger row on first boot.
func (r *BudgetRepository) EnsureSeeded(ctx context.Context) error {
	_, err := r.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(budgetDomain.New(budgetDomain.InitialTotal)).Error
}

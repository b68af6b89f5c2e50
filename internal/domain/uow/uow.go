package uow

import (
	"context"

	"vnv-money-backend/internal/domain/audit"
	"vnv-money-backend/internal/domain/borrower"
	"vnv-money-backend/internal/domain/budget"
	"vnv-money-backend/internal/domain/loan"
	"vnv-money-backend/internal/domain/tierrequest"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Borrowers    borrower.Repository
	Loans        loan.Repository
	TierRequests tierrequest.Repository
	Budget       budget.Repository
	AuditLogs    audit.Repository
}

// UnitOfWork runs a command handler atomically: every repository call inside
// fn sees and mutates the same transaction, so a failed handler leaves no
// partial state behind.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

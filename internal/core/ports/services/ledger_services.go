package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvc exposes ledger range queries and balance calculations.
type LedgerSvc interface {
	// Query returns ledger lines in the range, optionally for one account, in ledger order.
	Query(ctx context.Context, r domain.DateRange, accountCode string) ([]domain.LedgerLine, error)

	// AccountBalance is the normal-side balance of an account from inception through asOf.
	AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)

	// TrialBalance lists cumulative debits and credits per account through asOf.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)
}

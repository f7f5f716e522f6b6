package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
)

// GeneralLedgerParams selects a general ledger range. Limit 0 uses the default page size.
type GeneralLedgerParams struct {
	Range       domain.DateRange
	AccountCode string
	Limit       int
	PageToken   string
}

// DrillDownParams selects the source transactions behind one report line.
type DrillDownParams struct {
	ReportType  domain.ReportType
	AccountCode string
	Range       domain.DateRange
	Limit       int
	Offset      int
}

// ReportingService derives financial statements from the ledger. All methods are read-only.
type ReportingService interface {
	GeneralLedger(ctx context.Context, params GeneralLedgerParams) (*domain.GeneralLedgerReport, error)
	ProfitAndLoss(ctx context.Context, r domain.DateRange) (*domain.ProfitLossReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	CashFlow(ctx context.Context, r domain.DateRange) (*domain.CashFlowStatement, error)
	DrillDown(ctx context.Context, params DrillDownParams) (*domain.DrillDownReport, error)
}

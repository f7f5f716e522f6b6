package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
)

const (
	DefaultDrillDownLimit = 50
	MaxDrillDownLimit     = 500
)

// drillDownFits reports whether an account can appear on the given report.
func drillDownFits(t domain.ReportType, acc domain.AccountDescriptor) (bool, error) {
	switch t {
	case domain.ReportGeneralLedger:
		return true, nil
	case domain.ReportProfitAndLoss:
		return acc.Category.IsProfitAndLoss(), nil
	case domain.ReportBalanceSheet:
		return acc.Category.IsBalanceSheet(), nil
	case domain.ReportCashFlow:
		return acc.IsCash(), nil
	}
	return false, apperrors.NewValidationError("report_type", fmt.Sprintf("drill-down is not supported for report type %q", t))
}

// DrillDown lists the source transactions behind one account's figure on a report.
// Only the requested page is loaded; the total comes from a count.
func (s *reportingService) DrillDown(ctx context.Context, params portssvc.DrillDownParams) (*domain.DrillDownReport, error) {
	defer metrics.ObserveReport(string(domain.ReportDrillDown), time.Now())

	if err := validateRange(params.Range); err != nil {
		return nil, err
	}
	if params.Offset < 0 {
		return nil, apperrors.NewValidationError("offset", "offset must not be negative")
	}
	limit := params.Limit
	switch {
	case limit <= 0:
		limit = DefaultDrillDownLimit
	case limit > MaxDrillDownLimit:
		limit = MaxDrillDownLimit
	}
	if params.AccountCode == "" {
		return nil, apperrors.NewValidationError("account_code", "account code is required")
	}

	acc, err := resolveAccount(s.chart, params.AccountCode)
	if err != nil {
		return nil, err
	}
	fits, err := drillDownFits(params.ReportType, acc)
	if err != nil {
		return nil, err
	}
	if !fits {
		return nil, apperrors.NewValidationError("account_code",
			fmt.Sprintf("account %s (%s) does not appear on the %s report", acc.Code, acc.Category, params.ReportType))
	}

	r := normalizeRange(params.Range)
	filter := domain.LedgerFilter{To: &r.End, AccountCodes: []string{acc.Code}}
	if params.ReportType != domain.ReportBalanceSheet {
		filter.From = &r.Start
	}

	total, err := s.ledgerRepo.CountLines(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count drill-down lines", slog.String("account_code", acc.Code))
		return nil, fmt.Errorf("failed to count drill-down lines: %w", err)
	}
	lines, err := s.ledgerRepo.QueryLines(ctx, filter, domain.Page{Limit: limit, Offset: params.Offset})
	if err != nil {
		s.LogError(ctx, err, "Failed to query drill-down lines", slog.String("account_code", acc.Code))
		return nil, fmt.Errorf("failed to query drill-down lines: %w", err)
	}

	items := make([]domain.DrillDownItem, 0, len(lines))
	for _, l := range lines {
		kind, ok := domain.ParseDrillDownKind(l.Line.ReferenceType)
		if !ok {
			kind = domain.DrillDownKindFor(l.Entry.TransactionType)
		}
		description := l.Line.Description
		if description == "" {
			description = l.Entry.Description
		}
		items = append(items, domain.DrillDownItem{
			Kind:          kind,
			TransactionID: l.Entry.TransactionID,
			EntryID:       l.Entry.EntryID,
			EntryNumber:   l.Entry.EntryNumber,
			EntryDate:     l.Entry.EntryDate,
			Description:   description,
			ReferenceID:   l.Line.ReferenceID,
			Debit:         l.Line.Debit,
			Credit:        l.Line.Credit,
			Amount:        acc.SignedAmount(l.Line.Debit, l.Line.Credit),
		})
	}

	metadata := s.cfg.periodMetadata(domain.ReportDrillDown, r)
	if params.ReportType == domain.ReportBalanceSheet {
		metadata = s.cfg.asOfMetadata(domain.ReportDrillDown, r.End)
	}
	return &domain.DrillDownReport{
		Metadata:    metadata,
		SourceType:  params.ReportType,
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Items:       items,
		TotalCount:  total,
		Limit:       limit,
		Offset:      params.Offset,
		HasMore:     params.Offset+len(items) < total,
	}, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
)

var cashFlowSections = []struct {
	name     string
	activity domain.CashFlowActivity
}{
	{SectionOperating, domain.ActivityOperating},
	{SectionInvesting, domain.ActivityInvesting},
	{SectionFinancing, domain.ActivityFinancing},
}

// cashFlowAllocator attributes the cash side of each entry to the entry's other accounts.
type cashFlowAllocator struct {
	chart    func(code string) (domain.AccountDescriptor, bool)
	byCode   map[string]decimal.Decimal
	pending  []domain.LedgerLine
	entryID  string
	hasCash  bool
	unknowns map[string]struct{}
}

func (a *cashFlowAllocator) add(l domain.LedgerLine) {
	if l.Entry.EntryID != a.entryID {
		a.flush()
		a.entryID = l.Entry.EntryID
	}
	acc, ok := a.chart(l.Line.AccountCode)
	if ok && acc.IsCash() {
		a.hasCash = true
		return
	}
	if !ok {
		a.unknowns[l.Line.AccountCode] = struct{}{}
	}
	a.pending = append(a.pending, l)
}

// flush allocates the buffered entry. Cash-to-cash transfers leave nothing pending.
func (a *cashFlowAllocator) flush() {
	if a.hasCash {
		for _, l := range a.pending {
			a.byCode[l.Line.AccountCode] = a.byCode[l.Line.AccountCode].Add(l.Line.Credit.Sub(l.Line.Debit))
		}
	}
	a.pending = a.pending[:0]
	a.hasCash = false
}

// CashFlow derives a direct-method cash flow statement for the period.
func (s *reportingService) CashFlow(ctx context.Context, r domain.DateRange) (*domain.CashFlowStatement, error) {
	defer metrics.ObserveReport(string(domain.ReportCashFlow), time.Now())

	if err := validateRange(r); err != nil {
		return nil, err
	}
	r = normalizeRange(r)

	accounts := s.chart.Accounts()
	descriptors := make(map[string]domain.AccountDescriptor, len(accounts))
	var cashCodes []string
	for _, acc := range accounts {
		descriptors[acc.Code] = acc
		if acc.IsCash() {
			cashCodes = append(cashCodes, acc.Code)
		}
	}

	beginning, ending := decimal.Zero, decimal.Zero
	if len(cashCodes) > 0 {
		beforeStart := r.Start.AddDate(0, 0, -1)
		var err error
		if beginning, err = s.cashBalance(ctx, cashCodes, beforeStart); err != nil {
			return nil, err
		}
		if ending, err = s.cashBalance(ctx, cashCodes, r.End); err != nil {
			return nil, err
		}
	}

	alloc := &cashFlowAllocator{
		chart: func(code string) (domain.AccountDescriptor, bool) {
			acc, ok := descriptors[code]
			return acc, ok
		},
		byCode:   make(map[string]decimal.Decimal),
		unknowns: make(map[string]struct{}),
	}
	err := s.ledgerRepo.ScanLines(ctx, domain.LedgerFilter{From: &r.Start, To: &r.End}, func(l domain.LedgerLine) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		alloc.add(l)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan ledger for cash flow",
			slog.String("start", r.Start.Format(domain.DateLayout)),
			slog.String("end", r.End.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to scan ledger for cash flow: %w", err)
	}
	alloc.flush()
	for code := range alloc.unknowns {
		s.LogWarn(ctx, "Ledger holds lines for an account missing from the chart", slog.String("account_code", code))
	}

	sections := make([]domain.ReportSection, len(cashFlowSections))
	index := make(map[domain.CashFlowActivity]int, len(cashFlowSections))
	for i, cs := range cashFlowSections {
		sections[i] = newSection(cs.name)
		index[cs.activity] = i
	}
	codes := make([]string, 0, len(alloc.byCode))
	for code := range alloc.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		amount := alloc.byCode[code]
		if amount.IsZero() {
			continue
		}
		acc, ok := descriptors[code]
		if !ok {
			acc = domain.AccountDescriptor{Code: code, Name: code, Category: domain.CategoryAsset}
		}
		s.addItem(&sections[index[acc.Activity()]], acc, amount)
	}

	sum := domain.CashFlowSummary{
		BeginningCash:   beginning,
		EndingCash:      ending,
		NetChangeInCash: ending.Sub(beginning),
		OperatingTotal:  sections[index[domain.ActivityOperating]].Subtotal,
		InvestingTotal:  sections[index[domain.ActivityInvesting]].Subtotal,
		FinancingTotal:  sections[index[domain.ActivityFinancing]].Subtotal,
	}
	activityTotal := sum.OperatingTotal.Add(sum.InvestingTotal).Add(sum.FinancingTotal)
	sum.Difference = activityTotal.Sub(sum.NetChangeInCash)
	sum.CashFlowValidation = s.cfg.policy.Balanced(activityTotal, sum.NetChangeInCash)

	for i := range sections {
		s.setPercentages(&sections[i], sum.NetChangeInCash)
	}

	flagConsistency(ctx, &s.BaseService, domain.ReportCashFlow, sum.CashFlowValidation,
		slog.String("difference", sum.Difference.String()))
	s.LogInfo(ctx, "Cash flow statement generated successfully",
		slog.String("start", r.Start.Format(domain.DateLayout)),
		slog.String("end", r.End.Format(domain.DateLayout)),
		slog.String("net_change", sum.NetChangeInCash.String()))
	return &domain.CashFlowStatement{
		Metadata: s.cfg.periodMetadata(domain.ReportCashFlow, r),
		Sections: sections,
		Summary:  sum,
	}, nil
}

func (s *reportingService) cashBalance(ctx context.Context, cashCodes []string, asOf time.Time) (decimal.Decimal, error) {
	totals, err := s.ledgerRepo.SumByAccount(ctx, domain.LedgerFilter{To: &asOf, AccountCodes: cashCodes})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute cash balance: %w", err)
	}
	balance := decimal.Zero
	for _, t := range totals {
		balance = balance.Add(t.Debit.Sub(t.Credit))
	}
	return balance, nil
}

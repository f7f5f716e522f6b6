package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
	"github.com/SscSPs/ledgerbook/internal/utils/pagination"
)

// Section names used across statements.
const (
	SectionRevenue           = "Revenue"
	SectionCogs              = "Cost of Goods Sold"
	SectionOperatingExpenses = "Operating Expenses"
	SectionOtherIncome       = "Other Income"
	SectionOtherExpenses     = "Other Expenses"
	SectionAssets            = "Assets"
	SectionLiabilities       = "Liabilities"
	SectionEquity            = "Equity"
	SectionOperating         = "Operating Activities"
	SectionInvesting         = "Investing Activities"
	SectionFinancing         = "Financing Activities"

	SubsectionCurrent          = "Current"
	SubsectionFixed            = "Fixed"
	SubsectionLongTerm         = "Long-term"
	SubsectionOther            = "Other"
	SubsectionCapital          = "Capital"
	SubsectionRetainedEarnings = "Retained Earnings"

	// UnclosedEarningsName labels the computed equity line under FoldUnclosedEarnings.
	UnclosedEarningsName = "Current earnings (unclosed)"
)

const (
	// DefaultGeneralLedgerPageSize applies when a request sets no limit.
	DefaultGeneralLedgerPageSize = 500
	// MaxGeneralLedgerPageSize bounds a single general ledger page.
	MaxGeneralLedgerPageSize = 1000
)

var profitLossSections = []struct {
	name     string
	category domain.AccountCategory
}{
	{SectionRevenue, domain.CategoryRevenue},
	{SectionCogs, domain.CategoryCogs},
	{SectionOperatingExpenses, domain.CategoryOperatingExpense},
	{SectionOtherIncome, domain.CategoryOtherIncome},
	{SectionOtherExpenses, domain.CategoryOtherExpense},
}

// reportingService derives statements from ledger reads. It holds no state between calls.
type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	chart      portssvc.ChartOfAccounts
	cfg        reportConfig
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(ledgerRepo portsrepo.LedgerReader, chart portssvc.ChartOfAccounts, options ...ReportOption) portssvc.ReportingService {
	return &reportingService{
		ledgerRepo: ledgerRepo,
		chart:      chart,
		cfg:        newReportConfig(options),
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func validateRange(r domain.DateRange) error {
	if r.Start.IsZero() || r.End.IsZero() {
		return apperrors.NewValidationError("range", "start and end dates are required")
	}
	if domain.DateOnly(r.End).Before(domain.DateOnly(r.Start)) {
		return apperrors.NewValidationError("range", "end date is before start date")
	}
	return nil
}

func normalizeRange(r domain.DateRange) domain.DateRange {
	return domain.DateRange{Start: domain.DateOnly(r.Start), End: domain.DateOnly(r.End)}
}

func newSection(name string) domain.ReportSection {
	return domain.ReportSection{
		SectionName: name,
		Items:       []domain.ReportLineItem{},
		Subtotal:    decimal.Zero,
		Percentage:  decimal.Zero,
	}
}

func (s *reportingService) addItem(sec *domain.ReportSection, acc domain.AccountDescriptor, amount decimal.Decimal) {
	sec.Items = append(sec.Items, domain.ReportLineItem{
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Subcategory: acc.Subcategory,
		Amount:      amount,
	})
	sec.Subtotal = sec.Subtotal.Add(amount)
}

// setPercentages fills item and section percentages relative to whole.
func (s *reportingService) setPercentages(sec *domain.ReportSection, whole decimal.Decimal) {
	for i := range sec.Items {
		sec.Items[i].Percentage = s.cfg.policy.Percent(sec.Items[i].Amount, whole)
	}
	for i := range sec.Subsections {
		s.setPercentages(&sec.Subsections[i], whole)
	}
	sec.Percentage = s.cfg.policy.Percent(sec.Subtotal, whole)
}

// GeneralLedger lists account activity in ledger order with running balances.
// The summary always covers the full range; sections hold one page, and callers
// walk the rest of the range with NextPageToken.
func (s *reportingService) GeneralLedger(ctx context.Context, params portssvc.GeneralLedgerParams) (*domain.GeneralLedgerReport, error) {
	defer metrics.ObserveReport(string(domain.ReportGeneralLedger), time.Now())

	if err := validateRange(params.Range); err != nil {
		return nil, err
	}
	if params.Limit < 0 || params.Limit > MaxGeneralLedgerPageSize {
		return nil, apperrors.NewValidationError("limit", fmt.Sprintf("limit must be between 0 and %d", MaxGeneralLedgerPageSize))
	}
	r := normalizeRange(params.Range)
	filter := domain.LedgerFilter{From: &r.Start, To: &r.End}
	if params.AccountCode != "" {
		if _, err := resolveAccount(s.chart, params.AccountCode); err != nil {
			return nil, err
		}
		filter.AccountCodes = []string{params.AccountCode}
	}

	summary, rangeTotals, err := s.generalLedgerSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	pageFilter := filter
	if params.PageToken != "" {
		cursor, decErr := pagination.DecodeLedgerCursor(params.PageToken)
		if decErr != nil {
			return nil, apperrors.NewValidationError("page_token", "invalid page token").WithCause(decErr)
		}
		pageFilter.After = &cursor
	}

	limit := params.Limit
	if limit == 0 {
		limit = s.cfg.glPageSize
	}
	lines, err := s.ledgerRepo.QueryLines(ctx, pageFilter, domain.Page{Limit: limit + 1})
	if err != nil {
		s.LogError(ctx, err, "Failed to query general ledger lines")
		return nil, fmt.Errorf("failed to query general ledger: %w", err)
	}

	report := &domain.GeneralLedgerReport{
		Metadata: s.cfg.periodMetadata(domain.ReportGeneralLedger, r),
		Sections: []domain.GeneralLedgerSection{},
		Summary:  summary,
	}
	if len(lines) > limit {
		lines = lines[:limit]
		token := pagination.EncodeLedgerCursor(lines[len(lines)-1].Cursor())
		report.NextPageToken = &token
	}

	if len(lines) > 0 {
		sections, secErr := s.generalLedgerSections(ctx, lines, rangeTotals, summary)
		if secErr != nil {
			return nil, secErr
		}
		report.Sections = sections
	}

	// A single account's debits and credits rarely agree, so only the full ledger is flagged.
	if params.AccountCode == "" {
		flagConsistency(ctx, &s.BaseService, domain.ReportGeneralLedger, summary.BalanceCheck,
			slog.String("total_debits", summary.TotalDebits.String()),
			slog.String("total_credits", summary.TotalCredits.String()))
	}
	s.LogInfo(ctx, "General ledger report generated successfully",
		slog.String("start", r.Start.Format(domain.DateLayout)),
		slog.String("end", r.End.Format(domain.DateLayout)),
		slog.Int("lines", len(lines)),
		slog.Bool("has_more", report.NextPageToken != nil))
	return report, nil
}

func (s *reportingService) generalLedgerSummary(ctx context.Context, filter domain.LedgerFilter) (domain.GeneralLedgerSummary, map[string]domain.AccountTotals, error) {
	summary := domain.GeneralLedgerSummary{TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}

	entries, err := s.ledgerRepo.CountEntries(ctx, filter)
	if err != nil {
		return summary, nil, fmt.Errorf("failed to count general ledger entries: %w", err)
	}
	lineCount, err := s.ledgerRepo.CountLines(ctx, filter)
	if err != nil {
		return summary, nil, fmt.Errorf("failed to count general ledger lines: %w", err)
	}
	totals, err := s.ledgerRepo.SumByAccount(ctx, filter)
	if err != nil {
		return summary, nil, fmt.Errorf("failed to total general ledger: %w", err)
	}

	summary.TotalEntries = entries
	summary.TotalLines = lineCount
	for _, t := range totals {
		summary.TotalDebits = summary.TotalDebits.Add(t.Debit)
		summary.TotalCredits = summary.TotalCredits.Add(t.Credit)
	}
	summary.BalanceCheck = s.cfg.policy.Balanced(summary.TotalDebits, summary.TotalCredits)
	return summary, totals, nil
}

// generalLedgerSections groups a page of lines by account. Opening balances are
// brought forward from everything that sorts before the first line of the page.
func (s *reportingService) generalLedgerSections(ctx context.Context, lines []domain.LedgerLine, rangeTotals map[string]domain.AccountTotals, summary domain.GeneralLedgerSummary) ([]domain.GeneralLedgerSection, error) {
	byAccount := make(map[string][]domain.LedgerLine)
	codes := make([]string, 0)
	for _, l := range lines {
		code := l.Line.AccountCode
		if _, ok := byAccount[code]; !ok {
			codes = append(codes, code)
		}
		byAccount[code] = append(byAccount[code], l)
	}
	sort.Strings(codes)

	pageStart := lines[0].Cursor()
	opening, err := s.ledgerRepo.SumByAccount(ctx, domain.LedgerFilter{AccountCodes: codes, Before: &pageStart})
	if err != nil {
		return nil, fmt.Errorf("failed to compute opening balances: %w", err)
	}

	totalActivity := summary.TotalDebits.Add(summary.TotalCredits)
	sections := make([]domain.GeneralLedgerSection, 0, len(codes))
	for _, code := range codes {
		acc, resErr := s.chart.Resolve(code)
		if resErr != nil {
			s.LogWarn(ctx, "Ledger holds lines for an account missing from the chart", slog.String("account_code", code))
			acc = domain.AccountDescriptor{Code: code, Name: code, Category: domain.CategoryAsset}
		}
		openingBalance := accounting.SignedTotal(opening[code], acc)
		items := accounting.ComputeRunningBalance(byAccount[code], acc, openingBalance)
		debit, credit := decimal.Zero, decimal.Zero
		for _, it := range items {
			debit = debit.Add(it.Line.Debit)
			credit = credit.Add(it.Line.Credit)
		}
		closing := openingBalance
		if len(items) > 0 {
			closing = items[len(items)-1].RunningBalance
		}
		activity := rangeTotals[code].Debit.Add(rangeTotals[code].Credit)
		sections = append(sections, domain.GeneralLedgerSection{
			SectionName:    fmt.Sprintf("%s - %s", acc.Code, acc.Name),
			AccountCode:    acc.Code,
			AccountName:    acc.Name,
			NormalBalance:  acc.NormalBalance(),
			OpeningBalance: openingBalance,
			Items:          items,
			TotalDebit:     debit,
			TotalCredit:    credit,
			Subtotal:       closing,
			Percentage:     s.cfg.policy.Percent(activity, totalActivity),
		})
	}
	return sections, nil
}

// ProfitAndLoss buckets period activity of income and expense accounts.
func (s *reportingService) ProfitAndLoss(ctx context.Context, r domain.DateRange) (*domain.ProfitLossReport, error) {
	defer metrics.ObserveReport(string(domain.ReportProfitAndLoss), time.Now())

	if err := validateRange(r); err != nil {
		return nil, err
	}
	r = normalizeRange(r)

	totals, err := s.ledgerRepo.SumByAccount(ctx, domain.LedgerFilter{From: &r.Start, To: &r.End})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("start", r.Start.Format(domain.DateLayout)),
			slog.String("end", r.End.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	sections := make(map[domain.AccountCategory]*domain.ReportSection, len(profitLossSections))
	ordered := make([]domain.ReportSection, len(profitLossSections))
	for i, ps := range profitLossSections {
		ordered[i] = newSection(ps.name)
		sections[ps.category] = &ordered[i]
	}
	for _, acc := range s.chart.Accounts() {
		sec, ok := sections[acc.Category]
		if !ok {
			continue
		}
		t, ok := totals[acc.Code]
		if !ok || t.LineCount == 0 {
			continue
		}
		s.addItem(sec, acc, accounting.SignedTotal(t, acc))
	}

	sum := domain.ProfitLossSummary{
		TotalRevenue:           sections[domain.CategoryRevenue].Subtotal,
		TotalCogs:              sections[domain.CategoryCogs].Subtotal,
		TotalOperatingExpenses: sections[domain.CategoryOperatingExpense].Subtotal,
		TotalOtherIncome:       sections[domain.CategoryOtherIncome].Subtotal,
		TotalOtherExpenses:     sections[domain.CategoryOtherExpense].Subtotal,
	}
	sum.GrossProfit = sum.TotalRevenue.Sub(sum.TotalCogs)
	sum.OperatingIncome = sum.GrossProfit.Sub(sum.TotalOperatingExpenses)
	sum.NetIncome = sum.OperatingIncome.Add(sum.TotalOtherIncome).Sub(sum.TotalOtherExpenses)
	sum.GrossMargin = s.cfg.policy.Percent(sum.GrossProfit, sum.TotalRevenue)
	sum.OperatingMargin = s.cfg.policy.Percent(sum.OperatingIncome, sum.TotalRevenue)
	sum.NetMargin = s.cfg.policy.Percent(sum.NetIncome, sum.TotalRevenue)

	for i := range ordered {
		s.setPercentages(&ordered[i], sum.TotalRevenue)
	}

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("start", r.Start.Format(domain.DateLayout)),
		slog.String("end", r.End.Format(domain.DateLayout)),
		slog.String("net_income", sum.NetIncome.String()))
	return &domain.ProfitLossReport{
		Metadata: s.cfg.periodMetadata(domain.ReportProfitAndLoss, r),
		Sections: ordered,
		Summary:  sum,
	}, nil
}

func balanceSheetSubsection(acc domain.AccountDescriptor) string {
	switch acc.Category {
	case domain.CategoryAsset:
		switch acc.Subcategory {
		case domain.SubcategoryCurrent, domain.SubcategoryCash, domain.SubcategoryBank:
			return SubsectionCurrent
		case domain.SubcategoryFixed:
			return SubsectionFixed
		}
	case domain.CategoryLiability:
		switch acc.Subcategory {
		case domain.SubcategoryCurrent:
			return SubsectionCurrent
		case domain.SubcategoryLongTerm:
			return SubsectionLongTerm
		}
	case domain.CategoryEquity:
		if acc.Subcategory == domain.SubcategoryRetainedEarnings {
			return SubsectionRetainedEarnings
		}
		return SubsectionCapital
	}
	return SubsectionOther
}

// BalanceSheet reports cumulative balances of balance sheet accounts through asOf.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	defer metrics.ObserveReport(string(domain.ReportBalanceSheet), time.Now())

	if asOf.IsZero() {
		return nil, apperrors.NewValidationError("as_of", "as of date is required")
	}
	asOf = domain.DateOnly(asOf)

	totals, err := s.ledgerRepo.SumByAccount(ctx, domain.LedgerFilter{To: &asOf})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("asOf", asOf.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	layout := map[domain.AccountCategory][]string{
		domain.CategoryAsset:     {SubsectionCurrent, SubsectionFixed, SubsectionOther},
		domain.CategoryLiability: {SubsectionCurrent, SubsectionLongTerm, SubsectionOther},
		domain.CategoryEquity:    {SubsectionCapital, SubsectionRetainedEarnings},
	}
	names := map[domain.AccountCategory]string{
		domain.CategoryAsset:     SectionAssets,
		domain.CategoryLiability: SectionLiabilities,
		domain.CategoryEquity:    SectionEquity,
	}
	order := []domain.AccountCategory{domain.CategoryAsset, domain.CategoryLiability, domain.CategoryEquity}

	sections := make([]domain.ReportSection, len(order))
	index := make(map[domain.AccountCategory]int, len(order))
	for i, cat := range order {
		sections[i] = newSection(names[cat])
		for _, sub := range layout[cat] {
			sections[i].Subsections = append(sections[i].Subsections, newSection(sub))
		}
		index[cat] = i
	}
	subsection := func(cat domain.AccountCategory, name string) *domain.ReportSection {
		sec := &sections[index[cat]]
		for i := range sec.Subsections {
			if sec.Subsections[i].SectionName == name {
				return &sec.Subsections[i]
			}
		}
		return nil
	}

	unclosed := decimal.Zero
	for _, acc := range s.chart.Accounts() {
		t, ok := totals[acc.Code]
		if !ok || t.LineCount == 0 {
			continue
		}
		if acc.Category.IsProfitAndLoss() {
			// Income is credit-normal, expenses debit-normal: credit minus debit nets both.
			unclosed = unclosed.Add(t.Credit.Sub(t.Debit))
			continue
		}
		amount := accounting.SignedTotal(t, acc)
		sec := &sections[index[acc.Category]]
		item := domain.ReportLineItem{AccountCode: acc.Code, AccountName: acc.Name, Subcategory: acc.Subcategory, Amount: amount}
		sec.Items = append(sec.Items, item)
		sec.Subtotal = sec.Subtotal.Add(amount)
		sub := subsection(acc.Category, balanceSheetSubsection(acc))
		sub.Items = append(sub.Items, item)
		sub.Subtotal = sub.Subtotal.Add(amount)
	}

	policy := s.cfg.equityPolicy
	if policy == domain.FoldUnclosedEarnings && !unclosed.IsZero() {
		item := domain.ReportLineItem{AccountName: UnclosedEarningsName, Subcategory: domain.SubcategoryRetainedEarnings, Amount: unclosed}
		eq := &sections[index[domain.CategoryEquity]]
		eq.Items = append(eq.Items, item)
		eq.Subtotal = eq.Subtotal.Add(unclosed)
		sub := subsection(domain.CategoryEquity, SubsectionRetainedEarnings)
		sub.Items = append(sub.Items, item)
		sub.Subtotal = sub.Subtotal.Add(unclosed)
	}

	sum := domain.BalanceSheetSummary{
		TotalAssets:      sections[index[domain.CategoryAsset]].Subtotal,
		TotalLiabilities: sections[index[domain.CategoryLiability]].Subtotal,
		TotalEquity:      sections[index[domain.CategoryEquity]].Subtotal,
		UnclosedEarnings: unclosed,
		EquityPolicy:     policy,
	}
	sum.TotalLiabilitiesAndEquity = sum.TotalLiabilities.Add(sum.TotalEquity)
	sum.Difference = sum.TotalAssets.Sub(sum.TotalLiabilitiesAndEquity)
	sum.IsBalanced = s.cfg.policy.Balanced(sum.TotalAssets, sum.TotalLiabilitiesAndEquity)

	s.setPercentages(&sections[index[domain.CategoryAsset]], sum.TotalAssets)
	s.setPercentages(&sections[index[domain.CategoryLiability]], sum.TotalLiabilitiesAndEquity)
	s.setPercentages(&sections[index[domain.CategoryEquity]], sum.TotalLiabilitiesAndEquity)

	flagConsistency(ctx, &s.BaseService, domain.ReportBalanceSheet, sum.IsBalanced,
		slog.String("difference", sum.Difference.String()),
		slog.String("equity_policy", string(policy)))
	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("asOf", asOf.Format(domain.DateLayout)),
		slog.Bool("is_balanced", sum.IsBalanced))
	return &domain.BalanceSheetReport{
		Metadata: s.cfg.asOfMetadata(domain.ReportBalanceSheet, asOf),
		Sections: sections,
		Summary:  sum,
	}, nil
}

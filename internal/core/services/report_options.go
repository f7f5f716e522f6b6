package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/platform/metrics"
	"github.com/SscSPs/ledgerbook/internal/utils/accounting"
)

// DefaultCurrency is reported when no currency is configured.
const DefaultCurrency = "VND"

// reportConfig is shared by every read-side service so they agree on currency,
// rounding and tolerance.
type reportConfig struct {
	currency     string
	policy       accounting.Policy
	equityPolicy domain.EquityPolicy
	glPageSize   int
	now          func() time.Time
}

// ReportOption configures the read-side services.
type ReportOption func(*reportConfig)

// WithCurrency sets the currency code stamped on report metadata.
func WithCurrency(code string) ReportOption {
	return func(c *reportConfig) {
		if code != "" {
			c.currency = code
		}
	}
}

// WithPolicy sets the rounding and tolerance policy.
func WithPolicy(p accounting.Policy) ReportOption {
	return func(c *reportConfig) {
		c.policy = p
	}
}

// WithEquityPolicy selects how unclosed earnings reach the balance sheet.
func WithEquityPolicy(p domain.EquityPolicy) ReportOption {
	return func(c *reportConfig) {
		if p.Valid() {
			c.equityPolicy = p
		}
	}
}

// WithGeneralLedgerPageSize sets the page size used when a general ledger request has no limit.
func WithGeneralLedgerPageSize(n int) ReportOption {
	return func(c *reportConfig) {
		if n > 0 && n <= MaxGeneralLedgerPageSize {
			c.glPageSize = n
		}
	}
}

// WithReportClock overrides the clock used for generated_at.
func WithReportClock(now func() time.Time) ReportOption {
	return func(c *reportConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newReportConfig(opts []ReportOption) reportConfig {
	c := reportConfig{
		currency:     DefaultCurrency,
		policy:       accounting.DefaultPolicy(),
		equityPolicy: domain.FoldUnclosedEarnings,
		glPageSize:   DefaultGeneralLedgerPageSize,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c reportConfig) periodMetadata(t domain.ReportType, r domain.DateRange) domain.ReportMetadata {
	start, end := r.Start, r.End
	return domain.ReportMetadata{
		ReportType:  t,
		Currency:    c.currency,
		GeneratedAt: c.now().UTC(),
		PeriodStart: &start,
		PeriodEnd:   &end,
	}
}

func (c reportConfig) asOfMetadata(t domain.ReportType, asOf time.Time) domain.ReportMetadata {
	d := domain.DateOnly(asOf)
	return domain.ReportMetadata{
		ReportType:  t,
		Currency:    c.currency,
		GeneratedAt: c.now().UTC(),
		AsOf:        &d,
	}
}

// flagConsistency logs and counts a false validation flag. The report is still returned.
func flagConsistency(ctx context.Context, base *BaseService, report domain.ReportType, ok bool, attrs ...any) {
	if ok {
		return
	}
	metrics.ConsistencyWarning(string(report))
	base.LogWarn(ctx, "Report validation flag is false; ledger may be inconsistent for this range",
		append([]any{slog.String("report", string(report))}, attrs...)...)
}

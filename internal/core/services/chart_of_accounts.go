package services

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"gopkg.in/yaml.v3"
)

//go:embed default_chart.yaml
var defaultChartYAML []byte

type chartFile struct {
	Accounts []domain.AccountDescriptor `yaml:"accounts"`
}

// chartOfAccounts is an immutable, in-memory chart. Safe for concurrent use.
type chartOfAccounts struct {
	byCode map[string]domain.AccountDescriptor
	sorted []domain.AccountDescriptor
}

var _ portssvc.ChartOfAccounts = (*chartOfAccounts)(nil)

// NewChartOfAccounts validates the descriptors and builds a chart from them.
func NewChartOfAccounts(accounts []domain.AccountDescriptor) (portssvc.ChartOfAccounts, error) {
	if len(accounts) == 0 {
		return nil, apperrors.NewValidationError("accounts", "chart of accounts is empty")
	}

	c := &chartOfAccounts{
		byCode: make(map[string]domain.AccountDescriptor, len(accounts)),
		sorted: make([]domain.AccountDescriptor, 0, len(accounts)),
	}
	for i, a := range accounts {
		if a.Code == "" {
			return nil, apperrors.NewValidationError("code", fmt.Sprintf("account #%d has no code", i))
		}
		if !a.Category.Valid() {
			return nil, apperrors.NewValidationError("category", fmt.Sprintf("account %s has unknown category %q", a.Code, a.Category))
		}
		if a.CashFlowActivity != "" && !a.CashFlowActivity.Valid() {
			return nil, apperrors.NewValidationError("cash_flow", fmt.Sprintf("account %s has unknown cash flow activity %q", a.Code, a.CashFlowActivity))
		}
		if _, dup := c.byCode[a.Code]; dup {
			return nil, apperrors.NewValidationError("code", fmt.Sprintf("duplicate account code %s", a.Code))
		}
		c.byCode[a.Code] = a
		c.sorted = append(c.sorted, a)
	}
	sort.Slice(c.sorted, func(i, j int) bool { return c.sorted[i].Code < c.sorted[j].Code })
	return c, nil
}

// ParseChartOfAccounts builds a chart from a YAML document with a top-level "accounts" list.
func ParseChartOfAccounts(data []byte) (portssvc.ChartOfAccounts, error) {
	var f chartFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chart of accounts: %w", err)
	}
	return NewChartOfAccounts(f.Accounts)
}

// LoadChartOfAccounts reads a chart from path, or returns the built-in chart when path is empty.
func LoadChartOfAccounts(path string) (portssvc.ChartOfAccounts, error) {
	if path == "" {
		return DefaultChartOfAccounts()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart of accounts %s: %w", path, err)
	}
	return ParseChartOfAccounts(data)
}

// DefaultChartOfAccounts returns the chart embedded in the binary.
func DefaultChartOfAccounts() (portssvc.ChartOfAccounts, error) {
	return ParseChartOfAccounts(defaultChartYAML)
}

func (c *chartOfAccounts) Resolve(code string) (domain.AccountDescriptor, error) {
	a, ok := c.byCode[code]
	if !ok {
		return domain.AccountDescriptor{}, &apperrors.UnknownAccountError{Code: code}
	}
	return a, nil
}

func (c *chartOfAccounts) Accounts() []domain.AccountDescriptor {
	out := make([]domain.AccountDescriptor, len(c.sorted))
	copy(out, c.sorted)
	return out
}

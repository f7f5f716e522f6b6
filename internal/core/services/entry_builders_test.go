package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	"github.com/SscSPs/ledgerbook/internal/core/services"
)

func assertBalanced(t *testing.T, lines []domain.JournalEntryLine) {
	t.Helper()
	debit, credit := domain.SumLines(lines)
	assert.True(t, debit.Equal(credit), "debits %s credits %s", debit, credit)
}

func TestBuilders_ProduceBalancedLines(t *testing.T) {
	tests := []struct {
		name     string
		builder  services.EntryBuilder
		txType   domain.TransactionType
		accounts []string
	}{
		{
			name:     "invoice with tax",
			builder:  services.InvoiceLines{InvoiceID: "INV-1", Amount: dec("1000000"), TaxAmount: dec("100000")},
			txType:   domain.TxInvoice,
			accounts: []string{"1100", "4000", "2200"},
		},
		{
			name:     "incoming payment",
			builder:  services.PaymentLines{PaymentID: "PAY-1", SettlesID: "INV-1", Amount: dec("500")},
			txType:   domain.TxPayment,
			accounts: []string{"1010", "1100"},
		},
		{
			name:     "sales receipt with cost",
			builder:  services.SalesReceiptLines{ReceiptID: "SR-1", Amount: dec("900"), CostAmount: dec("600")},
			txType:   domain.TxSalesReceipt,
			accounts: []string{"1000", "4000", "5000", "1200"},
		},
		{
			name:     "paid expense",
			builder:  services.ExpenseLines{ExpenseID: "EXP-1", ExpenseAccount: "6300", PaymentAccount: "1000", Amount: dec("75")},
			txType:   domain.TxExpense,
			accounts: []string{"6300", "1000"},
		},
		{
			name: "expense claim",
			builder: services.ExpenseClaimLines{ClaimID: "CLM-1", Items: []services.ExpenseClaimItem{
				{AccountCode: "6300", Amount: dec("120"), Description: "Taxi"},
				{AccountCode: "6400", Amount: dec("30"), Description: "Stationery"},
			}},
			txType:   domain.TxExpenseClaim,
			accounts: []string{"6300", "6400", "2100"},
		},
		{
			name:     "refund",
			builder:  services.RefundLines{RefundID: "REF-1", InvoiceID: "INV-1", Amount: dec("40")},
			txType:   domain.TxRefund,
			accounts: []string{"4000", "1010"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := services.BuildEntry(tt.builder, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "desc", "user-1")
			require.NoError(t, err)
			assert.Equal(t, tt.txType, req.TransactionType)
			assert.Equal(t, tt.builder.SourceID(), req.TransactionID)
			assert.Equal(t, "user-1", req.CreatedBy)

			var accounts []string
			for _, l := range req.Lines {
				accounts = append(accounts, l.AccountCode)
				assert.NotEqual(t, l.Debit.IsZero(), l.Credit.IsZero(), "exactly one side per line")
			}
			assert.Equal(t, tt.accounts, accounts)
			assertBalanced(t, req.Lines)
		})
	}
}

func TestBuilders_DrillDownKinds(t *testing.T) {
	bill, err := services.ExpenseLines{ExpenseID: "B-1", ExpenseAccount: "6200", OnCredit: true, Amount: dec("10")}.Lines()
	require.NoError(t, err)
	assert.Equal(t, services.DefaultPayableAccount, bill[1].AccountCode)
	assert.Equal(t, string(domain.KindBill), bill[1].ReferenceType)

	out, err := services.PaymentLines{PaymentID: "P-1", SettlesID: "B-1", Outgoing: true, Amount: dec("10")}.Lines()
	require.NoError(t, err)
	assert.Equal(t, services.DefaultPayableAccount, out[0].AccountCode)
	assert.True(t, out[0].IsDebit())
	assert.Equal(t, "B-1", out[0].ReferenceID)
	assert.Equal(t, string(domain.KindBillPayment), out[1].ReferenceType)

	refund, err := services.RefundLines{RefundID: "R-1", Amount: dec("1")}.Lines()
	require.NoError(t, err)
	assert.Equal(t, string(domain.KindCreditMemo), refund[0].ReferenceType)
}

func TestBuilders_RejectBadInput(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		builder services.EntryBuilder
	}{
		{"missing invoice id", services.InvoiceLines{Amount: dec("1")}},
		{"zero invoice amount", services.InvoiceLines{InvoiceID: "I", Amount: decimal.Zero}},
		{"negative tax", services.InvoiceLines{InvoiceID: "I", Amount: dec("1"), TaxAmount: dec("-1")}},
		{"expense without account", services.ExpenseLines{ExpenseID: "E", Amount: dec("1")}},
		{"negative cost", services.SalesReceiptLines{ReceiptID: "S", Amount: dec("1"), CostAmount: dec("-1")}},
		{"empty claim", services.ExpenseClaimLines{ClaimID: "C"}},
		{"claim item without account", services.ExpenseClaimLines{ClaimID: "C", Items: []services.ExpenseClaimItem{{Amount: dec("1")}}}},
		{"zero claim item", services.ExpenseClaimLines{ClaimID: "C", Items: []services.ExpenseClaimItem{{AccountCode: "6300", Amount: decimal.Zero}}}},
		{"empty adjustment", services.AdjustmentLines{}},
		{"empty manual entry", services.ManualLines{ReferenceID: "M"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.BuildEntry(tt.builder, date, "desc", "user-1")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestClosingLines(t *testing.T) {
	chart, err := services.DefaultChartOfAccounts()
	require.NoError(t, err)

	closing, err := services.ClosingLines(chart, map[string]decimal.Decimal{
		"4000": dec("1000"),
		"5000": dec("400"),
		"7000": dec("50"),
		"1000": dec("999"),
		"6100": decimal.Zero,
	}, "3100")
	require.NoError(t, err)
	assert.Equal(t, domain.TxAdjustment, closing.TransactionType())
	assert.Empty(t, closing.SourceID())

	byAccount := make(map[string]domain.JournalEntryLine)
	for _, l := range closing.Items {
		byAccount[l.AccountCode] = l
	}
	assert.NotContains(t, byAccount, "1000")
	assert.NotContains(t, byAccount, "6100")
	assert.True(t, byAccount["4000"].Debit.Equal(dec("1000")))
	assert.True(t, byAccount["5000"].Credit.Equal(dec("400")))
	assert.True(t, byAccount["7000"].Debit.Equal(dec("50")))
	assert.True(t, byAccount["3100"].Credit.Equal(dec("650")))
	assertBalanced(t, closing.Items)

	_, err = services.ClosingLines(chart, map[string]decimal.Decimal{"1000": dec("5")}, "3100")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

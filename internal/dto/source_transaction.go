package dto

import "github.com/shopspring/decimal"

// Source transaction kinds accepted by the from-transaction endpoint.
const (
	SourceInvoice      = "invoice"
	SourcePayment      = "payment"
	SourceSalesReceipt = "sales_receipt"
	SourceExpense      = "expense"
	SourceExpenseClaim = "expense_claim"
	SourceRefund       = "refund"
)

// InvoicePayload is an invoice issued on credit. Empty account codes use the chart defaults.
type InvoicePayload struct {
	InvoiceID         string          `json:"invoiceID" binding:"required"`
	ReceivableAccount string          `json:"receivableAccount"`
	RevenueAccount    string          `json:"revenueAccount"`
	TaxAccount        string          `json:"taxAccount"`
	Amount            decimal.Decimal `json:"amount"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
}

// PaymentPayload settles an invoice (incoming) or a bill (outgoing).
type PaymentPayload struct {
	PaymentID      string          `json:"paymentID" binding:"required"`
	CashAccount    string          `json:"cashAccount"`
	CounterAccount string          `json:"counterAccount"`
	SettlesID      string          `json:"settlesID"`
	Outgoing       bool            `json:"outgoing"`
	Amount         decimal.Decimal `json:"amount"`
}

// SalesReceiptPayload is a cash sale, optionally with its cost of goods.
type SalesReceiptPayload struct {
	ReceiptID        string          `json:"receiptID" binding:"required"`
	CashAccount      string          `json:"cashAccount"`
	RevenueAccount   string          `json:"revenueAccount"`
	Amount           decimal.Decimal `json:"amount"`
	CostAmount       decimal.Decimal `json:"costAmount"`
	CogsAccount      string          `json:"cogsAccount"`
	InventoryAccount string          `json:"inventoryAccount"`
}

// ExpensePayload is a paid expense or, with onCredit, a vendor bill.
type ExpensePayload struct {
	ExpenseID      string          `json:"expenseID" binding:"required"`
	ExpenseAccount string          `json:"expenseAccount" binding:"required"`
	PaymentAccount string          `json:"paymentAccount"`
	OnCredit       bool            `json:"onCredit"`
	Amount         decimal.Decimal `json:"amount"`
}

type ExpenseClaimItemPayload struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ExpenseClaimPayload is an approved employee expense claim.
type ExpenseClaimPayload struct {
	ClaimID        string                    `json:"claimID" binding:"required"`
	PayableAccount string                    `json:"payableAccount"`
	Items          []ExpenseClaimItemPayload `json:"items" binding:"required,min=1,dive"`
}

// RefundPayload returns money to a customer.
type RefundPayload struct {
	RefundID       string          `json:"refundID" binding:"required"`
	RevenueAccount string          `json:"revenueAccount"`
	CashAccount    string          `json:"cashAccount"`
	InvoiceID      string          `json:"invoiceID"`
	Amount         decimal.Decimal `json:"amount"`
}

// CreateFromTransactionRequest records the entry for one typed business transaction.
// The payload field matching Kind must be set.
type CreateFromTransactionRequest struct {
	Kind         string               `json:"kind" binding:"required,oneof=invoice payment sales_receipt expense expense_claim refund"`
	EntryDate    string               `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Description  string               `json:"description"`
	Invoice      *InvoicePayload      `json:"invoice" binding:"required_if=Kind invoice"`
	Payment      *PaymentPayload      `json:"payment" binding:"required_if=Kind payment"`
	SalesReceipt *SalesReceiptPayload `json:"salesReceipt" binding:"required_if=Kind sales_receipt"`
	Expense      *ExpensePayload      `json:"expense" binding:"required_if=Kind expense"`
	ExpenseClaim *ExpenseClaimPayload `json:"expenseClaim" binding:"required_if=Kind expense_claim"`
	Refund       *RefundPayload       `json:"refund" binding:"required_if=Kind refund"`
}

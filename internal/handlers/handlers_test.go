package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/core/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
	"github.com/SscSPs/ledgerbook/internal/handlers"
	"github.com/SscSPs/ledgerbook/internal/middleware"
)

const (
	testIssuer = "ledgerbook-test"
	testUser   = "accountant-1"
)

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	journal   *MockJournalService
	ledger    *MockLedgerService
	reporting *MockReportingService
	budgets   *MockBudgetService
	jwtSecret string
}

// generateTestToken creates a signed JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.journal = new(MockJournalService)
	suite.ledger = new(MockLedgerService)
	suite.reporting = new(MockReportingService)
	suite.budgets = new(MockBudgetService)

	chart, err := services.DefaultChartOfAccounts()
	suite.Require().NoError(err)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, testIssuer))
	handlers.RegisterAPIRoutes(v1, &portssvc.ServiceContainer{
		Chart:     chart,
		Journal:   suite.journal,
		Ledger:    suite.ledger,
		Reporting: suite.reporting,
		Budget:    suite.budgets,
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUser))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func postedEntry(id string) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:         id,
		EntryNumber:     "JE-20240110-00000001",
		EntryDate:       time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		TransactionType: domain.TxInvoice,
		TransactionID:   "INV-1",
		Status:          domain.Posted,
		Lines: []domain.JournalEntryLine{
			{LineID: "l1", EntryID: id, LineOrder: 1, AccountCode: "1100", Debit: decimal.NewFromInt(1000), Credit: decimal.Zero},
			{LineID: "l2", EntryID: id, LineOrder: 2, AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(1000)},
		},
	}
}

func manualEntryBody() map[string]any {
	return map[string]any{
		"entryDate":       "2024-01-10",
		"description":     "Invoice INV-1",
		"transactionType": "INVOICE",
		"transactionID":   "INV-1",
		"lines": []map[string]any{
			{"accountCode": "1100", "debit": "1000"},
			{"accountCode": "4000", "credit": "1000"},
		},
	}
}

// --- Journal entries ---

func (suite *HandlerTestSuite) TestCreateEntry_Success() {
	suite.journal.On("CreateEntry", mock.Anything, mock.MatchedBy(func(req domain.NewJournalEntry) bool {
		return req.CreatedBy == testUser &&
			req.Status == domain.Posted &&
			req.TransactionType == domain.TxInvoice &&
			req.EntryDate.Equal(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)) &&
			len(req.Lines) == 2 &&
			req.Lines[0].Debit.Equal(decimal.NewFromInt(1000)) &&
			req.Lines[1].Credit.Equal(decimal.NewFromInt(1000))
	})).Return(postedEntry("e-1"), nil).Once()

	w := suite.do(http.MethodPost, "/journal-entries", manualEntryBody())

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("e-1", resp.EntryID)
	suite.Equal("2024-01-10", resp.EntryDate)
	suite.True(resp.TotalDebit.Equal(resp.TotalCredit))
	suite.journal.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateEntry_DraftFlag() {
	body := manualEntryBody()
	body["draft"] = true
	suite.journal.On("CreateEntry", mock.Anything, mock.MatchedBy(func(req domain.NewJournalEntry) bool {
		return req.Status == domain.Draft
	})).Return(postedEntry("e-2"), nil).Once()

	w := suite.do(http.MethodPost, "/journal-entries", body)
	suite.Equal(http.StatusCreated, w.Code)
	suite.journal.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateEntry_ServiceErrors() {
	unknown := apperrors.NewLineValidationError(0, "account_code", "unknown account").WithCause(&apperrors.UnknownAccountError{Code: "9999"})
	tests := []struct {
		name      string
		err       error
		status    int
		field     string
		lineIndex *int
	}{
		{"unbalanced", &apperrors.UnbalancedEntryError{TotalDebit: decimal.NewFromInt(10), TotalCredit: decimal.NewFromInt(9)}, http.StatusBadRequest, "", nil},
		{"unknown account is a bad request", unknown, http.StatusBadRequest, "account_code", intPtr(0)},
		{"negative amount", apperrors.NewLineValidationError(1, "credit", "must not be negative").WithAmount(decimal.NewFromInt(-5)), http.StatusBadRequest, "credit", intPtr(1)},
		{"duplicate", fmt.Errorf("%w: %w", apperrors.ErrConflict, services.ErrJournalDuplicate), http.StatusConflict, "", nil},
		{"store failure", fmt.Errorf("boom"), http.StatusInternalServerError, "", nil},
		{"dependency failure", fmt.Errorf("save entry: %w: connection reset", apperrors.ErrInternal), http.StatusInternalServerError, "", nil},
		{"unauthorized", fmt.Errorf("%w: token revoked", apperrors.ErrUnauthorized), http.StatusUnauthorized, "", nil},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.journal.On("CreateEntry", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/journal-entries", manualEntryBody())

			suite.Equal(tt.status, w.Code, w.Body.String())
			var resp handlers.ErrorResponse
			suite.decode(w, &resp)
			suite.NotEmpty(resp.Error)
			suite.Equal(tt.field, resp.Field)
			suite.Equal(tt.lineIndex, resp.LineIndex)
		})
	}
}

func intPtr(i int) *int { return &i }

func (suite *HandlerTestSuite) TestCreateEntry_BindingRejections() {
	noLines := manualEntryBody()
	delete(noLines, "lines")
	badDate := manualEntryBody()
	badDate["entryDate"] = "10/01/2024"
	badType := manualEntryBody()
	badType["transactionType"] = "TRANSFER"

	for name, body := range map[string]map[string]any{"no lines": noLines, "bad date": badDate, "bad type": badType} {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/journal-entries", body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.journal.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateEntry_RequiresToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateFromTransaction_Invoice() {
	suite.journal.On("CreateEntry", mock.Anything, mock.MatchedBy(func(req domain.NewJournalEntry) bool {
		return req.TransactionType == domain.TxInvoice &&
			req.TransactionID == "INV-7" &&
			req.CreatedBy == testUser &&
			len(req.Lines) == 3 &&
			req.Lines[0].AccountCode == services.DefaultReceivableAccount &&
			req.Lines[0].Debit.Equal(decimal.NewFromInt(1100)) &&
			req.Lines[1].AccountCode == services.DefaultSalesAccount &&
			req.Lines[2].AccountCode == services.DefaultTaxPayableAccount
	})).Return(postedEntry("e-7"), nil).Once()

	w := suite.do(http.MethodPost, "/journal-entries/from-transaction", map[string]any{
		"kind":      "invoice",
		"entryDate": "2024-01-10",
		"invoice":   map[string]any{"invoiceID": "INV-7", "amount": "1000", "taxAmount": "100"},
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.journal.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateFromTransaction_Rejections() {
	tests := map[string]map[string]any{
		"missing payload": {"kind": "payment", "entryDate": "2024-01-10"},
		"unknown kind":    {"kind": "transfer", "entryDate": "2024-01-10"},
		"builder rejects non-positive amount": {
			"kind": "expense", "entryDate": "2024-01-10",
			"expense": map[string]any{"expenseID": "EXP-1", "expenseAccount": "6100", "amount": "0"},
		},
	}
	for name, body := range tests {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/journal-entries/from-transaction", body)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	suite.journal.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetEntry() {
	suite.journal.On("GetEntry", mock.Anything, "e-1").Return(postedEntry("e-1"), nil).Once()
	suite.journal.On("GetEntry", mock.Anything, "missing").Return(nil, fmt.Errorf("journal entry missing: %w", apperrors.ErrNotFound)).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/journal-entries/e-1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/journal-entries/missing", nil).Code)
}

func (suite *HandlerTestSuite) TestListEntriesByTransaction() {
	suite.journal.On("ListEntriesByTransaction", mock.Anything, domain.TxInvoice, "INV-1").
		Return([]domain.JournalEntry{*postedEntry("e-1")}, nil).Once()

	w := suite.do(http.MethodGet, "/journal-entries?transaction_type=INVOICE&transaction_id=INV-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Len(resp, 1)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/journal-entries?transaction_type=NOPE&transaction_id=X", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/journal-entries?transaction_type=INVOICE", nil).Code)
}

func (suite *HandlerTestSuite) TestPostAndReverse() {
	reversalOf := "e-1"
	reversal := postedEntry("e-r")
	reversal.ReversalOfEntryID = &reversalOf

	suite.journal.On("PostEntry", mock.Anything, "e-1", testUser).Return(postedEntry("e-1"), nil).Once()
	suite.journal.On("ReverseEntry", mock.Anything, "e-1", testUser).Return(reversal, nil).Once()
	suite.journal.On("ReverseEntry", mock.Anything, "e-r", testUser).
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, services.ErrJournalReversal)).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/journal-entries/e-1/post", nil).Code)

	w := suite.do(http.MethodPost, "/journal-entries/e-1/reverse", nil)
	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.ReversalOfEntryID)
	suite.Equal("e-1", *resp.ReversalOfEntryID)

	suite.Equal(http.StatusConflict, suite.do(http.MethodPost, "/journal-entries/e-r/reverse", nil).Code)
	suite.journal.AssertExpectations(suite.T())
}

// --- Accounts and ledger ---

func (suite *HandlerTestSuite) TestListAccounts() {
	w := suite.do(http.MethodGet, "/accounts", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decode(w, &resp)
	suite.NotEmpty(resp)
	suite.Equal("1000", resp[0].Code)
	suite.True(resp[0].IsCash)
	suite.Equal(domain.NormalDebit, resp[0].NormalBalance)
}

func (suite *HandlerTestSuite) TestAccountBalance() {
	asOf := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	suite.ledger.On("AccountBalance", mock.Anything, "1010", asOf).Return(decimal.NewFromInt(49_750_000), nil).Once()

	w := suite.do(http.MethodGet, "/accounts/1010/balance?asOf=2024-01-31", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AccountBalanceResponse
	suite.decode(w, &resp)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(49_750_000)))
	suite.Equal("2024-01-31", resp.AsOf)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/accounts/9999/balance", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/accounts/1010/balance?asOf=yesterday", nil).Code)
}

func (suite *HandlerTestSuite) TestQueryLedger() {
	r, _ := domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	entry := postedEntry("e-1")
	suite.ledger.On("Query", mock.Anything, r, "1100").
		Return([]domain.LedgerLine{{Entry: entry.Header(), Line: entry.Lines[0]}}, nil).Once()

	w := suite.do(http.MethodGet, "/ledger?from=2024-01-01&to=2024-01-31&accountCode=1100", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.LedgerLineResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.Equal("JE-20240110-00000001", resp[0].EntryNumber)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/ledger?from=2024-02-01&to=2024-01-01", nil).Code, "inverted range")
}

// --- Reports ---

func (suite *HandlerTestSuite) TestGeneralLedger_PassesPaging() {
	suite.reporting.On("GeneralLedger", mock.Anything, mock.MatchedBy(func(p portssvc.GeneralLedgerParams) bool {
		return p.Limit == 2 && p.PageToken == "abc" && p.AccountCode == "1010" &&
			p.Range.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&domain.GeneralLedgerReport{}, nil).Once()

	w := suite.do(http.MethodGet, "/reports/general-ledger?from=2024-01-01&to=2024-01-31&accountCode=1010&limit=2&pageToken=abc", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.reporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPeriodReports() {
	suite.reporting.On("ProfitAndLoss", mock.Anything, mock.Anything).Return(&domain.ProfitLossReport{}, nil).Once()
	suite.reporting.On("CashFlow", mock.Anything, mock.Anything).Return(nil, apperrors.NewValidationError("range", "bad")).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/reports/profit-and-loss?from=2024-01-01&to=2024-01-31", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/reports/cash-flow?from=2024-01-01&to=2024-01-31", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/reports/profit-and-loss?from=2024-01-01", nil).Code)
}

func (suite *HandlerTestSuite) TestPointInTimeReports() {
	asOf := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	suite.reporting.On("BalanceSheet", mock.Anything, asOf).Return(&domain.BalanceSheetReport{}, nil).Once()
	suite.ledger.On("TrialBalance", mock.Anything, mock.AnythingOfType("time.Time")).Return(&domain.TrialBalanceReport{}, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/reports/balance-sheet?asOf=2024-01-31", nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/reports/trial-balance", nil).Code)
	suite.reporting.AssertExpectations(suite.T())
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDrillDown() {
	suite.reporting.On("DrillDown", mock.Anything, mock.MatchedBy(func(p portssvc.DrillDownParams) bool {
		return p.ReportType == domain.ReportProfitAndLoss && p.AccountCode == "4000" && p.Limit == 10 && p.Offset == 5
	})).Return(&domain.DrillDownReport{TotalCount: 12}, nil).Once()

	w := suite.do(http.MethodGet, "/reports/drill-down?reportType=profit_loss&accountCode=4000&from=2024-01-01&to=2024-01-31&limit=10&offset=5", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp domain.DrillDownReport
	suite.decode(w, &resp)
	suite.Equal(12, resp.TotalCount)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/reports/drill-down?from=2024-01-01&to=2024-01-31", nil).Code)
}

// --- Budgets ---

func (suite *HandlerTestSuite) TestCreateBudget() {
	suite.budgets.On("CreateBudget", mock.Anything, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Name == "Q1" && len(b.Lines) == 1 && b.Lines[0].BudgetedAmount.Equal(decimal.NewFromInt(500))
	}), testUser).Return(&domain.Budget{BudgetID: "b-1", Name: "Q1"}, nil).Once()

	w := suite.do(http.MethodPost, "/budgets", map[string]any{
		"name":        "Q1",
		"periodStart": "2024-01-01",
		"periodEnd":   "2024-03-31",
		"lines":       []map[string]any{{"expenseCategory": "6100", "budgetedAmount": "500"}},
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	inverted := suite.do(http.MethodPost, "/budgets", map[string]any{
		"name":        "Q1",
		"periodStart": "2024-03-31",
		"periodEnd":   "2024-01-01",
		"lines":       []map[string]any{{"expenseCategory": "6100", "budgetedAmount": "500"}},
	})
	suite.Equal(http.StatusBadRequest, inverted.Code)
	suite.budgets.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBudgetReads() {
	suite.budgets.On("ListBudgets", mock.Anything, 10, 0).Return([]domain.Budget{{BudgetID: "b-1"}}, nil).Once()
	suite.budgets.On("GetBudget", mock.Anything, "b-1").Return(&domain.Budget{BudgetID: "b-1"}, nil).Once()
	suite.budgets.On("BudgetVariance", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/budgets?limit=10", nil)
	suite.Equal(http.StatusOK, w.Code)
	var list dto.ListBudgetsResponse
	suite.decode(w, &list)
	suite.Len(list.Budgets, 1)

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/budgets/b-1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/budgets/missing/variance", nil).Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
	"github.com/SscSPs/ledgerbook/internal/middleware"
)

// ledgerHandler serves the chart of accounts, account balances and raw ledger lines.
type ledgerHandler struct {
	chart         portssvc.ChartOfAccounts
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(chart portssvc.ChartOfAccounts, ledgerService portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{chart: chart, ledgerService: ledgerService}
}

func registerLedgerRoutes(rg *gin.RouterGroup, chart portssvc.ChartOfAccounts, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(chart, ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code/balance", h.accountBalance)
	}
	rg.GET("/ledger", h.queryLedger)
}

// asOfOrToday parses an optional asOf date, defaulting to the current day.
func asOfOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	return dto.ParseDate(s)
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToAccountResponses(h.chart.Accounts()))
}

// accountBalance godoc
// @Summary Get an account balance
// @Description Normal-side balance of an account from inception through asOf (inclusive).
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code"
// @Param   asOf query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown account"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{code}/balance [get]
func (h *ledgerHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	code := c.Param("code")

	var q dto.AsOfQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "balance query")
		return
	}
	asOf, err := asOfOrToday(q.AsOf)
	if err != nil {
		respondError(c, logger, err, "getting account balance")
		return
	}

	acc, err := h.chart.Resolve(code)
	if err != nil {
		respondError(c, logger, err, "getting account balance")
		return
	}
	balance, err := h.ledgerService.AccountBalance(c.Request.Context(), code, asOf)
	if err != nil {
		respondError(c, logger.With(slog.String("account_code", code)), err, "getting account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountCode:   code,
		AsOf:          dto.FormatDate(asOf),
		Balance:       balance,
		NormalBalance: acc.NormalBalance(),
	})
}

// queryLedger godoc
// @Summary Query ledger lines
// @Description Ledger lines of POSTED and REVERSED entries in an inclusive date range, in ledger order.
// @Tags ledger
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Param   accountCode query string false "Restrict to one account"
// @Success 200 {array} dto.LedgerLineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) queryLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "ledger query")
		return
	}
	r, err := dto.ParseRange(q.From, q.To)
	if err != nil {
		respondError(c, logger, err, "querying ledger")
		return
	}

	lines, err := h.ledgerService.Query(c.Request.Context(), r, q.AccountCode)
	if err != nil {
		respondError(c, logger, err, "querying ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerLineResponses(lines))
}

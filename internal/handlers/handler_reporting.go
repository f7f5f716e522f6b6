package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
	"github.com/SscSPs/ledgerbook/internal/middleware"
)

// reportingHandler serves the derived financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	ledgerService    portssvc.LedgerSvc
}

func newReportingHandler(reportingService portssvc.ReportingService, ledgerService portssvc.LedgerSvc) *reportingHandler {
	return &reportingHandler{reportingService: reportingService, ledgerService: ledgerService}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, ledgerService portssvc.LedgerSvc) {
	h := newReportingHandler(reportingService, ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/general-ledger", h.generalLedger)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/drill-down", h.drillDown)
	}
}

// bindPeriod binds and parses from/to, writing the error response on failure.
func bindPeriod(c *gin.Context, q *dto.PeriodQuery) (domain.DateRange, bool) {
	logger := middleware.GetLoggerFromContext(c)
	if err := c.ShouldBindQuery(q); err != nil {
		badRequest(c, logger, err, "report period")
		return domain.DateRange{}, false
	}
	r, err := dto.ParseRange(q.From, q.To)
	if err != nil {
		respondError(c, logger, err, "generating report")
		return domain.DateRange{}, false
	}
	return r, true
}

// generalLedger godoc
// @Summary General ledger
// @Description Per-account sections with opening, running and closing balances. Supports cursor paging with limit and pageToken.
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Param   accountCode query string false "Restrict to one account"
// @Param   limit query int false "Lines per page (default 500, max 1000)"
// @Param   pageToken query string false "Token from the previous page"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/general-ledger [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.GeneralLedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "general ledger query")
		return
	}
	r, err := dto.ParseRange(q.From, q.To)
	if err != nil {
		respondError(c, logger, err, "generating general ledger")
		return
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), portssvc.GeneralLedgerParams{
		Range:       r,
		AccountCode: q.AccountCode,
		Limit:       q.Limit,
		PageToken:   q.PageToken,
	})
	if err != nil {
		respondError(c, logger, err, "generating general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

// profitAndLoss godoc
// @Summary Profit and loss
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.ProfitLossReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	r, ok := bindPeriod(c, &dto.PeriodQuery{})
	if !ok {
		return
	}
	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), r)
	if err != nil {
		respondError(c, middleware.GetLoggerFromContext(c), err, "generating profit and loss")
		return
	}
	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.AsOfQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "balance sheet query")
		return
	}
	asOf, err := asOfOrToday(q.AsOf)
	if err != nil {
		respondError(c, logger, err, "generating balance sheet")
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "generating balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// cashFlow godoc
// @Summary Cash flow statement
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowStatement
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	r, ok := bindPeriod(c, &dto.PeriodQuery{})
	if !ok {
		return
	}
	report, err := h.reportingService.CashFlow(c.Request.Context(), r)
	if err != nil {
		respondError(c, middleware.GetLoggerFromContext(c), err, "generating cash flow")
		return
	}
	c.JSON(http.StatusOK, report)
}

// trialBalance godoc
// @Summary Trial balance
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.AsOfQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "trial balance query")
		return
	}
	asOf, err := asOfOrToday(q.AsOf)
	if err != nil {
		respondError(c, logger, err, "generating trial balance")
		return
	}

	report, err := h.ledgerService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "generating trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// drillDown godoc
// @Summary Drill down into a report line
// @Description Lists the source transactions behind one account on a profit and loss, balance sheet or general ledger report.
// @Tags reports
// @Produce  json
// @Param   reportType query string true "profit_loss, balance_sheet or general_ledger"
// @Param   accountCode query string true "Account code"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50, max 500)"
// @Param   offset query int false "Offset"
// @Success 200 {object} domain.DrillDownReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/drill-down [get]
func (h *reportingHandler) drillDown(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.DrillDownQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "drill-down query")
		return
	}
	r, err := dto.ParseRange(q.From, q.To)
	if err != nil {
		respondError(c, logger, err, "generating drill-down")
		return
	}

	report, err := h.reportingService.DrillDown(c.Request.Context(), portssvc.DrillDownParams{
		ReportType:  domain.ReportType(q.ReportType),
		AccountCode: q.AccountCode,
		Range:       r,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		respondError(c, logger, err, "generating drill-down")
		return
	}
	c.JSON(http.StatusOK, report)
}

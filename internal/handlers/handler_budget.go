package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
	"github.com/SscSPs/ledgerbook/internal/middleware"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(budgetService portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: budgetService}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudget)
		budgets.GET("/:budgetID/variance", h.budgetVariance)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description Each line plans an amount for an account code or a chart subcategory.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err, "budget request")
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	budget, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, err, "creating budget")
		return
	}
	created, err := h.budgetService.CreateBudget(c.Request.Context(), budget, userID)
	if err != nil {
		respondError(c, logger, err, "creating budget")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(created))
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce  json
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   offset query int false "Offset"
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.ListBudgetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "list budgets query")
		return
	}
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		respondError(c, logger, err, "listing budgets")
		return
	}

	resp := dto.ListBudgetsResponse{Budgets: make([]dto.BudgetResponse, len(budgets))}
	for i := range budgets {
		resp.Budgets[i] = dto.ToBudgetResponse(&budgets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{budgetID} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	budgetID := c.Param("budgetID")

	budget, err := h.budgetService.GetBudget(c.Request.Context(), budgetID)
	if err != nil {
		respondError(c, logger.With(slog.String("budget_id", budgetID)), err, "getting budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// budgetVariance godoc
// @Summary Budget variance
// @Description Compares each budget line with ledger expense activity over the budget period.
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {object} domain.BudgetReport
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{budgetID}/variance [get]
func (h *budgetHandler) budgetVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	budgetID := c.Param("budgetID")

	report, err := h.budgetService.BudgetVariance(c.Request.Context(), budgetID)
	if err != nil {
		respondError(c, logger.With(slog.String("budget_id", budgetID)), err, "computing budget variance")
		return
	}
	c.JSON(http.StatusOK, report)
}

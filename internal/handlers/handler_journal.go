package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
	"github.com/SscSPs/ledgerbook/internal/core/domain"
	portssvc "github.com/SscSPs/ledgerbook/internal/core/ports/services"
	"github.com/SscSPs/ledgerbook/internal/core/services"
	"github.com/SscSPs/ledgerbook/internal/dto"
	"github.com/SscSPs/ledgerbook/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes registers the journal entry routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/from-transaction", h.createFromTransaction)
		entries.GET("", h.listEntriesByTransaction)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// userOrAbort returns the acting user, aborting with 401 when none is set.
func userOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// createEntry godoc
// @Summary Record a journal entry
// @Description Validates and records a balanced journal entry. Nothing is written when validation fails.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Malformed or unbalanced entry"
// @Failure 409 {object} ErrorResponse "An active entry already exists for the transaction"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err, "journal entry request")
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	newEntry, err := req.ToNewJournalEntry(userID)
	if err != nil {
		respondError(c, logger, err, "creating journal entry")
		return
	}
	entry, err := h.journalService.CreateEntry(c.Request.Context(), newEntry)
	if err != nil {
		respondError(c, logger, err, "creating journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// createFromTransaction godoc
// @Summary Record the entry for a business transaction
// @Description Expands a typed source transaction (invoice, payment, sales receipt, expense, expense claim, refund) into balanced lines and records it.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateFromTransactionRequest true "Source transaction"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/from-transaction [post]
func (h *journalHandler) createFromTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateFromTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err, "source transaction request")
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	entryDate, err := dto.ParseDate(req.EntryDate)
	if err != nil {
		respondError(c, logger, err, "creating journal entry")
		return
	}
	builder, err := entryBuilderFor(req)
	if err != nil {
		respondError(c, logger, err, "creating journal entry")
		return
	}
	newEntry, err := services.BuildEntry(builder, entryDate, req.Description, userID)
	if err != nil {
		respondError(c, logger, err, "creating journal entry")
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), newEntry)
	if err != nil {
		respondError(c, logger, err, "creating journal entry")
		return
	}
	logger.Info("Journal entry recorded from source transaction",
		slog.String("kind", req.Kind), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// entryBuilderFor selects the line builder for the request's kind.
func entryBuilderFor(req dto.CreateFromTransactionRequest) (services.EntryBuilder, error) {
	missing := apperrors.NewValidationError(req.Kind, "payload for kind is required")
	switch req.Kind {
	case dto.SourceInvoice:
		if p := req.Invoice; p != nil {
			return services.InvoiceLines{
				InvoiceID: p.InvoiceID, ReceivableAccount: p.ReceivableAccount, RevenueAccount: p.RevenueAccount,
				TaxAccount: p.TaxAccount, Amount: p.Amount, TaxAmount: p.TaxAmount,
			}, nil
		}
	case dto.SourcePayment:
		if p := req.Payment; p != nil {
			return services.PaymentLines{
				PaymentID: p.PaymentID, CashAccount: p.CashAccount, CounterAccount: p.CounterAccount,
				SettlesID: p.SettlesID, Outgoing: p.Outgoing, Amount: p.Amount,
			}, nil
		}
	case dto.SourceSalesReceipt:
		if p := req.SalesReceipt; p != nil {
			return services.SalesReceiptLines{
				ReceiptID: p.ReceiptID, CashAccount: p.CashAccount, RevenueAccount: p.RevenueAccount,
				Amount: p.Amount, CostAmount: p.CostAmount, CogsAccount: p.CogsAccount, InventoryAccount: p.InventoryAccount,
			}, nil
		}
	case dto.SourceExpense:
		if p := req.Expense; p != nil {
			return services.ExpenseLines{
				ExpenseID: p.ExpenseID, ExpenseAccount: p.ExpenseAccount, PaymentAccount: p.PaymentAccount,
				OnCredit: p.OnCredit, Amount: p.Amount,
			}, nil
		}
	case dto.SourceExpenseClaim:
		if p := req.ExpenseClaim; p != nil {
			items := make([]services.ExpenseClaimItem, len(p.Items))
			for i, it := range p.Items {
				items[i] = services.ExpenseClaimItem{AccountCode: it.AccountCode, Amount: it.Amount, Description: it.Description}
			}
			return services.ExpenseClaimLines{ClaimID: p.ClaimID, PayableAccount: p.PayableAccount, Items: items}, nil
		}
	case dto.SourceRefund:
		if p := req.Refund; p != nil {
			return services.RefundLines{
				RefundID: p.RefundID, RevenueAccount: p.RevenueAccount, CashAccount: p.CashAccount,
				InvoiceID: p.InvoiceID, Amount: p.Amount,
			}, nil
		}
	default:
		return nil, apperrors.NewValidationError("kind", "unsupported source transaction kind "+req.Kind)
	}
	return nil, missing
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "getting journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntriesByTransaction godoc
// @Summary List entries for a source transaction
// @Description Lists every entry recorded for one source transaction, reversals included.
// @Tags journal
// @Produce  json
// @Param   transaction_type query string true "Transaction type"
// @Param   transaction_id query string true "Transaction ID"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntriesByTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var q dto.ListEntriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err, "list entries query")
		return
	}
	txType := domain.TransactionType(q.TransactionType)
	if !txType.Valid() {
		respondError(c, logger, apperrors.NewValidationError("transaction_type", "unknown transaction type "+q.TransactionType), "listing journal entries")
		return
	}

	entries, err := h.journalService.ListEntriesByTransaction(c.Request.Context(), txType, q.TransactionID)
	if err != nil {
		respondError(c, logger, err, "listing journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Moves a DRAFT entry to POSTED. Posting a POSTED entry is a no-op.
// @Tags journal
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is reversed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entryID := c.Param("entryID")
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "posting journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Records the offsetting entry dated today and marks the original REVERSED.
// @Tags journal
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse "The reversal entry"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not posted or is itself a reversal"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal-entries/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entryID := c.Param("entryID")
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "reversing journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

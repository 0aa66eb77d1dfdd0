package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/core/workflow"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles the employee side of expenses and approver decisions.
type expenseHandler struct {
	expenseService  portssvc.ExpenseSvcFacade
	approvalService portssvc.ApprovalSvc
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, as portssvc.ApprovalSvc) *expenseHandler {
	return &expenseHandler{expenseService: es, approvalService: as}
}

// registerExpenseRoutes registers the expense routes of one company. actionLimit guards the
// approval action endpoint; nil disables it.
func registerExpenseRoutes(
	company *gin.RouterGroup,
	expenseService portssvc.ExpenseSvcFacade,
	approvalService portssvc.ApprovalSvc,
	actionLimit gin.HandlerFunc,
) {
	h := newExpenseHandler(expenseService, approvalService)

	expenses := company.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/summary", h.getSummary)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.POST("/:expenseID/submit", h.submitExpense)
		expenses.GET("/:expenseID/approval-state", h.getApprovalState)
		expenses.POST("/:expenseID/reconcile-currency", h.reconcileCurrency)

		actionHandlers := []gin.HandlerFunc{h.submitAction}
		if actionLimit != nil {
			actionHandlers = append([]gin.HandlerFunc{actionLimit}, actionHandlers...)
		}
		expenses.POST("/:expenseID/actions", actionHandlers...)
	}

	company.GET("/approvals/inbox", h.getInbox)
}

// createExpense godoc
// @Summary Create an expense
// @Description Records a claim for the caller. The amount is converted into the company currency; a rate failure flags the expense for reconciliation instead of failing.
// @Tags expenses
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Caller is not a member of the company"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	employeeID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), companyID, req, employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("status", string(expense.Status)),
		slog.Bool("needs_currency_reconciliation", expense.NeedsCurrencyReconciliation))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Newest first, paginated with an opaque token.
// @Tags expenses
// @Produce json
// @Param companyID path string true "Company ID"
// @Param employeeID query string false "Only this employee's expenses"
// @Param status query string false "Filter by status" Enums(draft, pending, approved, rejected)
// @Param limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid query or token"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, nextToken, err := h.expenseService.ListExpenses(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses, nextToken))
}

// getSummary godoc
// @Summary Summarize expenses
// @Description Counts expenses per status and totals them in the company currency, using the converted amount where known.
// @Tags expenses
// @Produce json
// @Param companyID path string true "Company ID"
// @Param employeeID query string false "Only this employee's expenses"
// @Success 200 {object} dto.ExpenseSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/summary [get]
func (h *expenseHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	var params dto.ExpenseSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ExpenseSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.expenseService.Summary(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to summarize expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseSummaryResponse(summary))
}

// getInbox godoc
// @Summary List expenses awaiting the caller
// @Description Pending expenses whose current approval step includes the caller. Sequential chains list an expense only when it is the caller's turn.
// @Tags approvals
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.InboxResponse
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /companies/{companyID}/approvals/inbox [get]
func (h *expenseHandler) getInbox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	approverID, ok := callerID(c, logger)
	if !ok {
		return
	}

	items, err := h.approvalService.Inbox(c.Request.Context(), companyID, approverID)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to load approval inbox")
		return
	}

	expenses := make([]domain.Expense, len(items))
	states := make([]workflow.State, len(items))
	for i, item := range items {
		expenses[i] = item.Expense
		states[i] = item.State
	}
	c.JSON(http.StatusOK, dto.ToInboxResponse(expenses, states))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("companyID"), expenseID)
	if err != nil {
		respondError(c, logger.With(slog.String("expense_id", expenseID)), err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Only the employee may edit, and only while no approver has acted.
// @Tags expenses
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expenseID path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not the expense owner"
// @Failure 409 {object} map[string]string "Expense can no longer be edited"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	employeeID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("expense_id", expenseID))
	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("companyID"), expenseID, req, employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to update expense")
		return
	}

	logger.Info("Expense updated")
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// submitExpense godoc
// @Summary Submit a draft expense for approval
// @Tags expenses
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} map[string]string "Not the expense owner"
// @Failure 409 {object} map[string]string "Expense already submitted"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/{expenseID}/submit [post]
func (h *expenseHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")
	employeeID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("expense_id", expenseID))
	expense, err := h.expenseService.SubmitExpense(c.Request.Context(), c.Param("companyID"), expenseID, employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to submit expense")
		return
	}

	logger.Info("Expense submitted for approval")
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// submitAction godoc
// @Summary Approve or reject an expense
// @Description Records the caller's decision in the approval ledger. Repeating a recorded decision is a no-op reported with duplicate=true. A rejection needs a comment.
// @Tags expenses
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expenseID path string true "Expense ID"
// @Param action body dto.SubmitActionRequest true "Decision"
// @Success 200 {object} dto.ActionResponse
// @Failure 400 {object} map[string]string "Invalid action or unknown expense"
// @Failure 403 {object} map[string]string "Caller may not act on this expense now"
// @Failure 409 {object} map[string]string "Expense already finalized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/{expenseID}/actions [post]
func (h *expenseHandler) submitAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	expenseID := c.Param("expenseID")
	var req dto.SubmitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitAction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	approverID, ok := callerID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("expense_id", expenseID))

	// Scope the expense to the company in the path before touching the ledger.
	if _, err := h.expenseService.GetExpense(c.Request.Context(), companyID, expenseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.NewValidationErrorWithCause("expense "+expenseID+" does not exist", err)
		}
		respondError(c, logger, err, "Failed to record approval action")
		return
	}

	res, err := h.approvalService.SubmitAction(c.Request.Context(), portssvc.SubmitActionInput{
		ExpenseID:    expenseID,
		ApproverID:   approverID,
		ApproverName: middleware.GetUserNameFromContext(c),
		Action:       req.Action,
		Comment:      req.Comment,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to record approval action")
		return
	}

	c.JSON(http.StatusOK, dto.ToActionResponse(res.Expense, res.State, res.Duplicate, res.Reconciled))
}

// getApprovalState godoc
// @Summary Get the derived approval state
// @Description Recomputes the state from the pinned policy and the ledger, and reports whether it differs from the stored status.
// @Tags expenses
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ApprovalStateResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/{expenseID}/approval-state [get]
func (h *expenseHandler) getApprovalState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	expense, st, drift, err := h.expenseService.ApprovalState(c.Request.Context(), c.Param("companyID"), expenseID)
	if err != nil {
		respondError(c, logger.With(slog.String("expense_id", expenseID)), err, "Failed to compute approval state")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalStateResponse(expense, st, drift))
}

// reconcileCurrency godoc
// @Summary Retry the currency conversion of an expense
// @Description For expenses flagged after a rate lookup failure. Allowed for the employee and company admins.
// @Tags expenses
// @Produce json
// @Param companyID path string true "Company ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} map[string]string "Not allowed to reconcile"
// @Failure 503 {object} map[string]string "Exchange rate still unavailable"
// @Security BearerAuth
// @Router /companies/{companyID}/expenses/{expenseID}/reconcile-currency [post]
func (h *expenseHandler) reconcileCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")
	userID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("expense_id", expenseID))
	expense, err := h.expenseService.ReconcileCurrency(c.Request.Context(), c.Param("companyID"), expenseID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile expense currency")
		return
	}

	logger.Info("Expense currency reconciled", slog.Bool("needs_currency_reconciliation", expense.NeedsCurrencyReconciliation))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/dto"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalRuleHandler handles rule administration. Rule edits never reach expenses that
// already pinned a policy.
type approvalRuleHandler struct {
	ruleService portssvc.ApprovalRuleSvcFacade
}

func newApprovalRuleHandler(rs portssvc.ApprovalRuleSvcFacade) *approvalRuleHandler {
	return &approvalRuleHandler{ruleService: rs}
}

func registerApprovalRuleRoutes(company *gin.RouterGroup, ruleService portssvc.ApprovalRuleSvcFacade) {
	h := newApprovalRuleHandler(ruleService)

	rules := company.Group("/approval-rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.GET("/:ruleID", h.getRule)
		rules.PUT("/:ruleID", h.updateRule)
		rules.POST("/:ruleID/deactivate", h.deactivateRule)
	}
}

// createRule godoc
// @Summary Create an approval rule
// @Description Configures a sequential, percentage, specific_approver or hybrid rule. The amount threshold decides which rule covers an expense.
// @Tags approval rules
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param rule body dto.CreateApprovalRuleRequest true "Rule definition"
// @Success 201 {object} dto.ApprovalRuleResponse
// @Failure 400 {object} map[string]string "Invalid rule"
// @Security BearerAuth
// @Router /companies/{companyID}/approval-rules [post]
func (h *approvalRuleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	var req dto.CreateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("rule_type", string(req.RuleType)))
	rule, err := h.ruleService.CreateRule(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create approval rule")
		return
	}

	logger.Info("Approval rule created", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, dto.ToApprovalRuleResponse(rule))
}

// listRules godoc
// @Summary List approval rules
// @Tags approval rules
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.ListApprovalRulesResponse
// @Security BearerAuth
// @Router /companies/{companyID}/approval-rules [get]
func (h *approvalRuleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	rules, err := h.ruleService.ListRules(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list approval rules")
		return
	}
	c.JSON(http.StatusOK, dto.ToListApprovalRulesResponse(rules))
}

// getRule godoc
// @Summary Get an approval rule
// @Tags approval rules
// @Produce json
// @Param companyID path string true "Company ID"
// @Param ruleID path string true "Rule ID"
// @Success 200 {object} dto.ApprovalRuleResponse
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /companies/{companyID}/approval-rules/{ruleID} [get]
func (h *approvalRuleHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")

	rule, err := h.ruleService.GetRule(c.Request.Context(), c.Param("companyID"), ruleID)
	if err != nil {
		respondError(c, logger.With(slog.String("rule_id", ruleID)), err, "Failed to retrieve approval rule")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalRuleResponse(rule))
}

// updateRule godoc
// @Summary Update an approval rule
// @Description Changes apply to expenses that have not yet received their first action.
// @Tags approval rules
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param ruleID path string true "Rule ID"
// @Param rule body dto.UpdateApprovalRuleRequest true "Fields to change"
// @Success 200 {object} dto.ApprovalRuleResponse
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /companies/{companyID}/approval-rules/{ruleID} [put]
func (h *approvalRuleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")
	var req dto.UpdateApprovalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("rule_id", ruleID))
	rule, err := h.ruleService.UpdateRule(c.Request.Context(), c.Param("companyID"), ruleID, req, updaterUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to update approval rule")
		return
	}

	logger.Info("Approval rule updated")
	c.JSON(http.StatusOK, dto.ToApprovalRuleResponse(rule))
}

// deactivateRule godoc
// @Summary Deactivate an approval rule
// @Tags approval rules
// @Produce json
// @Param companyID path string true "Company ID"
// @Param ruleID path string true "Rule ID"
// @Success 200 {object} dto.ApprovalRuleResponse
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /companies/{companyID}/approval-rules/{ruleID}/deactivate [post]
func (h *approvalRuleHandler) deactivateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")
	updaterUserID, ok := callerID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("rule_id", ruleID))
	rule, err := h.ruleService.DeactivateRule(c.Request.Context(), c.Param("companyID"), ruleID, updaterUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to deactivate approval rule")
		return
	}

	logger.Info("Approval rule deactivated")
	c.JSON(http.StatusOK, dto.ToApprovalRuleResponse(rule))
}

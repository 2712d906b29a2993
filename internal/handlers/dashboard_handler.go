package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard and the financial health report
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
	healthService    services.FinancialHealthServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService services.DashboardServiceInterface,
	healthService services.FinancialHealthServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		healthService:    healthService,
	}
}

// GetDashboard returns balances, month totals, savings progress and notes
// @Summary Dashboard
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param scope query string false "Scope" Enums(personal, family) default(personal)
// @Param range query int false "Notes window in days" Enums(7, 30) default(7)
// @Param type query string false "Notes type" Enums(income, expense) default(expense)
// @Success 200 {object} SuccessResponse{data=dto.DashboardResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid query"
// @Failure 404 {object} errors.ErrorResponse "FAMILY_004 - Family scope without a family"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.DashboardQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return err
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, &query)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dashboard})
}

// GetFinancialHealth scores the month-to-date finances of a scope
// @Summary Financial health
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param scope query string false "Scope" Enums(personal, family) default(personal)
// @Success 200 {object} SuccessResponse{data=dto.FinancialHealthResponse}
// @Failure 404 {object} errors.ErrorResponse "FAMILY_004 - Family scope without a family"
// @Router /financial-health [get]
func (h *DashboardHandler) GetFinancialHealth(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.FinancialHealthQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return err
	}

	report, err := h.healthService.GetFinancialHealth(userID, query.Scope)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}

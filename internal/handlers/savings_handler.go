package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// SavingsHandler handles the caller's personal savings targets
type SavingsHandler struct {
	savingsService services.SavingsServiceInterface
	language       finance.Language
}

// NewSavingsHandler creates a savings handler whose warnings use lang
func NewSavingsHandler(savingsService services.SavingsServiceInterface, lang finance.Language) *SavingsHandler {
	return &SavingsHandler{
		savingsService: savingsService,
		language:       lang,
	}
}

// ListSavings returns the caller's personal savings targets, newest first
// @Summary List savings targets
// @Tags Savings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]dto.SavingsResponse}
// @Router /savings [get]
func (h *SavingsHandler) ListSavings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	targets, err := h.savingsService.ListTargets(userID)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewSavingsResponses(targets, h.language)})
}

// CreateSavings creates a personal savings target
// @Summary Create savings target
// @Tags Savings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSavingsRequest true "Savings target"
// @Success 201 {object} SuccessResponse{data=dto.SavingsResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 or SAVINGS_002 - Invalid amounts"
// @Router /savings [post]
func (h *SavingsHandler) CreateSavings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateSavingsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	target, err := h.savingsService.CreateTarget(userID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewSavingsResponse(target, h.language),
		Message: "Savings target created successfully",
	})
}

// UpdateSavings changes the fields present in the body
// @Summary Update savings target
// @Tags Savings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Savings target ID (UUID)"
// @Param request body dto.UpdateSavingsRequest true "Changed fields"
// @Success 200 {object} SuccessResponse{data=dto.SavingsResponse}
// @Failure 404 {object} errors.ErrorResponse "SAVINGS_001 - Savings target not found"
// @Router /savings/{id} [put]
func (h *SavingsHandler) UpdateSavings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Savings target ID must be a valid UUID"))
	}

	var req dto.UpdateSavingsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	target, err := h.savingsService.UpdateTarget(userID, targetID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewSavingsResponse(target, h.language),
		Message: "Savings target updated successfully",
	})
}

// DeleteSavings removes a personal savings target
// @Summary Delete savings target
// @Tags Savings
// @Security BearerAuth
// @Param id path string true "Savings target ID (UUID)"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "SAVINGS_001 - Savings target not found"
// @Router /savings/{id} [delete]
func (h *SavingsHandler) DeleteSavings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Savings target ID must be a valid UUID"))
	}

	if err := h.savingsService.DeleteTarget(userID, targetID); err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Savings target deleted successfully"})
}

// Deposit adds money to a savings target
// @Summary Deposit into savings target
// @Tags Savings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Savings target ID (UUID)"
// @Param request body dto.DepositRequest true "Deposit amount"
// @Success 200 {object} SuccessResponse{data=dto.SavingsResponse}
// @Failure 404 {object} errors.ErrorResponse "SAVINGS_001 - Savings target not found"
// @Router /savings/{id}/deposit [post]
func (h *SavingsHandler) Deposit(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Savings target ID must be a valid UUID"))
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	target, err := h.savingsService.Deposit(userID, targetID, req.Amount)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewSavingsResponse(target, h.language),
		Message: "Deposit recorded",
	})
}

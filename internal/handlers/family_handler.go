package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// FamilyHandler handles families, memberships and the records they share
type FamilyHandler struct {
	familyService services.FamilyServiceInterface
	language      finance.Language
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService services.FamilyServiceInterface, lang finance.Language) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
		language:      lang,
	}
}

// CreateFamily creates a family owned by the caller
// @Summary Create family
// @Tags Families
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateFamilyRequest true "Family name"
// @Success 201 {object} SuccessResponse{data=dto.FamilyResponse}
// @Failure 409 {object} errors.ErrorResponse "FAMILY_003 - Already in a family"
// @Router /families [post]
func (h *FamilyHandler) CreateFamily(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateFamilyRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	family, err := h.familyService.CreateFamily(userID, req.Name)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    family,
		Message: "Family created successfully",
	})
}

// JoinFamily joins the family with the given invite code
// @Summary Join family
// @Tags Families
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.JoinFamilyRequest true "Invite code"
// @Success 200 {object} SuccessResponse{data=dto.FamilyResponse}
// @Failure 404 {object} errors.ErrorResponse "FAMILY_002 - Unknown invite code"
// @Failure 409 {object} errors.ErrorResponse "FAMILY_003 - Already in a family"
// @Router /families/join [post]
func (h *FamilyHandler) JoinFamily(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.JoinFamilyRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	family, err := h.familyService.JoinFamily(userID, req.InviteCode)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    family,
		Message: "Joined family successfully",
	})
}

// LeaveFamily removes the caller from their family
// @Summary Leave family
// @Tags Families
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "FAMILY_004 - Not a family member"
// @Router /families/leave [post]
func (h *FamilyHandler) LeaveFamily(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	if err := h.familyService.LeaveFamily(userID); err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Left family successfully"})
}

// GetMyFamily returns the caller's family with its members
// @Summary Current family
// @Tags Families
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse{data=dto.FamilyResponse}
// @Failure 404 {object} errors.ErrorResponse "FAMILY_004 - Not a family member"
// @Router /families/me [get]
func (h *FamilyHandler) GetMyFamily(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	family, err := h.familyService.GetMyFamily(userID)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: family})
}

// ListTransactions returns the family's shared transactions
// @Summary List family transactions
// @Tags Families
// @Security BearerAuth
// @Produce json
// @Param type query string false "Filter by type" Enums(income, expense)
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} SuccessResponse{data=[]dto.TransactionResponse,meta=dto.PaginationMeta}
// @Router /families/transactions [get]
func (h *FamilyHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.TransactionListQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return err
	}
	query.Normalize()

	transactions, total, err := h.familyService.ListTransactions(userID, &query)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewTransactionResponses(transactions),
		Meta: dto.NewPaginationMeta(query.Page, query.PageSize, total),
	})
}

// CreateTransaction records a transaction shared with the family
// @Summary Create family transaction
// @Tags Families
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "FAMILY_004 - Not a family member"
// @Router /families/transactions [post]
func (h *FamilyHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.familyService.CreateTransaction(userID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewTransactionResponse(transaction),
		Message: "Transaction created successfully",
	})
}

// UpdateTransaction changes a family transaction
// @Summary Update family transaction
// @Tags Families
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Param request body dto.UpdateTransactionRequest true "Changed fields"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /families/transactions/{id} [put]
func (h *FamilyHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Transaction ID must be a valid UUID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.familyService.UpdateTransaction(userID, transactionID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewTransactionResponse(transaction),
		Message: "Transaction updated successfully",
	})
}

// DeleteTransaction removes a family transaction
// @Summary Delete family transaction
// @Tags Families
// @Security BearerAuth
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /families/transactions/{id} [delete]
func (h *FamilyHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Transaction ID must be a valid UUID"))
	}

	if err := h.familyService.DeleteTransaction(userID, transactionID); err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction deleted successfully"})
}

// ListSavings returns the family's savings targets
// @Summary List family savings targets
// @Tags Families
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]dto.SavingsResponse}
// @Router /families/savings [get]
func (h *FamilyHandler) ListSavings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	targets, err := h.familyService.ListSavings(userID)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewSavingsResponses(targets, h.language)})
}

// CreateSavings creates a savings target shared with the family
// @Summary Create family savings target
// @Tags Families
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSavingsRequest true "Savings target"
// @Success 201 {object} SuccessResponse{data=dto.SavingsResponse}
// @Router /families/savings [post]
func (h *FamilyHandler) CreateSavings(c echo.Context) error {
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

	target, err := h.familyService.CreateSavings(userID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewSavingsResponse(target, h.language),
		Message: "Savings target created successfully",
	})
}

// DeleteSavings removes a family savings target
// @Summary Delete family savings target
// @Tags Families
// @Security BearerAuth
// @Param id path string true "Savings target ID (UUID)"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "SAVINGS_001 - Savings target not found"
// @Router /families/savings/{id} [delete]
func (h *FamilyHandler) DeleteSavings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Savings target ID must be a valid UUID"))
	}

	if err := h.familyService.DeleteSavings(userID, targetID); err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Savings target deleted successfully"})
}

// GetSummary aggregates one month of family finances and activity
// @Summary Family monthly summary
// @Tags Families
// @Security BearerAuth
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} SuccessResponse{data=dto.FamilySummaryResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 or VALIDATION_007 - Invalid month"
// @Router /families/summary [get]
func (h *FamilyHandler) GetSummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.FamilySummaryQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return err
	}

	summary, err := h.familyService.GetSummary(userID, query.Month)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: summary})
}

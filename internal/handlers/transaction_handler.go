package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles the caller's personal transactions
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// ListTransactions retrieves paginated personal transactions, newest first
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param type query string false "Filter by type" Enums(income, expense)
// @Param category query string false "Filter by category"
// @Param start_date query string false "Created at or after (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Created before; a date includes the whole day"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} SuccessResponse{data=[]dto.TransactionResponse,meta=dto.PaginationMeta}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 or VALIDATION_007 - Invalid filters"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
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

	transactions, total, err := h.transactionService.ListTransactions(userID, &query)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.NewTransactionResponses(transactions),
		Meta: dto.NewPaginationMeta(query.Page, query.PageSize, total),
	})
}

// ListCategories returns the suggested categories per transaction type
// @Summary List suggested categories
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse{data=dto.CategoriesResponse}
// @Router /transactions/categories [get]
func (h *TransactionHandler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.CategoriesResponse{
			Expense: models.ExpenseCategories(),
			Income:  models.IncomeCategories(),
		},
	})
}

// GetTransaction returns one of the caller's transactions
// @Summary Get transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Transaction ID must be a valid UUID"))
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewTransactionResponse(transaction)})
}

// CreateTransaction records an income or expense
// @Summary Create transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001, VALIDATION_007 or TRANSACTION_002"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
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

	transaction, err := h.transactionService.CreateTransaction(userID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewTransactionResponse(transaction),
		Message: "Transaction created successfully",
	})
}

// UpdateTransaction changes the fields present in the body
// @Summary Update transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Param request body dto.UpdateTransactionRequest true "Changed fields"
// @Success 200 {object} SuccessResponse{data=dto.TransactionResponse}
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
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

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, &req)
	if err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewTransactionResponse(transaction),
		Message: "Transaction updated successfully",
	})
}

// DeleteTransaction removes one of the caller's transactions
// @Summary Delete transaction
// @Tags Transactions
// @Security BearerAuth
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	transactionID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Transaction ID must be a valid UUID"))
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		return handleRecordError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction deleted successfully"})
}

package handlers

import (
	"errors"
	"fmt"
	"strings"

	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// parseIDParam reads a UUID path parameter
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param(name)))
}

// handleRecordError maps errors of the transaction, savings and family
// services to API error codes.
func handleRecordError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return SendError(c, apierrors.TransactionNotFound)
	case errors.Is(err, repositories.ErrSavingsTargetNotFound):
		return SendError(c, apierrors.SavingsNotFound)
	case errors.Is(err, services.ErrNonPositiveAmount):
		return SendError(c, apierrors.TransactionInvalidAmount, apierrors.WithDetails("amount: must be greater than 0"))
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails(err.Error()))
	case errors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, apierrors.TransactionInvalidType)
	case errors.Is(err, models.ErrInvalidScope):
		return SendError(c, apierrors.TransactionInvalidScope)
	case errors.Is(err, models.ErrInvalidAmount):
		return SendError(c, apierrors.TransactionInvalidAmount)
	case errors.Is(err, models.ErrInvalidTargetAmount), errors.Is(err, models.ErrInvalidCurrentAmount):
		return SendError(c, apierrors.SavingsInvalidAmount, apierrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrNotFamilyMember):
		return SendError(c, apierrors.FamilyNotMember)
	case errors.Is(err, services.ErrAlreadyInFamily):
		return SendError(c, apierrors.FamilyAlreadyMember)
	case errors.Is(err, repositories.ErrFamilyNotFound):
		return SendError(c, apierrors.FamilyInviteNotFound)
	case errors.Is(err, finance.ErrInvalidMonth):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("month: must be formatted as YYYY-MM"))
	}

	return SendSystemError(c, err)
}

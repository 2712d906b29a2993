package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints.
// Routes are registered only when APP_ENV is development.
type DevHandler struct {
	demoData services.DemoDataServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(demoData services.DemoDataServiceInterface) *DevHandler {
	return &DevHandler{demoData: demoData}
}

// SeedDemoData generates demo transactions and savings targets for the caller
//
// Method: POST /api/v1/dev/seed
// Authentication: Required
// Environment: Development only
//
// Body (all optional):
//   - transactions: number of transactions (default 40, max 500)
//   - savings: number of savings targets (default 3, max 20)
//   - months: months of history (default 3, max 12)
//
// Success Response: 201 Created with the number of records written
func (h *DevHandler) SeedDemoData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.SeedRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := h.demoData.Seed(userID, &req)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    result,
		Message: "Demo data generated successfully",
	})
}

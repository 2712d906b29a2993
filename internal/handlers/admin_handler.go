package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandler handles admin panel endpoints
type AdminHandler struct {
	adminService services.AdminServiceInterface
	userRepo     repositories.UserRepositoryInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService services.AdminServiceInterface, userRepo repositories.UserRepositoryInterface) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userRepo:     userRepo,
	}
}

// GetOverview returns record counts, totals, users and the latest records
// @Summary Admin overview
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse{data=dto.AdminOverviewResponse}
// @Failure 403 {object} errors.ErrorResponse "ADMIN_001 or AUTH_005 - Not an admin"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /admin/overview [get]
func (h *AdminHandler) GetOverview(c echo.Context) error {
	overview, err := h.adminService.GetOverview()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: overview})
}

// ListTable returns the newest rows of an editable table
// @Summary List table rows (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param table path string true "Table" Enums(transactions, savings_targets, families, family_members)
// @Success 200 {object} SuccessResponse{data=dto.AdminTableResponse}
// @Failure 400 {object} errors.ErrorResponse "ADMIN_002 - Table not allowed"
// @Router /admin/tables/{table} [get]
func (h *AdminHandler) ListTable(c echo.Context) error {
	rows, err := h.adminService.ListTableRows(c.Param("table"))
	if err != nil {
		return h.handleTableError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: rows})
}

// UpdateRow writes raw editor values into a table row
// @Summary Update table row (admin)
// @Description Each value is decoded against the kind of the stored cell. The id column is never written.
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param table path string true "Table"
// @Param id path string true "Row ID"
// @Param request body dto.UpdateRowRequest true "Raw values per column"
// @Success 200 {object} SuccessResponse{data=models.TableRow}
// @Failure 400 {object} errors.ErrorResponse "ADMIN_002, ADMIN_004 or VALIDATION_006 - Table not allowed, unknown column or invalid row ID"
// @Failure 404 {object} errors.ErrorResponse "ADMIN_003 - Row not found"
// @Router /admin/tables/{table}/{id} [patch]
func (h *AdminHandler) UpdateRow(c echo.Context) error {
	var req dto.UpdateRowRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	table := c.Param("table")
	rowID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Row ID must be a valid UUID"))
	}
	id := rowID.String()

	row, err := h.adminService.UpdateTableRow(table, id, req.Values)
	if err != nil {
		return h.handleTableError(c, err)
	}

	slog.Info("admin updated row",
		"admin_email", c.Get("user_email"),
		"table", table,
		"row_id", id)

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    row,
		Message: "Row updated successfully",
	})
}

// DeleteRow deletes a table row
// @Summary Delete table row (admin)
// @Tags Admin
// @Security BearerAuth
// @Param table path string true "Table"
// @Param id path string true "Row ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_006 - Invalid row ID"
// @Failure 404 {object} errors.ErrorResponse "ADMIN_003 - Row not found"
// @Router /admin/tables/{table}/{id} [delete]
func (h *AdminHandler) DeleteRow(c echo.Context) error {
	table := c.Param("table")
	rowID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("Row ID must be a valid UUID"))
	}
	id := rowID.String()

	if err := h.adminService.DeleteTableRow(table, id); err != nil {
		return h.handleTableError(c, err)
	}

	slog.Info("admin deleted row",
		"admin_email", c.Get("user_email"),
		"table", table,
		"row_id", id)

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Row deleted successfully"})
}

// UnlockUser clears the failed login counter and lock of a user
// @Summary Unlock user account (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Success 200 {object} SuccessResponse "User unlocked successfully"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_006 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "ADMIN_003 - User not found"
// @Router /admin/users/{userId}/unlock [post]
func (h *AdminHandler) UnlockUser(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidID, apierrors.WithDetails("User ID must be a valid UUID"))
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, apierrors.AdminRowNotFound, apierrors.WithDetails("User not found"))
		}
		return SendSystemError(c, err)
	}

	if err := h.userRepo.ResetFailedLoginAttempts(user.ID); err != nil {
		return SendSystemError(c, err)
	}

	slog.Info("admin unlocked user",
		"admin_email", c.Get("user_email"),
		"user_id", user.ID)

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "User account unlocked successfully",
		Data: map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		},
	})
}

func (h *AdminHandler) handleTableError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTableNotAllowed):
		return SendError(c, apierrors.AdminTableNotAllowed, apierrors.WithDetails("table: "+c.Param("table")))
	case errors.Is(err, repositories.ErrRowNotFound):
		return SendError(c, apierrors.AdminRowNotFound)
	case errors.Is(err, services.ErrUnknownColumn):
		return SendError(c, apierrors.AdminUnknownColumn, apierrors.WithDetails(err.Error()))
	case errors.Is(err, repositories.ErrNoColumns):
		return SendError(c, apierrors.AdminUnknownColumn, apierrors.WithDetails("values: no editable columns"))
	}

	return SendSystemError(c, err)
}

package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

type ActivityHandler struct {
	activityService services.ActivityServiceInterface
}

func NewActivityHandler(activityService services.ActivityServiceInterface) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListMyActivity returns the caller's most recent activity entries
// @Summary Recent activity
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of entries (max 100)" default(20)
// @Success 200 {object} SuccessResponse{data=[]dto.ActivityLogResponse}
// @Router /activity [get]
func (h *ActivityHandler) ListMyActivity(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	limit := getIntParam(c, "limit", services.DefaultActivityLimit)
	if limit > services.MaxActivityLimit {
		limit = services.MaxActivityLimit
	}

	logs, err := h.activityService.ListByActor(userID, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewActivityLogResponses(logs)})
}

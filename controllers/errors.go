package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinel errors onto HTTP statuses. The
// error string doubles as the machine-readable code.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrMissingReason):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrContactNotAllowed),
		errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrEmailAlreadyTaken),
		errors.Is(err, services.ErrRoomNumberTaken):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		utils.JSONErrorCode(c, status, "internal", "internal server error")
		return
	}
	utils.JSONErrorCode(c, status, sentinelCode(err), err.Error())
}

// sentinelCode strips any wrapped context off a sentinel error so the code
// stays stable ("validation: ..." -> "validation").
func sentinelCode(err error) string {
	for _, sentinel := range []error{
		services.ErrValidation, services.ErrInvalidDateRange, services.ErrCapacityExceeded,
		services.ErrMissingReason, services.ErrInvalidCredentials, services.ErrNotOwner,
		services.ErrBookingNotFound, services.ErrRoomNotFound, services.ErrUserNotFound,
		services.ErrReviewNotFound, services.ErrInvalidTransition, services.ErrConflict,
		services.ErrContactNotAllowed, services.ErrRoomUnavailable,
		services.ErrEmailAlreadyTaken, services.ErrRoomNumberTaken,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "error"
}

// parseIDParam reads a numeric :id path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_id", "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

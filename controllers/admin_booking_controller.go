// controllers/admin_booking_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"horizon-backend/models"
	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type updateStatusPayload struct {
	Status       string `json:"status" binding:"required"`
	AdminNotes   string `json:"adminNotes"`
	DeniedReason string `json:"deniedReason"`
}

type contactCustomerPayload struct {
	Subject       string `json:"subject" binding:"required"`
	Message       string `json:"message" binding:"required"`
	ContactMethod string `json:"contactMethod"`
	EmailType     string `json:"emailType"`
}

// AdminBookingController serves the back-office booking views: the paginated
// list, status transitions, contact actions and the delete override.
type AdminBookingController struct {
	BookingSvc *services.BookingService
}

func NewAdminBookingController(svc *services.BookingService) *AdminBookingController {
	return &AdminBookingController{BookingSvc: svc}
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// ListBookings handles GET /admin/bookings?search&status&sortBy&sortOrder&page&limit.
func (ctrl *AdminBookingController) ListBookings(c *gin.Context) {
	query := services.ListBookingsQuery{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	bookings, pagination, err := ctrl.BookingSvc.ListBookings(query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": pagination,
	})
}

// GetBooking returns one booking with its contact history.
func (ctrl *AdminBookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

// UpdateStatus drives the booking state machine from the back-office.
func (ctrl *AdminBookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload updateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	target, err := models.ParseBookingStatus(payload.Status)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.Transition(id, target, services.TransitionInput{
		ByAdmin:      true,
		DeniedReason: payload.DeniedReason,
		AdminNotes:   payload.AdminNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

// ContactCustomer appends to the contact history and dispatches the message.
// Delivery is best-effort; the request succeeds once the history is written.
func (ctrl *AdminBookingController) ContactCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload contactCustomerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", "subject and message are required")
		return
	}

	contact, err := ctrl.BookingSvc.ContactCustomer(id, services.ContactInput{
		Subject:       payload.Subject,
		Message:       payload.Message,
		ContactMethod: payload.ContactMethod,
		EmailType:     payload.EmailType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"contact": contact})
}

// DeleteBooking is the administrative override outside the state machine.
func (ctrl *AdminBookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.DeleteBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

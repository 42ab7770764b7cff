// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"time"

	"horizon-backend/middleware"
	"horizon-backend/models"
	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ---------------------------
// Payload / DTOs
// ---------------------------

type customerInfoPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests"`
}

type createBookingPayload struct {
	RoomID       uint                `json:"room" binding:"required"`
	CheckIn      string              `json:"checkIn" binding:"required"`
	CheckOut     string              `json:"checkOut" binding:"required"`
	Guests       int                 `json:"guests" binding:"required"`
	CustomerInfo customerInfoPayload `json:"customerInfo"`
}

type cancelBookingPayload struct {
	Reason string `json:"reason"`
}

// ---------------------------
// Controller
// ---------------------------

// BookingController serves the public booking surface: guest submissions,
// a user's own bookings, and owner cancellation.
type BookingController struct {
	BookingSvc *services.BookingService
	AuthSvc    *services.AuthService
}

func NewBookingController(bookingSvc *services.BookingService, authSvc *services.AuthService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, AuthSvc: authSvc}
}

func parseDate(c *gin.Context, field, value string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, value); err2 == nil {
			return t2, true
		}
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_date", field+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// CreateBooking accepts a booking submission from a guest or a logged-in
// user. A valid user token attaches the booking to the account; without one
// the customerInfo block must carry the contact details.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	checkIn, ok := parseDate(c, "checkIn", payload.CheckIn)
	if !ok {
		return
	}
	checkOut, ok := parseDate(c, "checkOut", payload.CheckOut)
	if !ok {
		return
	}

	req := services.BookingRequest{
		RoomID:          payload.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          payload.Guests,
		CustomerName:    payload.CustomerInfo.Name,
		CustomerEmail:   payload.CustomerInfo.Email,
		CustomerPhone:   payload.CustomerInfo.Phone,
		SpecialRequests: payload.CustomerInfo.SpecialRequests,
	}

	// Booking works without a token; with one, scope it to the account.
	if claims, ok := middleware.Principal(c); ok && claims.Kind == services.PrincipalUser {
		if user, err := ctrl.AuthSvc.GetUser(claims.SubjectID); err == nil {
			req.User = user
		}
	}

	booking, err := ctrl.BookingSvc.RequestBooking(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"booking": booking})
}

// MyBookings lists the authenticated user's bookings.
func (ctrl *BookingController) MyBookings(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		utils.JSONErrorCode(c, http.StatusUnauthorized, "unauthorized", "missing principal")
		return
	}

	bookings, err := ctrl.BookingSvc.MyBookings(claims.SubjectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

// CancelOwn lets a user cancel their own still-pending or booked reservation.
func (ctrl *BookingController) CancelOwn(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		utils.JSONErrorCode(c, http.StatusUnauthorized, "unauthorized", "missing principal")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload cancelBookingPayload
	_ = c.ShouldBindJSON(&payload) // reason is optional for owner cancels

	userID := claims.SubjectID
	booking, err := ctrl.BookingSvc.Transition(id, models.StatusCancelled, services.TransitionInput{
		ByAdmin:      false,
		ActorUserID:  &userID,
		DeniedReason: payload.Reason,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"booking": booking})
}

// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"horizon-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: creation, status transitions,
// customer contact history and admin listing.
type BookingService struct {
	DB       *gorm.DB
	Notifier Notifier

	// AvailabilityGuard makes RequestBooking reject stays that overlap an
	// active booking for the same room. Off by default: the booking desk
	// reviews conflicts by hand before approving.
	AvailabilityGuard bool
}

func NewBookingService(db *gorm.DB, notifier Notifier) *BookingService {
	return &BookingService{DB: db, Notifier: notifier}
}

// BookingRequest carries a booking submission. User is set for logged-in
// bookings; guest submissions supply the customer fields directly.
type BookingRequest struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int

	User *models.User

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests string
}

// TransitionInput carries who is asking for a status change and the extra
// data some transitions need.
type TransitionInput struct {
	ByAdmin     bool
	ActorUserID *uint

	DeniedReason string
	AdminNotes   string
}

type ContactInput struct {
	Subject       string
	Message       string
	ContactMethod string
	EmailType     string
}

type ListBookingsQuery struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// RequestBooking validates a submission and persists it as pending. The total
// amount is frozen here: later room price changes never touch past bookings.
func (s *BookingService) RequestBooking(req BookingRequest) (*models.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidDateRange
	}

	var room models.Room
	if err := s.DB.First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error checking room %d: %w", req.RoomID, err)
	}

	if req.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrValidation)
	}
	if room.Capacity > 0 && req.Guests > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	booking := models.Booking{
		ReferenceCode:   uuid.NewString(),
		RoomID:          room.ID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		Status:          models.StatusPending,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}

	if req.User != nil {
		booking.UserID = &req.User.ID
		if booking.CustomerName == "" {
			booking.CustomerName = req.User.Name
		}
		if booking.CustomerEmail == "" {
			booking.CustomerEmail = req.User.Email
		}
		if booking.CustomerPhone == "" {
			booking.CustomerPhone = req.User.Phone
		}
	}

	if booking.CustomerName == "" || booking.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", ErrValidation)
	}

	if s.AvailabilityGuard {
		available, err := s.CheckAvailability(room.ID, req.CheckIn, req.CheckOut)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, ErrRoomUnavailable
		}
	}

	nights := models.NightsBetween(req.CheckIn, req.CheckOut)
	booking.TotalAmount = math.Round(room.Price*float64(nights)*100) / 100

	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.Room = room
	return &booking, nil
}

// Transition moves a booking to target if the state machine allows it. The
// status write is a compare-and-swap on the status read inside the same
// transaction, so two admins racing on one booking cannot both win.
func (s *BookingService) Transition(bookingID uint, target models.BookingStatus, input TransitionInput) (*models.Booking, error) {
	if !target.IsValid() {
		return nil, ErrInvalidTransition
	}

	reason := strings.TrimSpace(input.DeniedReason)
	notes := strings.TrimSpace(input.AdminNotes)

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking %d: %w", bookingID, err)
		}

		from := booking.Status
		if !from.CanTransitionTo(target) {
			return ErrInvalidTransition
		}

		if !input.ByAdmin {
			// Guests may only cancel their own booking, and only while it
			// is still pending or booked.
			if target != models.StatusCancelled {
				return ErrInvalidTransition
			}
			if from != models.StatusPending && from != models.StatusBooked {
				return ErrInvalidTransition
			}
			if input.ActorUserID == nil || booking.UserID == nil || *booking.UserID != *input.ActorUserID {
				return ErrNotOwner
			}
		}

		if models.RequiresReason(target, input.ByAdmin) && reason == "" {
			return ErrMissingReason
		}

		updates := map[string]interface{}{"status": target}
		// a reason only accompanies rejections; ignore it elsewhere
		if reason != "" && (target == models.StatusDenied || target == models.StatusCancelled) {
			updates["denied_reason"] = reason
		}
		if notes != "" {
			updates["admin_notes"] = notes
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", bookingID, from).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update booking %d: %w", bookingID, res.Error)
		}
		if res.RowsAffected == 0 {
			// Someone changed the status between our read and write.
			return ErrConflict
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var updated models.Booking
	if err := s.DB.Preload("Room").Preload("User").First(&updated, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}
	return &updated, nil
}

// ContactCustomer appends one entry to the booking's contact history and then
// dispatches it. The append is committed before delivery is attempted and is
// kept even when delivery fails: the history records intent, not receipts.
func (s *BookingService) ContactCustomer(bookingID uint, input ContactInput) (*models.BookingContact, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return nil, fmt.Errorf("%w: subject and message are required", ErrValidation)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	if !booking.Status.AllowsContact() {
		return nil, ErrContactNotAllowed
	}

	method := strings.TrimSpace(input.ContactMethod)
	if method == "" {
		method = "email"
	}
	contactType := strings.TrimSpace(input.EmailType)
	if contactType == "" {
		contactType = "general"
	}

	contact := models.BookingContact{
		BookingID:     booking.ID,
		Type:          contactType,
		ContactMethod: method,
		Subject:       subject,
		Message:       message,
	}
	if err := s.DB.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("failed to record contact: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.Send(booking.CustomerEmail, booking.CustomerName, subject, message); err != nil {
			log.Printf("contact delivery failed for booking %d: %v", booking.ID, err)
		}
	}

	return &contact, nil
}

// sortColumns whitelists what ListBookings may order by.
var sortColumns = map[string]string{
	"created_at":   "bookings.created_at",
	"check_in":     "bookings.check_in",
	"check_out":    "bookings.check_out",
	"total_amount": "bookings.total_amount",
	"status":       "bookings.status",
}

// ListBookings is a pure read: filtered, sorted, paginated bookings for the
// admin back-office. Search matches customer name/email and room type.
func (s *BookingService) ListBookings(q ListBookingsQuery) ([]models.Booking, Pagination, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	base := s.DB.Model(&models.Booking{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id")

	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		like := "%" + search + "%"
		base = base.Where(
			"LOWER(bookings.customer_name) LIKE ? OR LOWER(bookings.customer_email) LIKE ? OR LOWER(rooms.type) LIKE ?",
			like, like, like,
		)
	}

	if statusFilter := strings.TrimSpace(q.Status); statusFilter != "" {
		status, err := models.ParseBookingStatus(statusFilter)
		if err != nil {
			return nil, Pagination{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		base = base.Where("bookings.status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count bookings: %w", err)
	}

	column, ok := sortColumns[strings.TrimSpace(q.SortBy)]
	if !ok {
		column = "bookings.created_at"
	}
	order := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		order = "ASC"
	}

	var bookings []models.Booking
	if err := base.
		Preload("Room").
		Preload("User").
		Order(column + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	return bookings, pagination, nil
}

// MyBookings returns the caller's bookings, newest first.
func (s *BookingService) MyBookings(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

// GetBooking loads one booking with its room, user and contact history.
func (s *BookingService) GetBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("User").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_contacts.created_at ASC, booking_contacts.id ASC")
		}).
		First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// DeleteBooking is an administrative override outside the state machine:
// soft-deletes the record regardless of status.
func (s *BookingService) DeleteBooking(bookingID uint) error {
	res := s.DB.Delete(&models.Booking{}, bookingID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// activeStatuses occupy a room for availability purposes. Terminal rejections
// and completed stays do not.
var activeStatuses = []models.BookingStatus{
	models.StatusPending, models.StatusApproved, models.StatusBooked, models.StatusCheckedIn,
}

// CheckAvailability reports whether the room has no active booking
// overlapping [checkIn, checkOut). Two stays overlap when one starts before
// the other ends.
func (s *BookingService) CheckAvailability(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, ErrInvalidDateRange
	}

	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check availability for room %d: %w", roomID, err)
	}
	return count == 0, nil
}

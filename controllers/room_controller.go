// controllers/room_controller.go
package controllers

import (
	"net/http"

	"horizon-backend/models"
	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc    *services.RoomService
	BookingSvc *services.BookingService
}

func NewRoomController(roomSvc *services.RoomService, bookingSvc *services.BookingService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, BookingSvc: bookingSvc}
}

// ListRooms serves the public room catalog with optional type/status filters.
func (ctrl *RoomController) ListRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.List(c.Query("type"), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := ctrl.RoomSvc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room": room})
}

// CheckAvailability answers whether the room is free of active bookings for
// the requested dates. The answer is advisory unless the booking guard is on.
func (ctrl *RoomController) CheckAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	checkIn, ok := parseDate(c, "checkIn", c.Query("checkIn"))
	if !ok {
		return
	}
	checkOut, ok := parseDate(c, "checkOut", c.Query("checkOut"))
	if !ok {
		return
	}

	// make sure the room exists before answering
	if _, err := ctrl.RoomSvc.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}

	available, err := ctrl.BookingSvc.CheckAvailability(id, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"available": available})
}

// CreateRoom adds a room to the catalog (admin).
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"room": room})
}

// UpdateRoom edits room fields, including the manual status flag.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var changes models.Room
	if err := c.ShouldBindJSON(&changes); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	room, err := ctrl.RoomSvc.Update(id, &changes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room": room})
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// services/room_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"horizon-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

var roomStatuses = map[string]bool{
	models.RoomAvailable:   true,
	models.RoomBooked:      true,
	models.RoomMaintenance: true,
}

func (s *RoomService) validate(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	room.Type = strings.TrimSpace(room.Type)
	if room.RoomNumber == "" || room.Type == "" {
		return fmt.Errorf("%w: room number and type are required", ErrValidation)
	}
	if room.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if room.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !roomStatuses[room.Status] {
		return fmt.Errorf("%w: unknown room status %q", ErrValidation, room.Status)
	}
	return nil
}

func (s *RoomService) Create(room *models.Room) error {
	if err := s.validate(room); err != nil {
		return err
	}

	var existing models.Room
	err := s.DB.Where("room_number = ?", room.RoomNumber).First(&existing).Error
	if err == nil {
		return ErrRoomNumberTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check room number: %w", err)
	}

	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *RoomService) Update(id uint, changes *models.Room) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}

	if changes.RoomNumber != "" {
		room.RoomNumber = changes.RoomNumber
	}
	if changes.Type != "" {
		room.Type = changes.Type
	}
	if changes.Price > 0 {
		room.Price = changes.Price
	}
	if changes.Capacity > 0 {
		room.Capacity = changes.Capacity
	}
	if changes.Status != "" {
		room.Status = changes.Status
	}
	if changes.Description != "" {
		room.Description = changes.Description
	}
	if len(changes.Amenities) > 0 {
		room.Amenities = changes.Amenities
	}

	if err := s.validate(&room); err != nil {
		return nil, err
	}
	if err := s.DB.Save(&room).Error; err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) Get(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

// List returns rooms, optionally filtered by type and status.
func (s *RoomService) List(roomType, status string) ([]models.Room, error) {
	query := s.DB.Order("room_number ASC")
	if roomType = strings.TrimSpace(roomType); roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// services/review_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"horizon-backend/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// Create stores a visitor review. New reviews start unapproved and stay off
// the public site until an admin approves them.
func (s *ReviewService) Create(review *models.Review) error {
	review.Name = strings.TrimSpace(review.Name)
	review.Comment = strings.TrimSpace(review.Comment)
	if review.Name == "" || review.Comment == "" {
		return fmt.Errorf("%w: name and comment are required", ErrValidation)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	review.IsApproved = false
	review.IsVisible = true

	if err := s.DB.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListPublic returns reviews shown on the site: approved and visible.
func (s *ReviewService) ListPublic() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.
		Where("is_approved = ? AND is_visible = ?", true, true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListAll returns every review for moderation, newest first.
func (s *ReviewService) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Moderate flips the moderation flags. Nil leaves a flag unchanged.
func (s *ReviewService) Moderate(id uint, approved, visible *bool) (*models.Review, error) {
	var review models.Review
	if err := s.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if approved != nil {
		updates["is_approved"] = *approved
	}
	if visible != nil {
		updates["is_visible"] = *visible
	}
	if len(updates) == 0 {
		return &review, nil
	}

	if err := s.DB.Model(&review).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to moderate review %d: %w", id, err)
	}
	return &review, nil
}

func (s *ReviewService) Delete(id uint) error {
	res := s.DB.Delete(&models.Review{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

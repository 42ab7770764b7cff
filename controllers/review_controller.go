// controllers/review_controller.go
package controllers

import (
	"net/http"

	"horizon-backend/models"
	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

type createReviewPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Title    string `json:"title"`
	Comment  string `json:"comment" binding:"required"`
	Location string `json:"location"`
}

type moderateReviewPayload struct {
	IsApproved *bool `json:"isApproved"`
	IsVisible  *bool `json:"isVisible"`
}

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: svc}
}

// ListPublic returns only reviews that passed moderation.
func (ctrl *ReviewController) ListPublic(c *gin.Context) {
	reviews, err := ctrl.ReviewSvc.ListPublic()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview accepts a visitor review; it stays hidden until approved.
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var payload createReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	review := models.Review{
		Name:     payload.Name,
		Email:    payload.Email,
		Rating:   payload.Rating,
		Title:    payload.Title,
		Comment:  payload.Comment,
		Location: payload.Location,
	}
	if err := ctrl.ReviewSvc.Create(&review); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"review": review})
}

// ListAll returns every review for the moderation queue (admin).
func (ctrl *ReviewController) ListAll(c *gin.Context) {
	reviews, err := ctrl.ReviewSvc.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reviews": reviews})
}

// Moderate flips the approval/visibility flags (admin).
func (ctrl *ReviewController) Moderate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload moderateReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	review, err := ctrl.ReviewSvc.Moderate(id, payload.IsApproved, payload.IsVisible)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"review": review})
}

func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.ReviewSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

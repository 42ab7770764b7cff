// controllers/auth_controller.go
package controllers

import (
	"net/http"

	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminLoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

// Register creates a guest account.
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	user, err := ctrl.AuthSvc.RegisterUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"user": user})
}

// Login issues a user token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	user, token, err := ctrl.AuthSvc.LoginUser(payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// AdminLogin issues an admin token for the back-office.
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	var payload adminLoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}

	admin, token, err := ctrl.AuthSvc.LoginAdmin(payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"username":  admin.Username,
		},
	})
}

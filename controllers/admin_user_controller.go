// controllers/admin_user_controller.go
package controllers

import (
	"net/http"

	"horizon-backend/services"
	"horizon-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminUserController exposes guest account management to the back-office.
type AdminUserController struct {
	UserSvc *services.UserService
}

func NewAdminUserController(svc *services.UserService) *AdminUserController {
	return &AdminUserController{UserSvc: svc}
}

func (ctrl *AdminUserController) ListUsers(c *gin.Context) {
	users, pagination, err := ctrl.UserSvc.List(
		c.Query("search"),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 10),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

func (ctrl *AdminUserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.UserSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

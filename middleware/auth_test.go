package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"horizon-backend/middleware"
	"horizon-backend/models"
	"horizon-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Admin{}))

	auth := services.NewAuthService(db, "test-secret")

	r := gin.New()
	r.GET("/user-only", middleware.RequireAuth(auth, services.PrincipalUser), func(c *gin.Context) {
		claims, _ := middleware.Principal(c)
		c.JSON(http.StatusOK, gin.H{"subject": claims.SubjectID})
	})
	r.GET("/admin-only", middleware.RequireAuth(auth, services.PrincipalAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, auth
}

func userToken(t *testing.T, auth *services.AuthService) string {
	_, err := auth.RegisterUser("Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)
	_, token, err := auth.LoginUser("jane@example.com", "hunter22")
	require.NoError(t, err)
	return token
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingOrMalformedToken(t *testing.T) {
	r, _ := testRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/user-only", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/user-only", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/user-only", "Bearer garbage").Code)
}

func TestRequireAuth_RoleSeparation(t *testing.T) {
	r, auth := testRouter(t)
	token := userToken(t, auth)

	// a user token opens user routes
	assert.Equal(t, http.StatusOK, doGet(r, "/user-only", "Bearer "+token).Code)

	// but never admin routes
	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin-only", "Bearer "+token).Code)
}

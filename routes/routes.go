package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"horizon-backend/controllers"
	"horizon-backend/middleware"
	"horizon-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the public, user and admin route
// groups.
func SetupRouter(
	authSvc *services.AuthService,
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	abc *controllers.AdminBookingController,
	rc *controllers.RoomController,
	rvc *controllers.ReviewController,
	auc *controllers.AdminUserController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireUser := middleware.RequireAuth(authSvc, services.PrincipalUser)
	requireAdmin := middleware.RequireAuth(authSvc, services.PrincipalAdmin)
	loginLimiter := middleware.RateLimit(rate.Every(time.Second), 5)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(loginLimiter)
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}
		api.POST("/admin/auth/login", loginLimiter, ac.AdminLogin)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.ListRooms)
			rooms.GET("/:id", rc.GetRoom)
			rooms.GET("/:id/availability", rc.CheckAvailability)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", rvc.ListPublic)
			reviews.POST("", rvc.CreateReview)
		}

		bookings := api.Group("/bookings")
		{
			// guest submissions work without a token; a user token scopes
			// the booking to the account
			bookings.POST("", middleware.OptionalAuth(authSvc), bc.CreateBooking)
			bookings.GET("/my-bookings", requireUser, bc.MyBookings)
			bookings.PUT("/:id/cancel", requireUser, bc.CancelOwn)
		}

		admin := api.Group("/admin")
		admin.Use(requireAdmin)
		{
			adminBookings := admin.Group("/bookings")
			{
				adminBookings.GET("", abc.ListBookings)
				adminBookings.GET("/:id", abc.GetBooking)
				adminBookings.PUT("/:id/status", abc.UpdateStatus)
				adminBookings.POST("/:id/contact", abc.ContactCustomer)
				adminBookings.DELETE("/:id", abc.DeleteBooking)
			}

			adminRooms := admin.Group("/rooms")
			{
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PATCH("/:id", rc.UpdateRoom)
				adminRooms.PUT("/:id", rc.UpdateRoom)
				adminRooms.DELETE("/:id", rc.DeleteRoom)
			}

			adminReviews := admin.Group("/reviews")
			{
				adminReviews.GET("", rvc.ListAll)
				adminReviews.PATCH("/:id", rvc.Moderate)
				adminReviews.DELETE("/:id", rvc.DeleteReview)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", auc.ListUsers)
				adminUsers.DELETE("/:id", auc.DeleteUser)
			}
		}
	}

	return r
}

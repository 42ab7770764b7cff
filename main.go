package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"horizon-backend/config"
	"horizon-backend/controllers"
	"horizon-backend/routes"
	"horizon-backend/services"
	"horizon-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required signing secret (fatal if missing)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue tokens.")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	authService := services.NewAuthService(db, jwtSecret)
	bookingService := services.NewBookingService(db, utils.NewSMTPMailer())
	bookingService.AvailabilityGuard = utils.EnvBool("DOUBLE_BOOKING_GUARD")
	roomService := services.NewRoomService(db)
	reviewService := services.NewReviewService(db)
	userService := services.NewUserService(db)

	if err := authService.EnsureDefaultAdmin(); err != nil {
		log.Printf("warning: failed to seed default admin: %v", err)
	}

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	bookingController := controllers.NewBookingController(bookingService, authService)
	adminBookingController := controllers.NewAdminBookingController(bookingService)
	roomController := controllers.NewRoomController(roomService, bookingService)
	reviewController := controllers.NewReviewController(reviewService)
	adminUserController := controllers.NewAdminUserController(userService)

	// Build router
	router := routes.SetupRouter(
		authService,
		authController,
		bookingController,
		adminBookingController,
		roomController,
		reviewController,
		adminUserController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

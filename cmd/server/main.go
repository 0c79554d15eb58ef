package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harborview/hotel-backend/internal/config"
	"github.com/harborview/hotel-backend/internal/database"
	"github.com/harborview/hotel-backend/internal/handlers"
	"github.com/harborview/hotel-backend/internal/middleware"
	"github.com/harborview/hotel-backend/internal/models"
	"github.com/harborview/hotel-backend/internal/services"
	"github.com/harborview/hotel-backend/pkg/jwt"
	"github.com/harborview/hotel-backend/pkg/keycard"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Harborview Hotel Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	roomRepository := database.NewRoomRepository(db)
	stayRepository := database.NewStayRepository(db)
	guestRepository := database.NewGuestRepository(db)
	staffRepository := database.NewStaffRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	reservationService := services.NewReservationService(stayRepository, guestRepository, roomRepository, logger)
	payrollService := services.NewPayrollService(staffRepository, staffRepository, logger)

	if err := loadState(reservationService, payrollService, roomRepository, stayRepository, guestRepository, staffRepository); err != nil {
		logger.Fatalf("Failed to load state from database: %v", err)
	}

	// Initialize the keycard printer
	var printer models.KeycardPrinter
	if cfg.Keycard.Mode == "production" {
		logger.Info("Initializing network keycard printer...")
		printer = keycard.NewNetworkPrinter(keycard.NetworkConfig{
			BaseURL: cfg.Keycard.PrintServerURL,
			APIKey:  cfg.Keycard.APIKey,
			Timeout: cfg.Keycard.Timeout,
		})
	} else {
		logger.Info("Keycard printer in development mode (mock printer)")
		printer = keycard.NewMockPrinter(cfg.Keycard.MockCards, logger)
	}

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(staffRepository, guestRepository, jwtService, logger)
	bookingHandler := handlers.NewBookingHandler(reservationService, printer, logger)
	roomHandler := handlers.NewRoomHandler(reservationService, roomRepository, logger)
	staffHandler := handlers.NewStaffHandler(payrollService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/staff/login", authHandler.StaffLogin)
			auth.POST("/refresh", authHandler.RefreshToken)

			// Guests get portal tokens from the front desk
			authProtected := auth.Group("")
			authProtected.Use(middleware.AuthMiddleware(jwtService))
			authProtected.Use(middleware.RequireRole(string(models.RoleEmployee)))
			{
				authProtected.POST("/guests/token", authHandler.IssueGuestToken)
			}
		}

		// Room routes (public reads, manager rate changes)
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:number", roomHandler.GetRoom)
			rooms.GET("/:number/availability", roomHandler.CheckAvailability)

			roomsManaged := rooms.Group("")
			roomsManaged.Use(middleware.AuthMiddleware(jwtService))
			roomsManaged.Use(middleware.RequireRole(string(models.RoleManager)))
			{
				roomsManaged.PATCH("/:number/rate", roomHandler.UpdateRate)
			}
		}

		// Stay routes (guest portal, all protected)
		stays := v1.Group("/stays")
		stays.Use(middleware.AuthMiddleware(jwtService))
		{
			stays.POST("", bookingHandler.BookStay)
			stays.PATCH("/:id", bookingHandler.AlterStay)
			stays.DELETE("/:id", bookingHandler.CancelStay)
			stays.POST("/:id/check-in", bookingHandler.CheckIn)
			stays.POST("/:id/check-out", bookingHandler.CheckOut)
			stays.POST("/:id/keycards", bookingHandler.IssueKeycard)
			stays.POST("/:id/keycards/replace", bookingHandler.ReplaceKeycard)
		}

		// Account routes (guest portal, all protected)
		account := v1.Group("/account")
		account.Use(middleware.AuthMiddleware(jwtService))
		{
			account.GET("", bookingHandler.GetAccount)
			account.POST("/payments", bookingHandler.RecordPayment)
		}

		// Staff routes (all protected)
		staff := v1.Group("/staff")
		staff.Use(middleware.AuthMiddleware(jwtService))
		staff.Use(middleware.RequireRole(string(models.RoleEmployee)))
		{
			staff.GET("/schedule", staffHandler.GetSchedule)
			staff.POST("/shifts", staffHandler.CreateOwnShift)
			staff.POST("/shifts/:id/clock-in", staffHandler.ClockIn)
			staff.POST("/shifts/:id/clock-out", staffHandler.ClockOut)
			staff.GET("/payroll", staffHandler.GetOwnPayroll)
			staff.POST("/payroll/payout", staffHandler.PayoutOwn)

			// Scheduling and payroll are manager operations
			managed := staff.Group("")
			managed.Use(middleware.RequireRole(string(models.RoleManager)))
			{
				managed.POST("/employees/:id/shifts", staffHandler.CreateShift)
				managed.GET("/employees/:id/payroll", staffHandler.GetPayroll)
				managed.POST("/employees/:id/payroll/payout", staffHandler.Payout)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// loadState hydrates the in-memory engines from the database at startup.
// Stays are re-pointed at the shared room instances so interval state stays
// consistent.
func loadState(
	reservations *services.ReservationService,
	payroll *services.PayrollService,
	roomRepo *database.RoomRepository,
	stayRepo *database.StayRepository,
	guestRepo *database.GuestRepository,
	staffRepo *database.StaffRepository,
) error {
	rooms, err := roomRepo.List()
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	for _, room := range rooms {
		reservations.AddRoom(room)
	}

	guests, err := guestRepo.List()
	if err != nil {
		return fmt.Errorf("failed to load guests: %w", err)
	}
	for _, guest := range guests {
		records, err := stayRepo.GetByGuestID(guest.ID)
		if err != nil {
			return fmt.Errorf("failed to load stays for guest %s: %w", guest.ID, err)
		}
		for _, record := range records {
			room, err := reservations.Room(record.RoomNumber)
			if err != nil {
				return fmt.Errorf("stay %s references unknown room %d", record.Stay.ID, record.RoomNumber)
			}
			record.Stay.Room = room
			guest.AddStay(record.Stay)
		}
		reservations.RegisterGuest(guest)
	}

	employees, err := staffRepo.List()
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}
	for _, employee := range employees {
		payroll.RegisterEmployee(employee)
	}

	return nil
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if user, ok := middleware.GetUserContext(c); ok {
			fields["user_id"] = user.UserID
			fields["roles"] = user.Roles
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Error("Request failed with errors")
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}

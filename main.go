package main

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coastwatch/config"
	"coastwatch/database"
	"coastwatch/handlers"
	"coastwatch/middleware"
	"coastwatch/utils/email"
	"coastwatch/utils/sms"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	users := database.NewUserService(db, cfg.JWTSecret)
	hazards := database.NewHazardService(db)
	alerts := database.NewAlertService(db)
	requests := database.NewAidRequestService(db)
	verifications := database.NewVerificationService(db)
	locations := database.NewLocationService(db)

	h := handlers.NewHandlers(users, hazards, alerts, requests, verifications, locations, cfg.UploadDir)
	if cfg.SMSConfigured() {
		h.WithSMS(sms.NewSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom))
		log.Info("SMS transport configured")
	}
	if cfg.EmailConfigured() {
		sender := email.NewSender(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFromAddr)
		h.WithEmail(sender)
		h.WithAlertNotifier(sender)
		log.Info("email transport configured")
	}

	router := setupRouter(h, users, cfg)

	log.Infof("coastwatch backend starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, users *database.UserService, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.SetTrustedProxies(cfg.TrustedProxies)

	router.Use(cors.New(cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		AllowOrigins: []string{"*"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(middleware.SecurityHeaders())

	// Static preview for uploaded media
	router.Static("/uploads", cfg.UploadDir)

	router.GET("/", h.Root)
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")

	auth := middleware.AuthMiddleware(users)
	admin := middleware.RequireAdmin()

	usersGroup := api.Group("/users")
	{
		usersGroup.POST("/register", h.Register)
		usersGroup.POST("/login", h.Login)
		usersGroup.GET("/profile", auth, h.Profile)
		usersGroup.GET("", auth, admin, h.ListUsers)
		usersGroup.PUT("/:id", auth, admin, h.UpdateUser)
		usersGroup.PATCH("/:id/toggle", auth, admin, h.ToggleUserStatus)
	}
	api.POST("/admin/login", h.AdminLogin)

	hazardsGroup := api.Group("/hazards")
	{
		hazardsGroup.POST("", middleware.OptionalAuth(users), h.CreateHazard)
		hazardsGroup.GET("", h.ListHazards)
		hazardsGroup.GET("/stats", auth, admin, h.HazardStats)
		hazardsGroup.GET("/:id", h.GetHazard)
	}

	alertsGroup := api.Group("/alerts", auth)
	{
		alertsGroup.POST("", h.CreateAlert)
		alertsGroup.GET("", h.ListAlerts)
		alertsGroup.GET("/type/:type", h.ListAlertsByType)
		alertsGroup.PATCH("/:id/read", h.MarkAlertRead)
	}

	api.POST("/resource-request", h.CreateResourceRequest)
	api.GET("/resource-request", h.ListResourceRequests)
	api.POST("/service-request", h.CreateServiceRequest)
	api.GET("/service-request", h.ListServiceRequests)
	api.GET("/help-me/submissions", h.HelpMeSubmissions)

	api.GET("/locations", h.ListLocations)
	api.GET("/locations/geojson", h.LocationsGeoJSON)

	otpLimit := middleware.OTPRateLimit(newRedisClient(cfg), cfg.OTPSendLimit, cfg.OTPSendWindow)
	verificationGroup := api.Group("/verification")
	{
		verificationGroup.POST("/send", otpLimit, h.SendOTP)
		verificationGroup.POST("/verify", h.VerifyOTP)
	}

	return router
}

// newRedisClient returns nil when Redis is not configured; the OTP
// rate limiter degrades to a no-op in that case.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warnf("redis unreachable, OTP rate limiting disabled: %v", err)
		return nil
	}
	return client
}

package main

import (
	"net/http"
	"os"
	"time"

	"restohub-api/config"
	"restohub-api/handlers"
	"restohub-api/mail"
	"restohub-api/otp"
	"restohub-api/routes"
	"restohub-api/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load settings and initialize database
	config.Load()
	config.InitDB()

	// Wire handler collaborators: image store + OTP machine
	images, err := storage.NewDisk(config.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare upload directory")
	}
	var sender otp.Sender
	if s := mail.NewSMTPSender(config.SMTP); s != nil {
		sender = s
	} else {
		log.Warn("SMTP not configured, OTP delivery unavailable")
	}
	handlers.Init(images, &otp.Machine{
		DB:          config.DB,
		Sender:      sender,
		Validity:    config.OTPValidity,
		MaxAttempts: config.OTPMaxAttempts,
	})

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS restricted to the configured origin allow-list
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded images are public
	r.Static("/uploads", config.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "RestoHub API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

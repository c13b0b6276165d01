package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"restohub-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs session cookies
var JWTSecret []byte

// SessionTTL is how long a session cookie stays valid.
const SessionTTL = 15 * 24 * time.Hour

// SMTPConfig holds mail transport settings for OTP delivery. An empty
// Host means mail is not configured and sendOTP answers 503.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

var (
	SMTP SMTPConfig

	// Admin credentials — admins are not account rows
	AdminEmail    string
	AdminPassword string

	// OTPValidity and OTPMaxAttempts bound the verification window
	OTPValidity    time.Duration
	OTPMaxAttempts int

	// UploadDir holds menu/ad images, served at /uploads
	UploadDir string

	// AllowedOrigins is the fixed CORS allow-list
	AllowedOrigins []string
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and populates all settings.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}

	JWTSecret = []byte(getEnv("JWT_SECRET", "restohub_super_secret_2024"))

	SMTP = SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getEnv("SMTP_PORT", "587"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getEnv("SMTP_FROM", "no-reply@restohub.app"),
	}

	AdminEmail = getEnv("ADMIN_EMAIL", "admin@restohub.app")
	AdminPassword = getEnv("ADMIN_PASSWORD", "admin123")

	minutes, err := strconv.Atoi(getEnv("OTP_VALIDITY_MINUTES", "10"))
	if err != nil || minutes <= 0 {
		minutes = 10
	}
	OTPValidity = time.Duration(minutes) * time.Minute

	OTPMaxAttempts, err = strconv.Atoi(getEnv("OTP_MAX_ATTEMPTS", "5"))
	if err != nil || OTPMaxAttempts <= 0 {
		OTPMaxAttempts = 5
	}

	UploadDir = getEnv("UPLOAD_DIR", "uploads")

	AllowedOrigins = strings.Split(
		getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
}

func InitDB() {
	dsn := getEnv("DB_PATH", "restohub.db")
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.Account{},
		&models.WalletTransaction{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Ad{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	log.Info("database connected and migrated")
}

package handlers

import (
	"errors"
	"net/http"

	"restohub-api/config"
	"restohub-api/middleware"
	"restohub-api/models"
	"restohub-api/otp"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a new account and logs it in
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, email and a password of at least 6 characters are required"})
		return
	}

	var existing models.Account
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	account := models.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
	}
	if err := config.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	token, err := middleware.IssueUserSession(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create session"})
		return
	}
	middleware.SetSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"user": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
		},
	})
}

// Login authenticates an account and sets the session cookie
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	var account models.Account
	if err := config.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := middleware.IssueUserSession(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create session"})
		return
	}
	middleware.SetSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
		},
	})
}

// AdminLogin checks configured admin credentials and issues an
// admin-tagged session. Admins are not account rows.
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	if req.Email != config.AdminEmail || req.Password != config.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid admin credentials"})
		return
	}

	token, err := middleware.IssueAdminSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create session"})
		return
	}
	middleware.SetSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin login successful"})
}

// Logout clears the session cookie
func Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTP issues and emails a fresh verification code
func SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid email is required"})
		return
	}

	err := OTP.Send(req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent"})
	case errors.Is(err, otp.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No account with that email"})
	case errors.Is(err, otp.ErrNoSender):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Email service is not configured"})
	case errors.Is(err, otp.ErrSendFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send verification email"})
	default:
		log.WithError(err).Error("sendOTP failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
	}
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"`
}

// VerifyOTP consumes a pending code and marks the account verified
func VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid email is required"})
		return
	}

	err := OTP.Verify(req.Email, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified"})
	case errors.Is(err, otp.ErrEmptyCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Code is required"})
	case errors.Is(err, otp.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No account with that email"})
	case errors.Is(err, otp.ErrNoPendingCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No verification code pending, request a new one"})
	case errors.Is(err, otp.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Code has expired, request a new one"})
	case errors.Is(err, otp.ErrTooManyAttempts):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Too many failed attempts, request a new code"})
	case errors.Is(err, otp.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Incorrect verification code"})
	default:
		log.WithError(err).Error("verifyOTP failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
	}
}

type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ResetPassword re-hashes and stores a new password after checking the
// current one. Deliberately independent of OTP verification state.
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email, current password and a new password of at least 6 characters are required"})
		return
	}

	var account models.Account
	if err := config.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No account with that email"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Current password is incorrect"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}
	if err := config.DB.Model(&account).Update("password_hash", string(hash)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated"})
}

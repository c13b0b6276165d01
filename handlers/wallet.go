package handlers

import (
	"errors"
	"net/http"

	"restohub-api/config"
	"restohub-api/middleware"
	"restohub-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errInsufficientBalance = errors.New("insufficient wallet balance")

// creditWallet appends a ledger row and applies the balance delta in
// one transaction. The balance update is a single atomic expression so
// concurrent top-ups cannot lose increments.
func creditWallet(tx *gorm.DB, accountID uint, amount int64, mode string) error {
	txn := models.WalletTransaction{
		AccountID:   accountID,
		Amount:      amount,
		PaymentMode: mode,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return err
	}
	return tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}

// debitWallet writes a negative ledger row. The conditional update
// only matches when the balance covers the amount, so an overdraft
// rolls the whole transaction back.
func debitWallet(tx *gorm.DB, accountID uint, amount int64) error {
	res := tx.Model(&models.Account{}).
		Where("id = ? AND balance >= ?", accountID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errInsufficientBalance
	}
	txn := models.WalletTransaction{
		AccountID:   accountID,
		Amount:      -amount,
		PaymentMode: models.PaymentWallet,
	}
	return tx.Create(&txn).Error
}

type AddWalletBalanceRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	PaymentMode string `json:"payment_mode"`
}

// AddWalletBalance tops up the caller's wallet
func AddWalletBalance(c *gin.Context) {
	accountID := middleware.GetAccountID(c)

	var req AddWalletBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A positive amount is required"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return creditWallet(tx, accountID, req.Amount, req.PaymentMode)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add balance"})
		return
	}

	var account models.Account
	config.DB.First(&account, accountID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Balance added",
		"balance": account.Balance,
	})
}

// GetWalletBalance returns the caller's current balance
func GetWalletBalance(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var account models.Account
	if err := config.DB.First(&account, accountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Balance fetched", "balance": account.Balance})
}

// WalletHistory returns the caller's ledger, newest first
func WalletHistory(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var txns []models.WalletTransaction
	config.DB.Where("account_id = ?", accountID).Order("created_at desc").Find(&txns)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Wallet history fetched",
		"count":        len(txns),
		"transactions": txns,
	})
}

// UserInfo returns the caller's profile
func UserInfo(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var account models.Account
	if err := config.DB.First(&account, accountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile fetched", "user": account})
}

// ListRestaurants returns open restaurants for customers to browse
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if c.Query("open") == "true" {
		query = query.Where("is_open = ?", true)
	}
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Restaurants fetched",
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

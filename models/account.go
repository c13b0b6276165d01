package models

import "time"

type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone"`
	Balance      int64     `json:"balance" gorm:"not null;default:0"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	OTPCode      string    `json:"-"`
	OTPIssuedAt  time.Time `json:"-"`
	OTPAttempts  int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WalletTransaction is an append-only ledger row. Account.Balance is
// the running sum, updated in the same transaction as the insert.
type WalletTransaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AccountID   uint      `json:"account_id" gorm:"not null;index"`
	Account     Account   `json:"-" gorm:"foreignKey:AccountID"`
	Amount      int64     `json:"amount" gorm:"not null"`
	PaymentMode string    `json:"payment_mode"`
	CreatedAt   time.Time `json:"created_at"`
}

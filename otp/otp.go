// Package otp implements the email-verification code lifecycle:
// Unverified → pending{code, issuedAt} → Verified. Codes are 6-digit
// numeric strings, single-use, expire after a configured validity
// window, and allow a bounded number of verification attempts.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"restohub-api/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("no account with that email")
	ErrNoSender        = errors.New("mail transport not configured")
	ErrSendFailed      = errors.New("failed to dispatch OTP email")
	ErrEmptyCode       = errors.New("code is required")
	ErrNoPendingCode   = errors.New("no verification code pending")
	ErrInvalidCode     = errors.New("incorrect verification code")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrTooManyAttempts = errors.New("too many failed attempts, request a new code")
)

// Sender delivers a one-time code to an email address.
type Sender interface {
	SendOTP(email, code string) error
}

// Machine drives the per-account verification state.
type Machine struct {
	DB          *gorm.DB
	Sender      Sender
	Validity    time.Duration
	MaxAttempts int
}

// GenerateCode returns a uniform random 6-digit code, zero-padded.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Send issues a fresh code for the account, replacing any pending one,
// and dispatches it. The code is stored before dispatch; a transport
// failure leaves it pending so a later resend overwrites it.
func (m *Machine) Send(email string) error {
	var account models.Account
	if err := m.DB.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if m.Sender == nil {
		return ErrNoSender
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	err = m.DB.Model(&account).Updates(map[string]interface{}{
		"otp_code":      code,
		"otp_issued_at": time.Now(),
		"otp_attempts":  0,
	}).Error
	if err != nil {
		return err
	}

	if err := m.Sender.SendOTP(account.Email, code); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Verify consumes a pending code. On success the account becomes
// verified and the code is cleared in one transaction, so a repeat
// call with the same code fails.
func (m *Machine) Verify(email, submitted string) error {
	if submitted == "" {
		return ErrEmptyCode
	}

	var account models.Account
	if err := m.DB.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if account.OTPCode == "" {
		return ErrNoPendingCode
	}
	if m.Validity > 0 && time.Since(account.OTPIssuedAt) > m.Validity {
		return ErrCodeExpired
	}
	if m.MaxAttempts > 0 && account.OTPAttempts >= m.MaxAttempts {
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(account.OTPCode), []byte(submitted)) != 1 {
		m.DB.Model(&account).UpdateColumn("otp_attempts", gorm.Expr("otp_attempts + 1"))
		return ErrInvalidCode
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&account).Updates(map[string]interface{}{
			"is_verified":  true,
			"otp_code":     "",
			"otp_attempts": 0,
		}).Error
	})
}

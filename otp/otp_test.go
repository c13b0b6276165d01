package otp

import (
	"errors"
	"testing"
	"time"

	"restohub-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSender struct {
	sent []string
	fail error
}

func (f *fakeSender) SendOTP(email, code string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, code)
	return nil
}

func testMachine(t *testing.T) (*Machine, *fakeSender) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, or each pooled conn gets its own :memory: db
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Account{}))
	sender := &fakeSender{}
	return &Machine{DB: db, Sender: sender, Validity: 10 * time.Minute, MaxAttempts: 5}, sender
}

func createAccount(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()
	account := models.Account{Name: "Test", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

func TestGenerateCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestSendUnknownEmail(t *testing.T) {
	m, _ := testMachine(t)
	require.ErrorIs(t, m.Send("a@b.com"), ErrAccountNotFound)
}

func TestSendWithoutSender(t *testing.T) {
	m, _ := testMachine(t)
	createAccount(t, m.DB, "a@b.com")
	m.Sender = nil
	require.ErrorIs(t, m.Send("a@b.com"), ErrNoSender)
}

func TestSendStoresAndDispatchesCode(t *testing.T) {
	m, sender := testMachine(t)
	createAccount(t, m.DB, "a@b.com")

	require.NoError(t, m.Send("a@b.com"))
	require.Len(t, sender.sent, 1)

	var account models.Account
	require.NoError(t, m.DB.Where("email = ?", "a@b.com").First(&account).Error)
	require.Equal(t, sender.sent[0], account.OTPCode)
	require.False(t, account.IsVerified)
}

func TestSendOverwritesPriorCode(t *testing.T) {
	m, sender := testMachine(t)
	createAccount(t, m.DB, "a@b.com")

	require.NoError(t, m.Send("a@b.com"))
	first := sender.sent[0]

	// A resend replaces the pending code; the old one no longer works
	// unless the draw happens to repeat it.
	require.NoError(t, m.Send("a@b.com"))
	second := sender.sent[1]

	var account models.Account
	require.NoError(t, m.DB.Where("email = ?", "a@b.com").First(&account).Error)
	require.Equal(t, second, account.OTPCode)
	if first != second {
		require.ErrorIs(t, m.Verify("a@b.com", first), ErrInvalidCode)
	}
}

func TestSendTransportFailure(t *testing.T) {
	m, sender := testMachine(t)
	createAccount(t, m.DB, "a@b.com")
	sender.fail = errors.New("smtp down")

	err := m.Send("a@b.com")
	require.ErrorIs(t, err, ErrSendFailed)

	// Code is stored before dispatch, so a later resend overwrites it
	var account models.Account
	require.NoError(t, m.DB.Where("email = ?", "a@b.com").First(&account).Error)
	require.NotEmpty(t, account.OTPCode)
}

func TestVerifyEmptyCode(t *testing.T) {
	m, _ := testMachine(t)
	require.ErrorIs(t, m.Verify("a@b.com", ""), ErrEmptyCode)
}

func TestVerifyUnknownEmail(t *testing.T) {
	m, _ := testMachine(t)
	require.ErrorIs(t, m.Verify("a@b.com", "123456"), ErrAccountNotFound)
}

func TestVerifyWithoutPendingCode(t *testing.T) {
	m, _ := testMachine(t)
	createAccount(t, m.DB, "a@b.com")
	require.ErrorIs(t, m.Verify("a@b.com", "123456"), ErrNoPendingCode)
}

func TestVerifyWrongCodeLeavesUnverified(t *testing.T) {
	m, sender := testMachine(t)
	createAccount(t, m.DB, "a@b.com")
	require.NoError(t, m.Send("a@b.com"))

	wrong := "000000"
	if sender.sent[0] == wrong {
		wrong = "000001"
	}
	require.ErrorIs(t, m.Verify("a@b.com", wrong), ErrInvalidCode)

	var account models.Account
	require.NoError(t, m.DB.Where("email = ?", "a@b.com").First(&account).Error)
	require.False(t, account.IsVerified)
	require.NotEmpty(t, account.OTPCode)
}

func TestVerifyCorrectCodeConsumesIt(t *testing.T) {
	m, sender := testMachine(t)
	createAccount(t, m.DB, "a@b.com")
	require.NoError(t, m.Send("a@b.com"))
	code := sender.sent[0]

	require.NoError(t, m.Verify("a@b.com", code))

	var account models.Account
	require.NoError(t, m.DB.Where("email = ?", "a@b.com").First(&account).Error)
	require.True(t, account.IsVerified)
	require.Empty(t, account.OTPCode)

	// One-shot: the consumed code never verifies again
	require.ErrorIs(t, m.Verify("a@b.com", code), ErrNoPendingCode)
}

func TestVerifyExpiredCode(t *testing.T) {
	m, sender := testMachine(t)
	account := createAccount(t, m.DB, "a@b.com")
	require.NoError(t, m.Send("a@b.com"))

	require.NoError(t, m.DB.Model(account).
		UpdateColumn("otp_issued_at", time.Now().Add(-11*time.Minute)).Error)

	require.ErrorIs(t, m.Verify("a@b.com", sender.sent[0]), ErrCodeExpired)
}

func TestVerifyAttemptLimit(t *testing.T) {
	m, sender := testMachine(t)
	createAccount(t, m.DB, "a@b.com")
	m.MaxAttempts = 3
	require.NoError(t, m.Send("a@b.com"))

	wrong := "000000"
	if sender.sent[0] == wrong {
		wrong = "000001"
	}
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, m.Verify("a@b.com", wrong), ErrInvalidCode)
	}

	// Even the right code is refused once the attempt budget is spent
	require.ErrorIs(t, m.Verify("a@b.com", sender.sent[0]), ErrTooManyAttempts)

	// A fresh send resets the counter
	require.NoError(t, m.Send("a@b.com"))
	require.NoError(t, m.Verify("a@b.com", sender.sent[1]))
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restohub-api/config"
	"restohub-api/handlers"
	"restohub-api/middleware"
	"restohub-api/models"
	"restohub-api/otp"
	"restohub-api/routes"
	"restohub-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSender struct {
	sent []string
}

func (f *fakeSender) SendOTP(email, code string) error {
	f.sent = append(f.sent, code)
	return nil
}

// setup spins up an in-memory database and a router with all routes
// registered, returning the router and the captured OTP sender.
func setup(t *testing.T) (*gin.Engine, *fakeSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, or each pooled conn gets its own :memory: db
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.WalletTransaction{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Ad{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	))
	config.DB = db
	config.JWTSecret = []byte("test-secret")
	config.AdminEmail = "admin@test.local"
	config.AdminPassword = "admin-pass"

	sender := &fakeSender{}
	images, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)
	handlers.Init(images, &otp.Machine{
		DB:          db,
		Sender:      sender,
		Validity:    10 * time.Minute,
		MaxAttempts: 5,
	})

	r := gin.New()
	routes.SetupRoutes(r)
	return r, sender
}

func createAccount(t *testing.T, email string) *models.Account {
	t.Helper()
	account := models.Account{Name: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, config.DB.Create(&account).Error)
	return &account
}

func createRestaurant(t *testing.T, name string) *models.Restaurant {
	t.Helper()
	resto := models.Restaurant{Name: name, Location: "Main St", ContactNumber: "1234567890", IsOpen: true}
	require.NoError(t, config.DB.Create(&resto).Error)
	return &resto
}

func userCookie(t *testing.T, accountID uint) *http.Cookie {
	t.Helper()
	token, err := middleware.IssueUserSession(accountID)
	require.NoError(t, err)
	return &http.Cookie{Name: "jwt", Value: token}
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := middleware.IssueAdminSession()
	require.NoError(t, err)
	return &http.Cookie{Name: "jwt", Value: token}
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r *gin.Engine, method, path string, fields map[string]string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"restohub-api/config"
	"restohub-api/models"

	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, accountID, restaurantID uint, total int64, status models.OrderStatus, itemName string, qty int, at time.Time) {
	t.Helper()
	order := models.Order{
		AccountID:    accountID,
		RestaurantID: restaurantID,
		Status:       status,
		TotalPrice:   total,
		Items:        []models.OrderItem{{MenuItemID: 1, Quantity: qty, Price: total / int64(qty), Name: itemName}},
	}
	require.NoError(t, config.DB.Create(&order).Error)
	require.NoError(t, config.DB.Model(&order).UpdateColumn("created_at", at).Error)
}

func TestDashboardStats(t *testing.T) {
	r, _ := setup(t)
	admin := adminCookie(t)
	a := createAccount(t, "a@test.local")
	b := createAccount(t, "b@test.local")
	resto := createRestaurant(t, "Joe's")

	now := time.Now()
	seedOrder(t, a.ID, resto.ID, 300, models.StatusDelivered, "Dosa", 2, now)
	seedOrder(t, b.ID, resto.ID, 150, models.StatusPlaced, "Idli", 3, now)
	seedOrder(t, a.ID, resto.ID, 500, models.StatusCancelled, "Thali", 1, now)

	w := doJSON(r, http.MethodGet, "/admin/dashboard/stats", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode(t, w)["stats"].(map[string]any)
	// Cancelled orders count but contribute no revenue
	require.EqualValues(t, 450, stats["revenue"])
	require.EqualValues(t, 3, stats["order_count"])
	require.EqualValues(t, 2, stats["distinct_customers"])
	require.EqualValues(t, 1, stats["restaurant_count"])
	require.EqualValues(t, 2, stats["account_count"])
}

func TestAnalyticsWindowAndCustomerClassification(t *testing.T) {
	r, _ := setup(t)
	admin := adminCookie(t)
	a := createAccount(t, "a@test.local")
	b := createAccount(t, "b@test.local")
	resto := createRestaurant(t, "Joe's")

	now := time.Now()
	// Account a ordered long before the window: returning customer
	seedOrder(t, a.ID, resto.ID, 100, models.StatusDelivered, "Dosa", 1, now.AddDate(0, -1, 0))
	seedOrder(t, a.ID, resto.ID, 200, models.StatusDelivered, "Dosa", 2, now)
	// Account b's first order is inside the window: new customer
	seedOrder(t, b.ID, resto.ID, 300, models.StatusDelivered, "Idli", 4, now)

	w := doJSON(r, http.MethodGet, "/admin/analytics", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	analytics := decode(t, w)["analytics"].(map[string]any)
	require.EqualValues(t, 500, analytics["revenue"])
	require.EqualValues(t, 2, analytics["order_count"])
	require.EqualValues(t, 1, analytics["new_customers"])
	require.EqualValues(t, 1, analytics["returning_customers"])

	top := analytics["top_items"].([]any)
	require.NotEmpty(t, top)
	first := top[0].(map[string]any)
	require.Equal(t, "Idli", first["name"])
	require.EqualValues(t, 4, first["quantity"])
}

func TestRestaurantAnalyticsScoping(t *testing.T) {
	r, _ := setup(t)
	admin := adminCookie(t)
	a := createAccount(t, "a@test.local")
	joes := createRestaurant(t, "Joe's")
	moes := createRestaurant(t, "Moe's")

	now := time.Now()
	seedOrder(t, a.ID, joes.ID, 100, models.StatusDelivered, "Dosa", 1, now)
	seedOrder(t, a.ID, moes.ID, 900, models.StatusDelivered, "Pizza", 1, now)

	w := doJSON(r, http.MethodGet, "/admin/resto/1/analytics", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	analytics := decode(t, w)["analytics"].(map[string]any)
	require.EqualValues(t, 100, analytics["revenue"])
	require.EqualValues(t, 1, analytics["order_count"])

	w = doJSON(r, http.MethodGet, "/admin/resto/99/analytics", nil, admin)
	require.Equal(t, http.StatusNotFound, w.Code)
}

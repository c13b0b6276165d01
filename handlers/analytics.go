package handlers

import (
	"net/http"
	"sort"
	"time"

	"restohub-api/config"
	"restohub-api/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// parseWindow reads optional from/to query params (YYYY-MM-DD). The
// default window is the current day; to is exclusive.
func parseWindow(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	if s := c.Query("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

func windowedOrders(db *gorm.DB, from, to time.Time, restaurantID uint) []models.Order {
	var orders []models.Order
	query := db.Preload("Items").Where("created_at >= ? AND created_at < ?", from, to)
	if restaurantID != 0 {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	query.Find(&orders)
	return orders
}

// aggregate reduces a window of orders into the stats payload shared
// by the dashboard and analytics endpoints.
func aggregate(orders []models.Order, windowStart time.Time) gin.H {
	revenue := lo.SumBy(orders, func(o models.Order) int64 {
		if o.Status == models.StatusCancelled {
			return 0
		}
		return o.TotalPrice
	})

	statusCounts := lo.CountValuesBy(orders, func(o models.Order) string {
		return string(o.Status)
	})

	customers := lo.Uniq(lo.Map(orders, func(o models.Order, _ int) uint {
		return o.AccountID
	}))

	// Top 5 items by quantity across the window
	quantities := map[string]int{}
	for _, o := range orders {
		for _, item := range o.Items {
			quantities[item.Name] += item.Quantity
		}
	}
	type itemCount struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	top := lo.MapToSlice(quantities, func(name string, qty int) itemCount {
		return itemCount{Name: name, Quantity: qty}
	})
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}

	// A customer is returning when their first order predates the window
	newCustomers, returningCustomers := 0, 0
	for _, id := range customers {
		var first models.Order
		if err := config.DB.Where("account_id = ?", id).Order("created_at asc").First(&first).Error; err != nil {
			continue
		}
		if first.CreatedAt.Before(windowStart) {
			returningCustomers++
		} else {
			newCustomers++
		}
	}

	return gin.H{
		"revenue":             revenue,
		"order_count":         len(orders),
		"distinct_customers":  len(customers),
		"orders_by_status":    statusCounts,
		"top_items":           top,
		"new_customers":       newCustomers,
		"returning_customers": returningCustomers,
	}
}

// DashboardStats summarises today's activity across all restaurants
func DashboardStats(c *gin.Context) {
	from, to := parseWindow(c)
	orders := windowedOrders(config.DB, from, to, 0)

	var restaurantCount, accountCount int64
	config.DB.Model(&models.Restaurant{}).Count(&restaurantCount)
	config.DB.Model(&models.Account{}).Count(&accountCount)

	stats := aggregate(orders, from)
	stats["restaurant_count"] = restaurantCount
	stats["account_count"] = accountCount

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dashboard stats fetched",
		"stats":   stats,
	})
}

// Analytics reports platform-wide aggregates for a date window
func Analytics(c *gin.Context) {
	from, to := parseWindow(c)
	orders := windowedOrders(config.DB, from, to, 0)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Analytics fetched",
		"from":      from.Format("2006-01-02"),
		"to":        to.AddDate(0, 0, -1).Format("2006-01-02"),
		"analytics": aggregate(orders, from),
	})
}

// RestaurantAnalytics scopes the same aggregates to one restaurant
func RestaurantAnalytics(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	from, to := parseWindow(c)
	orders := windowedOrders(config.DB, from, to, restaurant.ID)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Restaurant analytics fetched",
		"restaurant": restaurant.Name,
		"from":       from.Format("2006-01-02"),
		"to":         to.AddDate(0, 0, -1).Format("2006-01-02"),
		"analytics":  aggregate(orders, from),
	})
}

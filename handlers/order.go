package handlers

import (
	"errors"
	"net/http"

	"restohub-api/config"
	"restohub-api/menuversion"
	"restohub-api/middleware"
	"restohub-api/models"
	"restohub-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	DeliveryType  string `json:"delivery_type" binding:"required"`
	Items         []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates an order against a restaurant. Wallet payments
// debit the account balance and write a ledger row in the same
// transaction as the order insert, so balance never drifts from the
// ledger sum.
func PlaceOrder(c *gin.Context) {
	accountID := middleware.GetAccountID(c)

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Restaurant is currently closed"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment method, delivery type and at least one item are required"})
		return
	}

	// Build order items and calculate total
	var orderItems []models.OrderItem
	var total int64
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Menu item not found"})
			return
		}
		if menuItem.RestaurantID != restaurant.ID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.Available {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		total += menuItem.Price * int64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	order := models.Order{
		AccountID:     accountID,
		RestaurantID:  restaurant.ID,
		Status:        models.StatusPlaced,
		TotalPrice:    total,
		PaymentMethod: req.PaymentMethod,
		DeliveryType:  req.DeliveryType,
		Items:         orderItems,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.PaymentMethod == models.PaymentWallet {
			if err := debitWallet(tx, accountID, total); err != nil {
				return err
			}
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: models.StatusPlaced,
			Note:     "Order placed",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return menuversion.Bump(tx, restaurant.ID)
	})
	if errors.Is(err, errInsufficientBalance) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient wallet balance"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
		return
	}

	config.DB.Preload("Items").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// OrderHistory returns all orders for the logged-in account
func OrderHistory(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("Restaurant").
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order history fetched",
		"count":   len(orders),
		"orders":  orders,
	})
}

type ChangeOrderStatusRequest struct {
	OrderID uint               `json:"order_id" binding:"required"`
	Status  models.OrderStatus `json:"status" binding:"required"`
	Note    string             `json:"note"`
}

// ChangeOrderStatus moves an order through its lifecycle (admin).
// Every accepted change bumps the restaurant's menu version so order
// pollers notice.
func ChangeOrderStatus(c *gin.Context) {
	var req ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order_id and status are required"})
		return
	}
	if !statemachine.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown order status"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":           false,
			"message":           err.Error(),
			"current_status":    order.Status,
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			Note:       req.Note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return menuversion.Bump(tx, order.RestaurantID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  req.Status,
	})
}

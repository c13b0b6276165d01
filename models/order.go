package models

import "time"

// OrderStatus represents the states of a customer order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// PaymentMethod and DeliveryType are free-form on the wire but these
// are the values the frontend sends.
const (
	PaymentWallet         = "wallet"
	PaymentCashOnDelivery = "cod"

	DeliveryHome   = "delivery"
	DeliveryPickup = "pickup"
)

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	AccountID     uint                 `json:"account_id" gorm:"not null;index"`
	Account       Account              `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	RestaurantID  uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant    Restaurant           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'PLACED'"`
	TotalPrice    int64                `json:"total_price"`
	PaymentMethod string               `json:"payment_method"`
	DeliveryType  string               `json:"delivery_type"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null;index"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	Price      int64    `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string   `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

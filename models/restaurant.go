package models

import "time"

type Restaurant struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null"`
	Location      string     `json:"location"`
	ContactNumber string     `json:"contact_number"`
	IsOpen        bool       `json:"is_open" gorm:"default:true"`
	// MenuVersion is a monotonic staleness counter, bumped once per
	// mutation a menu/order poller could observe. Never decremented.
	MenuVersion int64      `json:"menu_version" gorm:"not null;default:0"`
	MenuItems   []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        int64     `json:"price" gorm:"not null"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	IsVeg        bool      `json:"is_veg" gorm:"default:false"`
	Available    bool      `json:"available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ad is a promotional banner attached to a restaurant.
type Ad struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Title        string    `json:"title" gorm:"not null"`
	ImageURL     string    `json:"image_url"`
	Active       bool      `json:"active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
}

// Package menuversion maintains the per-restaurant staleness counter.
// Clients poll the version and re-fetch the menu/order view only when
// it moved, so every mutation a poller could observe must bump it.
package menuversion

import (
	"errors"

	"restohub-api/models"

	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// Bump increments the restaurant's menu version by exactly 1 using a
// single atomic UPDATE, so concurrent mutations on the same restaurant
// cannot lose increments. Call it on the same *gorm.DB handle as the
// triggering write (pass the tx inside a transaction).
func Bump(db *gorm.DB, restaurantID uint) error {
	res := db.Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		UpdateColumn("menu_version", gorm.Expr("menu_version + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// Read returns the current menu version for a restaurant.
func Read(db *gorm.DB, restaurantID uint) (int64, error) {
	var version int64
	res := db.Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		Pluck("menu_version", &version)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrRestaurantNotFound
	}
	return version, nil
}

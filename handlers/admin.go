package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restohub-api/config"
	"restohub-api/menuversion"
	"restohub-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateRestaurantRequest struct {
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location" binding:"required"`
	ContactNumber string `json:"number" binding:"required"`
}

// CreateRestaurant registers a new restaurant, menu version starts at 0
func CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, location and contact number are required"})
		return
	}

	restaurant := models.Restaurant{
		Name:          req.Name,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
		IsOpen:        true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Restaurant created", "restaurant": restaurant})
}

// ListAllRestaurants returns every restaurant with its menu
func ListAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	config.DB.Preload("MenuItems").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Restaurants fetched",
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// ChangeRestaurantStatus toggles the open/closed flag and bumps the
// menu version so polling clients notice.
func ChangeRestaurantStatus(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	nowOpen := !restaurant.IsOpen
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&restaurant).Update("is_open", nowOpen).Error; err != nil {
			return err
		}
		return menuversion.Bump(tx, restaurant.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update restaurant status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant status updated",
		"is_open": nowOpen,
	})
}

// GetMenuVersion returns the staleness counter for a restaurant
func GetMenuVersion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid restaurant id"})
		return
	}
	version, err := menuversion.Read(config.DB, uint(id))
	if err != nil {
		if errors.Is(err, menuversion.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read menu version"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu version fetched", "menu_version": version})
}

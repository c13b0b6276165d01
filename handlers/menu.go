package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"restohub-api/config"
	"restohub-api/menuversion"
	"restohub-api/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxImageSize = 5 << 20 // 5MB

// saveImage validates and stores a multipart image upload, returning
// its public URL. An absent file is not an error; url comes back empty.
func saveImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image must be 5MB or smaller"})
		return "", false
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only image uploads are allowed"})
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read upload"})
		return "", false
	}
	defer src.Close()

	url, err := Images.Put(filepath.Ext(file.Filename), src)
	if err != nil {
		log.WithError(err).Error("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
		return "", false
	}
	return url, true
}

// AddMenuItem creates a menu item from a multipart form (fields +
// optional image) and bumps the restaurant's menu version.
func AddMenuItem(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	name := c.PostForm("name")
	priceStr := c.PostForm("price")
	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and price are required"})
		return
	}
	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be a positive integer"})
		return
	}

	imageURL, ok := saveImage(c)
	if !ok {
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  c.PostForm("description"),
		Price:        price,
		ImageURL:     imageURL,
		Category:     c.PostForm("category"),
		IsVeg:        c.PostForm("is_veg") == "true",
		Available:    true,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return menuversion.Bump(tx, restaurant.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Menu item added", "item": item})
}

type EditMenuItemRequest struct {
	MenuID      uint    `json:"menu_id" binding:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	IsVeg       *bool   `json:"is_veg"`
	Available   *bool   `json:"available"`
}

// EditMenuItem applies field updates to an item (availability toggles
// included) and bumps the restaurant's menu version.
func EditMenuItem(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	var req EditMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "menu_id is required"})
		return
	}

	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", req.MenuID, restaurant.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Menu item not found"})
		return
	}

	update := map[string]interface{}{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be a positive integer"})
			return
		}
		update["price"] = *req.Price
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if req.IsVeg != nil {
		update["is_veg"] = *req.IsVeg
	}
	if req.Available != nil {
		update["available"] = *req.Available
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Updates(update).Error; err != nil {
			return err
		}
		return menuversion.Bump(tx, restaurant.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes an item and bumps the menu version
func DeleteMenuItem(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	var item models.MenuItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("menuId"), restaurant.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Menu item not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return menuversion.Bump(tx, restaurant.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete menu item"})
		return
	}

	if item.ImageURL != "" {
		if err := Images.Delete(item.ImageURL); err != nil {
			log.WithError(err).Warn("failed to remove stored image")
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item deleted"})
}

// GetMenu returns a restaurant's menu with the current version, so
// clients can cache against it. Supports category and veg filters.
func GetMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	query := config.DB.Where("restaurant_id = ?", restaurant.ID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("is_veg") == "true" {
		query = query.Where("is_veg = ?", true)
	}
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Menu fetched",
		"restaurant":   restaurant.Name,
		"is_open":      restaurant.IsOpen,
		"menu_version": restaurant.MenuVersion,
		"count":        len(items),
		"menu":         items,
	})
}

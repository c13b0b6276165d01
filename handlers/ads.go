package handlers

import (
	"net/http"

	"restohub-api/config"
	"restohub-api/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AddAd attaches a promotional banner to a restaurant (multipart form)
func AddAd(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title is required"})
		return
	}

	imageURL, ok := saveImage(c)
	if !ok {
		return
	}

	ad := models.Ad{
		RestaurantID: restaurant.ID,
		Title:        title,
		ImageURL:     imageURL,
		Active:       true,
	}
	if err := config.DB.Create(&ad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create ad"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Ad created", "ad": ad})
}

// ListAds returns a restaurant's ads
func ListAds(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}
	var ads []models.Ad
	config.DB.Where("restaurant_id = ?", restaurant.ID).Find(&ads)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ads fetched", "count": len(ads), "ads": ads})
}

// DeleteAd removes an ad and its stored image
func DeleteAd(c *gin.Context) {
	var ad models.Ad
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("adId"), c.Param("id")).First(&ad).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Ad not found"})
		return
	}
	if err := config.DB.Delete(&ad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete ad"})
		return
	}
	if ad.ImageURL != "" {
		if err := Images.Delete(ad.ImageURL); err != nil {
			log.WithError(err).Warn("failed to remove stored image")
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ad deleted"})
}

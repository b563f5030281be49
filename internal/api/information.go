package api

import (
	"context" // Context for Redis operations

	"payment_point/internal/domain" // Importing domain models
	"payment_point/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// GetBannerHandler returns all banners in seed order (public endpoint)
func GetBannerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []domain.Banner // Slice to hold banners
		// Query all banners ordered by id to maintain seed order
		if err := db.Order("id ASC").Find(&banners).Error; err != nil {
			// If fetching fails, return invalid parameter
			InvalidParameter(c, "Error getting banners")
			return
		}
		// Return array of banners
		Success(c, "Sukses", banners)
	}
}

// GetServicesHandler returns the service catalog in seed order. The catalog
// is read-mostly, so it is served through a Redis cache
func GetServicesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()   // Context for Redis operations
		cacheKey := utils.CatalogKey  // Cache key for the catalog
		var services []domain.Service // Slice to hold services
		found, err := utils.GetCache(ctx, rdb, cacheKey, &services)
		// If found in cache, return it
		if err == nil && found {
			Success(c, "Sukses", services)
			return
		}
		// Query all services ordered by id to maintain seed order
		if err := db.Order("id ASC").Find(&services).Error; err != nil {
			// If fetching fails, return invalid parameter
			InvalidParameter(c, "Error getting services")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, services, utils.CatalogTTL) // Cache the catalog
		Success(c, "Sukses", services)                                     // Return service catalog
	}
}

package api

import (
	"context"       // Context for Redis operations
	"fmt"           // String formatting
	"math/rand"     // Random suffix for uploaded file names
	"path/filepath" // File extension handling
	"strings"       // String manipulation
	"time"          // Time durations

	"payment_point/internal/domain" // Importing domain models
	"payment_point/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Profile response payload
type ProfileResponse struct {
	Email        string `json:"email"`         // Email address
	FirstName    string `json:"first_name"`    // First name
	LastName     string `json:"last_name"`     // Last name
	ProfileImage string `json:"profile_image"` // Profile image URL
}

// Request struct for profile update
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"` // New first name
	LastName  string `json:"last_name"`  // New last name
}

// Maximum accepted profile image size (1MB)
const maxImageSize = 1 << 20

// toProfileResponse maps a user row to the profile payload
func toProfileResponse(user domain.User) ProfileResponse {
	return ProfileResponse{
		Email:        user.Email,        // Email address
		FirstName:    user.FirstName,    // First name
		LastName:     user.LastName,     // Last name
		ProfileImage: user.ProfileImage, // Profile image URL
	}
}

// GetProfileHandler returns the authenticated user's profile
func GetProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		ctx := context.Background()          // Context for Redis operations
		cacheKey := utils.ProfileKey(userID) // Cache key for profile
		var cached ProfileResponse           // Profile struct to hold cached data
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			Success(c, "Sukses", cached)
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return invalid parameter
			InvalidParameter(c, "User not found")
			return
		}
		resp := toProfileResponse(user)                                  // Map to response payload
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.ProfileTTL)   // Cache the profile
		Success(c, "Sukses", resp)                                       // Return profile
	}
}

// UpdateProfileHandler updates the authenticated user's first and last name
func UpdateProfileHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		var req UpdateProfileRequest         // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.FirstName == "" || req.LastName == "" {
			// If binding fails or fields are missing, return invalid parameter
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return invalid parameter
			InvalidParameter(c, "User not found")
			return
		}
		// Update first and last name only
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		if err := db.Model(&user).Updates(map[string]any{
			"first_name": req.FirstName, // New first name
			"last_name":  req.LastName,  // New last name
		}).Error; err != nil {
			// If update fails, return invalid parameter
			InvalidParameter(c, "Error updating profile")
			return
		}
		// Invalidate profile cache
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProfileKey(userID))
		// Return updated profile
		Success(c, "Update Pofile berhasil", toProfileResponse(user))
	}
}

// UpdateProfileImageHandler stores an uploaded profile image and updates the
// user's image URL. Accepts jpeg/jpg/png up to 1MB in a multipart field
// named "file"
func UpdateProfileImageHandler(db *gorm.DB, rdb *redis.Client, appURL, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		file, err := c.FormFile("file")      // Get uploaded file
		if err != nil {
			// If no file was uploaded, return invalid parameter
			InvalidParameter(c, "Format Image tidak sesuai")
			return
		}
		// Validate extension (jpeg, jpg, png only)
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".jpeg" && ext != ".jpg" && ext != ".png" {
			InvalidParameter(c, "Format Image tidak sesuai")
			return
		}
		// Validate file size (max 1MB)
		if file.Size > maxImageSize {
			InvalidParameter(c, "Format Image tidak sesuai")
			return
		}
		// Build a unique file name: profile-{timestamp}-{random}{ext}
		filename := fmt.Sprintf("profile-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
		// Save the uploaded file to the uploads directory
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
			InvalidParameter(c, "Format Image tidak sesuai")
			return
		}
		imageURL := appURL + "/uploads/" + filename // Public URL of the uploaded image
		var user domain.User                        // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return invalid parameter
			InvalidParameter(c, "User not found")
			return
		}
		// Update the profile image URL
		if err := db.Model(&user).Update("profile_image", imageURL).Error; err != nil {
			InvalidParameter(c, "Format Image tidak sesuai")
			return
		}
		user.ProfileImage = imageURL // Reflect the new URL in the response
		// Invalidate profile cache
		_ = utils.DeleteCache(context.Background(), rdb, utils.ProfileKey(userID))
		// Return updated profile
		Success(c, "Update Profile Image berhasil", toProfileResponse(user))
	}
}

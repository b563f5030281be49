package middleware

import (
	"strings" // String manipulation

	"payment_point/internal/api"   // Response envelope helpers
	"payment_point/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuthMiddleware validates JWT tokens and extracts the user identity
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with the 108 unauthorized envelope
			api.AbortUnauthorized(c, "Token tidak tidak valid atau kadaluwarsa")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with the 108 unauthorized envelope
			api.AbortUnauthorized(c, "Token tidak tidak valid atau kadaluwarsa")
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Set("email", claims.Email)   // Store email in context
		c.Next()                       // Proceed to the next handler
	}
}

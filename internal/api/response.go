package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Envelope status codes used across all endpoints
const (
	StatusSuccess            = 0   // Success
	StatusInvalidParameter   = 102 // Invalid parameter or format
	StatusInvalidCredentials = 103 // Invalid credentials
	StatusUnauthorized       = 108 // Missing, invalid or expired token
)

// Response is the envelope wrapping every endpoint's result
type Response struct {
	Status  int    `json:"status"`  // Envelope status code
	Message string `json:"message"` // Human-readable message
	Data    any    `json:"data"`    // Payload, null on errors
}

// Success writes a status-0 envelope with the given payload
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message, Data: data})
}

// InvalidParameter writes a status-102 envelope with HTTP 400
func InvalidParameter(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Status: StatusInvalidParameter, Message: message})
}

// InvalidCredentials writes a status-103 envelope with HTTP 401
func InvalidCredentials(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{Status: StatusInvalidCredentials, Message: message})
}

// AbortUnauthorized aborts the request with a status-108 envelope and HTTP 401
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Status: StatusUnauthorized, Message: message})
}

package api

import (
	"context" // Context for Redis operations
	"errors"  // Error kind matching
	"strconv" // String conversion

	"payment_point/internal/ledger" // Balance ledger core
	"payment_point/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for top-up
type TopUpRequest struct {
	TopUpAmount float64 `json:"top_up_amount"` // Amount to credit, must be > 0
}

// Request struct for payment
type PaymentRequest struct {
	ServiceCode string `json:"service_code"` // Catalog service code to pay for
}

// GetBalanceHandler returns the authenticated user's current balance
func GetBalanceHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		ctx := context.Background()          // Context for Redis operations
		cacheKey := utils.BalanceKey(userID) // Cache key for balance
		var cached float64                   // Cached balance value
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			Success(c, "Get Balance Berhasil", gin.H{"balance": cached})
			return
		}
		// Read the balance from the ledger (non-locking read path)
		balance, err := svc.GetBalance(c.Request.Context(), userID)
		if err != nil {
			// Missing balance row, or a store failure
			if errors.Is(err, ledger.ErrNotFound) {
				InvalidParameter(c, "Balance not found")
				return
			}
			InvalidParameter(c, "Error getting balance")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, balance, utils.BalanceTTL) // Cache the balance
		Success(c, "Get Balance Berhasil", gin.H{"balance": balance})     // Return balance
	}
}

// TopUpHandler credits the authenticated user's balance
func TopUpHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		var req TopUpRequest                 // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Non-numeric amounts fail binding and get the same message as
			// non-positive ones
			InvalidParameter(c, "Paramter amount hanya boleh angka dan tidak boleh lebih kecil dari 0")
			return
		}
		// Run the atomic top-up cycle
		newBalance, err := svc.TopUp(c.Request.Context(), userID, req.TopUpAmount)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrInvalidAmount):
				// Rejected before any store access
				InvalidParameter(c, "Paramter amount hanya boleh angka dan tidak boleh lebih kecil dari 0")
			case errors.Is(err, ledger.ErrNotFound):
				// Balance row missing, rolled back
				InvalidParameter(c, "Balance not found")
			default:
				// Store failure during the locked transaction, rolled back
				logrus.WithFields(logrus.Fields{
					"user_id": userID,      // User ID
					"error":   err.Error(), // Error message
				}).Error("Top up failed") // Log top up failure
				InvalidParameter(c, "Paramter amount hanya boleh angka dan tidak boleh lebih kecil dari 0")
			}
			return
		}
		// Invalidate cached balance
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(userID))
		// Return the new balance
		Success(c, "Top Up Balance berhasil", gin.H{"balance": newBalance})
	}
}

// PaymentHandler debits the tariff of a catalog service from the
// authenticated user's balance and returns the transaction receipt
func PaymentHandler(svc *ledger.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		var req PaymentRequest               // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the service-not-found message
			InvalidParameter(c, "Service ataus Layanan tidak ditemukan")
			return
		}
		// Run the atomic payment cycle
		receipt, err := svc.Pay(c.Request.Context(), userID, req.ServiceCode)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrNotFound):
				// Balance row missing, rolled back
				InvalidParameter(c, "Balance not found")
			default:
				// Unknown service and insufficient funds share one caller-visible
				// message; the ledger keeps the kinds distinct
				logrus.WithFields(logrus.Fields{
					"user_id":      userID,          // User ID
					"service_code": req.ServiceCode, // Requested service code
					"error":        err.Error(),     // Error message
				}).Warn("Payment rejected") // Log payment rejection
				InvalidParameter(c, "Service ataus Layanan tidak ditemukan")
			}
			return
		}
		// Invalidate cached balance
		_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(userID))
		// Return the transaction receipt
		Success(c, "Transaksi berhasil", receipt)
	}
}

// HistoryHandler returns the authenticated user's transaction history,
// newest first. Query params: offset (default 0) and limit (optional; when
// absent the full remaining set is returned)
func HistoryHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Get userID from context
		offset := 0                          // Default offset
		limit := 0                           // 0 means no cap
		// Parse offset from query
		if o := c.Query("offset"); o != "" {
			if v, err := strconv.Atoi(o); err == nil && v >= 0 {
				offset = v // Set offset if valid
			}
		}
		// Parse limit from query
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				limit = v // Set limit if valid
			}
		}
		// Read the history page (read-only, no locking)
		history, err := svc.History(c.Request.Context(), userID, offset, limit)
		if err != nil {
			// If fetching fails, return invalid parameter
			InvalidParameter(c, "Error getting transaction history")
			return
		}
		// Return the history page
		Success(c, "Get History Berhasil", history)
	}
}

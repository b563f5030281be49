package api

import (
	"regexp" // Regular expressions

	"payment_point/internal/domain" // Importing domain models
	"payment_point/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Email     string `json:"email"`      // Email address
	Password  string `json:"password"`   // Password, min 8 characters
	FirstName string `json:"first_name"` // First name
	LastName  string `json:"last_name"`  // Last name
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Email address
	Password string `json:"password"` // Password
}

// Email validation regex
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isValidEmail checks if the email matches the expected format
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// isValidPassword checks if the password meets the minimum length of 8 characters
func isValidPassword(password string) bool {
	return len(password) >= 8
}

// RegisterHandler registers a new user and creates their balance row in the
// same database transaction, so every user has exactly one balance for the
// lifetime of the account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return invalid parameter
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		// Validate required fields and email format
		if req.Email == "" || req.FirstName == "" || req.LastName == "" || !isValidEmail(req.Email) {
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		// Validate password length (min 8 characters)
		if !isValidPassword(req.Password) {
			InvalidParameter(c, "Password minimal 8 karakter")
			return
		}
		// Hash the password with bcrypt
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return invalid parameter
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		// Create user and balance row atomically
		user := domain.User{
			Email:     req.Email,
			Password:  string(hash),
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			// Create the user
			if err := tx.Create(&user).Error; err != nil {
				return err // Return error to rollback
			}
			// Create the balance row with zero amount
			if err := tx.Create(&domain.Balance{UserID: user.ID, Balance: 0}).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result (duplicate email lands here too)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Email address
				"error": err.Error(), // Error message
			}).Error("Registration failed") // Log registration failure
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		// Return success response
		Success(c, "Registrasi berhasil silahkan login", nil)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return invalid parameter
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		// Validate email format and password length before touching the store
		if !isValidEmail(req.Email) || !isValidPassword(req.Password) {
			InvalidParameter(c, "Paramter email tidak sesuai format")
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// If user not found, return invalid credentials
			InvalidCredentials(c, "Username atau password salah")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			InvalidCredentials(c, "Username atau password salah")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return invalid credentials
			InvalidCredentials(c, "Username atau password salah")
			return
		}
		// Return the token in the response
		Success(c, "Login Sukses", gin.H{"token": token})
	}
}

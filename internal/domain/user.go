package domain

// User Model
type User struct {
	ID           uint    `gorm:"primaryKey" json:"-"`                  // Primary key
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`    // Unique email address
	Password     string  `gorm:"not null" json:"-"`                    // Hashed password
	FirstName    string  `gorm:"not null" json:"first_name"`           // First name
	LastName     string  `gorm:"not null" json:"last_name"`            // Last name
	ProfileImage string  `json:"profile_image"`                        // Profile image URL
	Balance      Balance `gorm:"constraint:OnDelete:CASCADE" json:"-"` // One-to-one relationship with Balance
}

package domain

// Balance Model
type Balance struct {
	ID      uint    `gorm:"primaryKey" json:"-"`           // Primary key
	UserID  uint    `gorm:"uniqueIndex" json:"-"`          // Foreign key to User (one row per user)
	Balance float64 `gorm:"not null;default:0" json:"balance"` // Current spendable amount, never negative
}

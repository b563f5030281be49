package domain

// Service Model (catalog entry, seeded by migration and read-only at runtime)
type Service struct {
	ID            uint    `gorm:"primaryKey" json:"-"`                      // Primary key
	ServiceCode   string  `gorm:"uniqueIndex;not null" json:"service_code"` // Unique service code
	ServiceName   string  `gorm:"not null" json:"service_name"`             // Display name
	ServiceIcon   string  `json:"service_icon"`                             // Icon URL
	ServiceTariff float64 `gorm:"not null" json:"service_tariff"`           // Fixed price debited on payment
}

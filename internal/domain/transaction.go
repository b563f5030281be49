package domain

import "time"

// Transaction types
const (
	TransactionTypeTopUp   = "TOPUP"   // Balance top-up
	TransactionTypePayment = "PAYMENT" // Service payment debit
)

// Transaction Model (append-only ledger entry; never updated or deleted)
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"-"`                        // Primary key
	InvoiceNumber   string    `gorm:"uniqueIndex;not null" json:"invoice_number"` // Unique invoice reference
	UserID          uint      `gorm:"index;not null" json:"-"`                    // Foreign key to User
	TransactionType string    `gorm:"not null" json:"transaction_type"`           // TOPUP or PAYMENT
	ServiceCode     *string   `json:"service_code,omitempty"`                     // Service code, PAYMENT only
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`               // Amount of the operation, always positive
	Description     string    `json:"description"`                                // Human-readable description
	CreatedOn       time.Time `gorm:"autoCreateTime" json:"created_on"`           // Server timestamp at insert
}

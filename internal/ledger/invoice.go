package ledger

import (
	"fmt"
	"time"
)

// InvoiceNumber builds an invoice reference for the given time.
// Format: INV{DDMMYYYY}-{millisecond epoch}, e.g. INV17082023-1692268800000.
// The generator keeps no state and does not coordinate with the store; two
// calls within the same millisecond produce the same reference, and the
// unique index on transactions.invoice_number is the backstop — a duplicate
// insert rolls the whole operation back.
func InvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV%02d%02d%04d-%d", t.Day(), int(t.Month()), t.Year(), t.UnixMilli())
}

// NewInvoiceNumber builds an invoice reference for the current time.
func NewInvoiceNumber() string {
	return InvoiceNumber(time.Now())
}

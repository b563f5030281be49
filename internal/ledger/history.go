package ledger

import (
	"context"
	"time"
)

// HistoryRecord is one ledger entry as exposed to callers.
type HistoryRecord struct {
	InvoiceNumber   string    `json:"invoice_number"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	TotalAmount     float64   `json:"total_amount"`
	CreatedOn       time.Time `json:"created_on"`
}

// History is a page of a user's transaction log, newest first.
type History struct {
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
	Records []HistoryRecord `json:"records"`
}

// History returns the user's transactions ordered by created_on descending.
// A negative offset is treated as 0. A limit <= 0 means no cap — the full
// remaining set from offset is returned, and the reported limit is the
// number of records returned.
func (s *Service) History(ctx context.Context, userID uint, offset, limit int) (History, error) {
	if offset < 0 {
		offset = 0
	}
	rows, err := s.store.ListTransactions(ctx, userID, offset, limit)
	if err != nil {
		return History{}, err
	}
	records := make([]HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, HistoryRecord{
			InvoiceNumber:   row.InvoiceNumber,
			TransactionType: row.TransactionType,
			Description:     row.Description,
			TotalAmount:     row.TotalAmount,
			CreatedOn:       row.CreatedOn,
		})
	}
	if limit <= 0 {
		limit = len(records)
	}
	return History{Offset: offset, Limit: limit, Records: records}, nil
}

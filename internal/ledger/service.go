package ledger

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"payment_point/internal/domain"
)

// Receipt is the result of a successful payment.
type Receipt struct {
	InvoiceNumber   string    `json:"invoice_number"`
	ServiceCode     string    `json:"service_code"`
	ServiceName     string    `json:"service_name"`
	TransactionType string    `json:"transaction_type"`
	TotalAmount     float64   `json:"total_amount"`
	CreatedOn       time.Time `json:"created_on"`
}

// Service orchestrates the ledger: every mutation is one
// lock -> validate -> mutate -> append -> commit cycle on the user's
// balance row, so concurrent operations on the same user serialize in
// lock-acquisition order and a balance change is never visible without
// its ledger entry.
type Service struct {
	store *Store
}

// NewService creates a balance service over the given store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// GetBalance returns the user's current balance without locking.
func (s *Service) GetBalance(ctx context.Context, userID uint) (float64, error) {
	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return 0, err
	}
	return balance.Balance, nil
}

// TopUp credits the user's balance by amount and appends a TOPUP ledger
// entry, atomically. Returns the new balance.
func (s *Service) TopUp(ctx context.Context, userID uint, amount float64) (float64, error) {
	// Amount must be a finite number strictly greater than zero; rejected
	// before any store access.
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := tx.LockBalance(userID)
	if err != nil {
		return 0, err
	}

	newBalance := balance.Balance + amount
	if err := tx.SaveBalance(userID, newBalance); err != nil {
		return 0, err
	}

	rec := domain.Transaction{
		InvoiceNumber:   NewInvoiceNumber(),
		UserID:          userID,
		TransactionType: domain.TransactionTypeTopUp,
		TotalAmount:     amount,
		Description:     "Top Up balance",
	}
	if err := tx.AppendTransaction(&rec); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"amount":         amount,
		"balance":        newBalance,
		"invoice_number": rec.InvoiceNumber,
	}).Info("Top up committed")

	return newBalance, nil
}

// Pay debits the tariff of the given catalog service from the user's
// balance and appends a PAYMENT ledger entry, atomically. The balance never
// goes negative: the debit is checked against the locked balance first.
func (s *Service) Pay(ctx context.Context, userID uint, serviceCode string) (Receipt, error) {
	if serviceCode == "" {
		return Receipt{}, ErrInvalidInput
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return Receipt{}, err
	}
	defer tx.Rollback()

	balance, err := tx.LockBalance(userID)
	if err != nil {
		return Receipt{}, err
	}

	service, err := tx.FindService(serviceCode)
	if err != nil {
		return Receipt{}, err
	}

	if balance.Balance < service.ServiceTariff {
		return Receipt{}, ErrInsufficientFunds
	}

	newBalance := balance.Balance - service.ServiceTariff
	if err := tx.SaveBalance(userID, newBalance); err != nil {
		return Receipt{}, err
	}

	rec := domain.Transaction{
		InvoiceNumber:   NewInvoiceNumber(),
		UserID:          userID,
		TransactionType: domain.TransactionTypePayment,
		ServiceCode:     &service.ServiceCode,
		TotalAmount:     service.ServiceTariff,
		Description:     service.ServiceName,
	}
	if err := tx.AppendTransaction(&rec); err != nil {
		return Receipt{}, err
	}

	if err := tx.Commit(); err != nil {
		return Receipt{}, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"service_code":   service.ServiceCode,
		"amount":         service.ServiceTariff,
		"balance":        newBalance,
		"invoice_number": rec.InvoiceNumber,
	}).Info("Payment committed")

	return Receipt{
		InvoiceNumber:   rec.InvoiceNumber,
		ServiceCode:     service.ServiceCode,
		ServiceName:     service.ServiceName,
		TransactionType: rec.TransactionType,
		TotalAmount:     rec.TotalAmount,
		CreatedOn:       rec.CreatedOn,
	}, nil
}

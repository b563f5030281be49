package ledger

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"payment_point/internal/domain"
)

// Store wraps the relational tables backing the ledger (balances,
// transactions, services). Mutations go through an explicit Tx so the
// lock-then-mutate ordering is visible as a contract; reads that need no
// lock go through the Store directly.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of a gorm connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Tx is one in-flight ledger transaction. Every Tx must end in exactly one
// Commit or Rollback; Rollback after Commit is a no-op, so callers may
// defer it unconditionally.
type Tx struct {
	tx   *gorm.DB
	done bool
}

// Begin opens a transaction scoped to the given context.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, ErrOperationFailed
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit().Error; err != nil {
		return ErrOperationFailed
	}
	t.done = true
	return nil
}

// Rollback rolls the transaction back. Safe to call after Commit.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback().Error; err != nil {
		return ErrOperationFailed
	}
	return nil
}

// LockBalance reads the user's balance row with SELECT ... FOR UPDATE,
// blocking concurrent mutators of the same row until Commit or Rollback.
func (t *Tx) LockBalance(userID uint) (domain.Balance, error) {
	var balance domain.Balance
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Balance{}, ErrNotFound
		}
		return domain.Balance{}, ErrOperationFailed
	}
	return balance, nil
}

// SaveBalance persists the new amount for a balance row already held under
// a lock by this transaction. RowsAffected is not checked: LockBalance has
// already proven the row exists, and MySQL reports zero affected rows when
// the stored value does not change.
func (t *Tx) SaveBalance(userID uint, amount float64) error {
	if err := t.tx.Model(&domain.Balance{}).Where("user_id = ?", userID).Update("balance", amount).Error; err != nil {
		return ErrOperationFailed
	}
	return nil
}

// FindService looks a catalog entry up by code inside the transaction.
func (t *Tx) FindService(code string) (domain.Service, error) {
	var service domain.Service
	err := t.tx.Where("service_code = ?", code).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Service{}, ErrServiceNotFound
		}
		return domain.Service{}, ErrOperationFailed
	}
	return service, nil
}

// AppendTransaction inserts one ledger entry. A unique-constraint violation
// on the invoice number surfaces as ErrOperationFailed like any other
// insert failure; the caller rolls back.
func (t *Tx) AppendTransaction(rec *domain.Transaction) error {
	if err := t.tx.Create(rec).Error; err != nil {
		return ErrOperationFailed
	}
	return nil
}

// GetBalance reads a user's balance row without locking.
func (s *Store) GetBalance(ctx context.Context, userID uint) (domain.Balance, error) {
	var balance domain.Balance
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Balance{}, ErrNotFound
		}
		return domain.Balance{}, ErrOperationFailed
	}
	return balance, nil
}

// ListTransactions returns the user's ledger entries ordered newest first,
// with id as the tie-break within one timestamp. A limit <= 0 means no cap:
// the full remaining set from offset is returned.
func (s *Store) ListTransactions(ctx context.Context, userID uint, offset, limit int) ([]domain.Transaction, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_on DESC, id DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	} else if offset > 0 {
		// MySQL accepts OFFSET only together with LIMIT.
		q = q.Limit(math.MaxInt)
	}
	var records []domain.Transaction
	if err := q.Find(&records).Error; err != nil {
		return nil, ErrOperationFailed
	}
	return records, nil
}

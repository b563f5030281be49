package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"payment_point/internal/domain"
	"payment_point/internal/ledger"
)

// setupLedgerDB opens the test database named by TEST_DATABASE_DSN, migrates
// the ledger schema and wipes it. Tests are skipped when no database is
// configured.
func setupLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("db connection: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Balance{}, &domain.Transaction{}, &domain.Service{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"transactions", "balances", "users", "services"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
	return db
}

// createUser inserts a user with a balance row at the given starting amount.
func createUser(t *testing.T, db *gorm.DB, email string, balance float64) uint {
	t.Helper()
	user := domain.User{Email: email, Password: "x", FirstName: "Test", LastName: "User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := db.Create(&domain.Balance{UserID: user.ID, Balance: balance}).Error; err != nil {
		t.Fatalf("create balance: %v", err)
	}
	return user.ID
}

// seedService inserts one catalog entry.
func seedService(t *testing.T, db *gorm.DB, code, name string, tariff float64) {
	t.Helper()
	if err := db.Create(&domain.Service{ServiceCode: code, ServiceName: name, ServiceTariff: tariff}).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
}

func currentBalance(t *testing.T, db *gorm.DB, userID uint) float64 {
	t.Helper()
	var balance domain.Balance
	if err := db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return balance.Balance
}

func transactionCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&domain.Transaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}

// topUpRetrying retries on the invoice-collision backstop; retry policy
// belongs to the caller, not the ledger.
func topUpRetrying(ctx context.Context, svc *ledger.Service, userID uint, amount float64) (float64, error) {
	var balance float64
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		balance, err = svc.TopUp(ctx, userID, amount)
		if !errors.Is(err, ledger.ErrOperationFailed) {
			return balance, err
		}
		time.Sleep(2 * time.Millisecond)
	}
	return balance, err
}

func TestTopUpAndPayConservation(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))
	ctx := context.Background()

	userID := createUser(t, db, "conservation@example.com", 0)
	seedService(t, db, "PULSA10", "Pulsa 10K", 10000)

	balance, err := svc.TopUp(ctx, userID, 50000)
	if err != nil {
		t.Fatalf("top up: %v", err)
	}
	if balance != 50000 {
		t.Fatalf("balance after top up = %v, want 50000", balance)
	}

	// Four payments drain the balance to 10000.
	for i := 0; i < 4; i++ {
		time.Sleep(2 * time.Millisecond) // distinct invoice timestamps
		receipt, err := svc.Pay(ctx, userID, "PULSA10")
		if err != nil {
			t.Fatalf("pay %d: %v", i+1, err)
		}
		if receipt.ServiceName != "Pulsa 10K" || receipt.TotalAmount != 10000 {
			t.Fatalf("receipt = %+v", receipt)
		}
		if receipt.TransactionType != domain.TransactionTypePayment {
			t.Fatalf("receipt type = %q", receipt.TransactionType)
		}
	}
	if got := currentBalance(t, db, userID); got != 10000 {
		t.Fatalf("balance after drain = %v, want 10000", got)
	}

	// A fifth payment exceeds the balance and must change nothing.
	_, err = svc.Pay(ctx, userID, "PULSA10")
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("fifth pay err = %v, want ErrInsufficientFunds", err)
	}
	if got := currentBalance(t, db, userID); got != 10000 {
		t.Fatalf("balance after failed pay = %v, want 10000", got)
	}
	if got := transactionCount(t, db, userID); got != 5 {
		t.Fatalf("transaction count = %d, want 5", got)
	}

	// Conservation: the balance equals the signed sum of ledger amounts.
	var rows []domain.Transaction
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		t.Fatalf("read transactions: %v", err)
	}
	var sum float64
	invoices := make(map[string]bool)
	for _, row := range rows {
		if invoices[row.InvoiceNumber] {
			t.Fatalf("duplicate invoice number %q", row.InvoiceNumber)
		}
		invoices[row.InvoiceNumber] = true
		switch row.TransactionType {
		case domain.TransactionTypeTopUp:
			sum += row.TotalAmount
		case domain.TransactionTypePayment:
			sum -= row.TotalAmount
		default:
			t.Fatalf("unexpected transaction type %q", row.TransactionType)
		}
	}
	if sum != 10000 {
		t.Fatalf("signed ledger sum = %v, want 10000", sum)
	}
}

func TestConcurrentTopUpsAreNotLost(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))
	ctx := context.Background()

	userID := createUser(t, db, "concurrent@example.com", 0)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := topUpRetrying(ctx, svc, userID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent top up: %v", err)
	}

	if got := currentBalance(t, db, userID); got != workers {
		t.Fatalf("balance = %v, want %d", got, workers)
	}
	if got := transactionCount(t, db, userID); got != workers {
		t.Fatalf("transaction count = %d, want %d", got, workers)
	}
}

func TestTopUpSucceedsWhenStoredValueUnchanged(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))
	ctx := context.Background()

	// 1e18 + 0.5 rounds back to 1e18 in float64, so the balance UPDATE
	// writes the value already stored and MySQL reports zero affected
	// rows. The top-up must still commit and append its ledger entry.
	userID := createUser(t, db, "nochange@example.com", 1e18)

	balance, err := svc.TopUp(ctx, userID, 0.5)
	if err != nil {
		t.Fatalf("top up: %v", err)
	}
	if balance != 1e18 {
		t.Fatalf("balance = %v, want 1e18", balance)
	}
	if got := currentBalance(t, db, userID); got != 1e18 {
		t.Fatalf("stored balance = %v, want 1e18", got)
	}
	if got := transactionCount(t, db, userID); got != 1 {
		t.Fatalf("transaction count = %d, want 1", got)
	}
}

func TestPayUnknownServiceRollsBack(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))
	ctx := context.Background()

	userID := createUser(t, db, "rollback@example.com", 25000)

	_, err := svc.Pay(ctx, userID, "NOPE")
	if !errors.Is(err, ledger.ErrServiceNotFound) {
		t.Fatalf("pay err = %v, want ErrServiceNotFound", err)
	}
	if got := currentBalance(t, db, userID); got != 25000 {
		t.Fatalf("balance = %v, want 25000", got)
	}
	if got := transactionCount(t, db, userID); got != 0 {
		t.Fatalf("transaction count = %d, want 0", got)
	}
}

func TestTopUpMissingBalanceRow(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))

	_, err := svc.TopUp(context.Background(), 424242, 100)
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("top up err = %v, want ErrNotFound", err)
	}
}

func TestGetBalance(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))
	ctx := context.Background()

	userID := createUser(t, db, "read@example.com", 7500)

	balance, err := svc.GetBalance(ctx, userID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance != 7500 {
		t.Fatalf("balance = %v, want 7500", balance)
	}

	if _, err := svc.GetBalance(ctx, 424242); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("get balance of unknown user err = %v, want ErrNotFound", err)
	}
}

func TestHistoryOrderingAndPagination(t *testing.T) {
	db := setupLedgerDB(t)
	svc := ledger.NewService(ledger.NewStore(db))
	ctx := context.Background()

	userID := createUser(t, db, "history@example.com", 0)

	// Six entries with strictly increasing timestamps; invoice N is the
	// Nth oldest.
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 6; i++ {
		rec := domain.Transaction{
			InvoiceNumber:   fmt.Sprintf("INV-TEST-%d", i+1),
			UserID:          userID,
			TransactionType: domain.TransactionTypeTopUp,
			TotalAmount:     1000,
			Description:     "Top Up balance",
			CreatedOn:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("insert transaction %d: %v", i+1, err)
		}
	}

	// No limit: everything, newest first.
	all, err := svc.History(ctx, userID, 0, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all.Records) != 6 {
		t.Fatalf("record count = %d, want 6", len(all.Records))
	}
	if all.Limit != 6 || all.Offset != 0 {
		t.Fatalf("page meta = offset %d limit %d, want 0/6", all.Offset, all.Limit)
	}
	for i, rec := range all.Records {
		want := fmt.Sprintf("INV-TEST-%d", 6-i)
		if rec.InvoiceNumber != want {
			t.Fatalf("record %d invoice = %q, want %q", i, rec.InvoiceNumber, want)
		}
	}

	// offset=2 limit=2 returns the 3rd and 4th newest.
	page, err := svc.History(ctx, userID, 2, 2)
	if err != nil {
		t.Fatalf("history page: %v", err)
	}
	if len(page.Records) != 2 {
		t.Fatalf("page record count = %d, want 2", len(page.Records))
	}
	if page.Records[0].InvoiceNumber != "INV-TEST-4" || page.Records[1].InvoiceNumber != "INV-TEST-3" {
		t.Fatalf("page invoices = %q, %q, want INV-TEST-4, INV-TEST-3",
			page.Records[0].InvoiceNumber, page.Records[1].InvoiceNumber)
	}

	// Offset without a limit: the full remaining set from there on.
	rest, err := svc.History(ctx, userID, 2, 0)
	if err != nil {
		t.Fatalf("history rest: %v", err)
	}
	if len(rest.Records) != 4 {
		t.Fatalf("rest record count = %d, want 4", len(rest.Records))
	}
	if rest.Records[0].InvoiceNumber != "INV-TEST-4" || rest.Records[3].InvoiceNumber != "INV-TEST-1" {
		t.Fatalf("rest invoices = %q..%q, want INV-TEST-4..INV-TEST-1",
			rest.Records[0].InvoiceNumber, rest.Records[3].InvoiceNumber)
	}
	if rest.Limit != 4 {
		t.Fatalf("rest limit = %d, want 4", rest.Limit)
	}

	// Offset past the end yields an empty page, not an error.
	empty, err := svc.History(ctx, userID, 10, 5)
	if err != nil {
		t.Fatalf("history past end: %v", err)
	}
	if len(empty.Records) != 0 {
		t.Fatalf("record count past end = %d, want 0", len(empty.Records))
	}
}

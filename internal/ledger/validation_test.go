package ledger

import (
	"context"
	"errors"
	"math"
	"testing"
)

// Validation failures must be rejected before any store access, so these
// tests run against a service with no live database behind it.

func TestTopUpRejectsInvalidAmounts(t *testing.T) {
	svc := NewService(NewStore(nil))
	for _, amount := range []float64{0, -1, -50000, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.TopUp(context.Background(), 1, amount)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("TopUp(%v) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestPayRejectsEmptyServiceCode(t *testing.T) {
	svc := NewService(NewStore(nil))
	_, err := svc.Pay(context.Background(), 1, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Pay with empty code err = %v, want ErrInvalidInput", err)
	}
}

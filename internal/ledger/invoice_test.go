package ledger

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestInvoiceNumberFormat(t *testing.T) {
	at := time.Date(2023, time.August, 17, 10, 30, 0, 0, time.UTC)
	got := InvoiceNumber(at)
	want := fmt.Sprintf("INV17082023-%d", at.UnixMilli())
	if got != want {
		t.Fatalf("invoice number = %q, want %q", got, want)
	}
}

func TestInvoiceNumberPadsDayAndMonth(t *testing.T) {
	at := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	got := InvoiceNumber(at)
	want := fmt.Sprintf("INV05012024-%d", at.UnixMilli())
	if got != want {
		t.Fatalf("invoice number = %q, want %q", got, want)
	}
}

func TestNewInvoiceNumberShape(t *testing.T) {
	pattern := regexp.MustCompile(`^INV\d{8}-\d{13}$`)
	got := NewInvoiceNumber()
	if !pattern.MatchString(got) {
		t.Fatalf("invoice number %q does not match %s", got, pattern)
	}
}

func TestNewInvoiceNumberDistinctAcrossTicks(t *testing.T) {
	// The generator is purely time-based, so distinctness is only promised
	// across millisecond ticks; space the calls out accordingly.
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		inv := NewInvoiceNumber()
		if seen[inv] {
			t.Fatalf("duplicate invoice number %q", inv)
		}
		seen[inv] = true
		time.Sleep(2 * time.Millisecond)
	}
}

package services

import (
	"strings"
	"testing"
	"time"

	"consulting-platform-server/models"
)

func TestValidateBookingTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.BookingStatus
		to      models.BookingStatus
		wantErr bool
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, false},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, false},
		{"pending to completed skips the lifecycle", models.BookingStatusPending, models.BookingStatusCompleted, true},
		{"pending to no-show", models.BookingStatusPending, models.BookingStatusNoShow, true},
		{"confirmed to in-progress", models.BookingStatusConfirmed, models.BookingStatusInProgress, false},
		{"confirmed to no-show", models.BookingStatusConfirmed, models.BookingStatusNoShow, false},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, false},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{"in-progress to completed", models.BookingStatusInProgress, models.BookingStatusCompleted, false},
		{"in-progress to cancelled", models.BookingStatusInProgress, models.BookingStatusCancelled, false},
		{"in-progress to no-show", models.BookingStatusInProgress, models.BookingStatusNoShow, true},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusInProgress, true},
		{"cancelled is terminal", models.BookingStatusCancelled, models.BookingStatusConfirmed, true},
		{"no-show is terminal", models.BookingStatusNoShow, models.BookingStatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBookingTransition(%q, %q) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
			if err != nil && !IsInvalidTransition(err) {
				t.Errorf("expected an InvalidTransitionError, got %T", err)
			}
		})
	}
}

func TestInvalidTransitionErrorNamesStates(t *testing.T) {
	err := ValidateBookingTransition(models.BookingStatusPending, models.BookingStatusCompleted)
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "pending") || !strings.Contains(msg, "completed") {
		t.Errorf("error message should name both states, got %q", msg)
	}
}

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		discount int64
		want     int64
	}{
		{"no discount", 100000, 0, 100000},
		{"partial discount", 100000, 10000, 90000},
		{"full discount", 50000, 50000, 0},
		{"oversized discount clamps to zero", 50000, 80000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalAmount(tt.total, tt.discount); got != tt.want {
				t.Errorf("FinalAmount(%d, %d) = %d, want %d", tt.total, tt.discount, got, tt.want)
			}
		})
	}
}

func TestGenerateBookingNumber(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	number := GenerateBookingNumber("CONS", now)

	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		t.Fatalf("expected prefix-millis-suffix, got %q", number)
	}
	if parts[0] != "CONS" {
		t.Errorf("prefix = %q, want CONS", parts[0])
	}
	if parts[1] != "1768473000000" {
		t.Errorf("millis = %q, want 1768473000000", parts[1])
	}
	if len(parts[2]) != 6 {
		t.Errorf("suffix length = %d, want 6", len(parts[2]))
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune(bookingNumberAlphabet, r) {
			t.Errorf("suffix contains %q outside the allowed alphabet", r)
		}
	}
}

func TestGenerateBookingNumberVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateBookingNumber("CONS", now)] = true
	}
	// Same timestamp, so any variety comes from the random suffix.
	if len(seen) < 2 {
		t.Error("expected random suffixes to differ across calls")
	}
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name             string
		actorID          uint
		clientID         uint
		consultantUserID uint
		want             PartyRole
	}{
		{"client side", 10, 10, 20, PartyClient},
		{"consultant side", 20, 10, 20, PartyConsultant},
		{"third party", 30, 10, 20, PartyNone},
		{"unresolved consultant never matches", 0, 10, 0, PartyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRole(tt.actorID, tt.clientID, tt.consultantUserID); got != tt.want {
				t.Errorf("resolveRole(%d, %d, %d) = %q, want %q", tt.actorID, tt.clientID, tt.consultantUserID, got, tt.want)
			}
		})
	}
}

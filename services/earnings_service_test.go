package services

import (
	"testing"

	"consulting-platform-server/models"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		rate           int
		wantCommission int64
		wantNet        int64
	}{
		{"standard 20 percent", 90000, 20, 18000, 72000},
		{"zero rate", 90000, 0, 0, 90000},
		{"full rate", 90000, 100, 90000, 0},
		{"zero amount", 0, 20, 0, 0},
		{"remainder floors toward consultant", 99, 33, 32, 67},
		{"one halala", 1, 50, 0, 1},
		{"negative rate clamps to zero", 90000, -5, 0, 90000},
		{"rate above hundred clamps", 90000, 150, 90000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission, net := SplitAmount(tt.total, tt.rate)
			if commission != tt.wantCommission || net != tt.wantNet {
				t.Errorf("SplitAmount(%d, %d) = (%d, %d), want (%d, %d)",
					tt.total, tt.rate, commission, net, tt.wantCommission, tt.wantNet)
			}
			if commission+net != tt.total {
				t.Errorf("split must conserve the total: %d + %d != %d", commission, net, tt.total)
			}
		})
	}
}

func TestValidatePayoutTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.PayoutStatus
		to      models.PayoutStatus
		wantErr bool
	}{
		{"pending to processing", models.PayoutStatusPending, models.PayoutStatusProcessing, false},
		{"pending to cancelled", models.PayoutStatusPending, models.PayoutStatusCancelled, false},
		{"pending to paid skips processing", models.PayoutStatusPending, models.PayoutStatusPaid, true},
		{"processing to paid", models.PayoutStatusProcessing, models.PayoutStatusPaid, false},
		{"processing to cancelled", models.PayoutStatusProcessing, models.PayoutStatusCancelled, false},
		{"paid is terminal", models.PayoutStatusPaid, models.PayoutStatusPending, true},
		{"cancelled is terminal", models.PayoutStatusCancelled, models.PayoutStatusProcessing, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayoutTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePayoutTransition(%q, %q) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

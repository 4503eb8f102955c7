package models

import (
	"testing"
	"time"
)

func TestDiscountCodeIsUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		code DiscountCode
		want bool
	}{
		{"active with no limits", DiscountCode{IsActive: true}, true},
		{"inactive", DiscountCode{IsActive: false}, false},
		{"expired", DiscountCode{IsActive: true, ExpiresAt: &past}, false},
		{"not yet expired", DiscountCode{IsActive: true, ExpiresAt: &future}, true},
		{"uses exhausted", DiscountCode{IsActive: true, MaxUses: 5, UsedCount: 5}, false},
		{"uses remaining", DiscountCode{IsActive: true, MaxUses: 5, UsedCount: 4}, true},
		{"unlimited uses", DiscountCode{IsActive: true, MaxUses: 0, UsedCount: 999}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsUsable(now); got != tt.want {
				t.Errorf("IsUsable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscountCodeAmountFor(t *testing.T) {
	tests := []struct {
		name   string
		code   DiscountCode
		amount int64
		want   int64
	}{
		{"percentage", DiscountCode{DiscountType: "percentage", DiscountValue: 10}, 100000, 10000},
		{"percentage floors", DiscountCode{DiscountType: "percentage", DiscountValue: 33}, 99, 32},
		{"fixed", DiscountCode{DiscountType: "fixed", DiscountValue: 5000}, 100000, 5000},
		{"fixed larger than amount", DiscountCode{DiscountType: "fixed", DiscountValue: 200000}, 100000, 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.AmountFor(tt.amount); got != tt.want {
				t.Errorf("AmountFor(%d) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

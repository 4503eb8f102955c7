package services

import (
	"testing"
)

func TestCapDiscount(t *testing.T) {
	tests := []struct {
		name     string
		discount int64
		amount   int64
		want     int64
	}{
		{"zero discount", 0, 100000, 0},
		{"partial discount", 25000, 100000, 25000},
		{"discount equals amount", 100000, 100000, 100000},
		{"fixed code larger than total", 80000, 50000, 50000},
		{"negative discount clamps to zero", -5000, 100000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capDiscount(tt.discount, tt.amount)
			if got != tt.want {
				t.Errorf("capDiscount(%d, %d) = %d, want %d", tt.discount, tt.amount, got, tt.want)
			}
			if final := FinalAmount(tt.amount, got); final != tt.amount-got {
				t.Errorf("FinalAmount(%d, %d) = %d, want %d", tt.amount, got, final, tt.amount-got)
			}
		})
	}
}

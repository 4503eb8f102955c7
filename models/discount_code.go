package models

import (
	"time"
)

// DiscountCode is resolved once at booking creation. An invalid or expired
// code contributes a zero discount instead of failing the booking.
type DiscountCode struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:50;uniqueIndex;not null"`

	// Either a percentage of the amount or a fixed amount in halalas
	DiscountType  string `json:"discount_type" gorm:"type:varchar(20);not null;default:'percentage'"` // percentage, fixed
	DiscountValue int64  `json:"discount_value" gorm:"not null"`

	MaxUses   int        `json:"max_uses" gorm:"not null;default:0"` // 0 = unlimited
	UsedCount int        `json:"used_count" gorm:"not null;default:0"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  bool       `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the DiscountCode model
func (DiscountCode) TableName() string {
	return "discount_codes"
}

// IsUsable reports whether the code can still be applied.
func (d *DiscountCode) IsUsable(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	if d.MaxUses > 0 && d.UsedCount >= d.MaxUses {
		return false
	}
	return true
}

// AmountFor returns the discount in halalas for the given base amount.
func (d *DiscountCode) AmountFor(amount int64) int64 {
	if d.DiscountType == "fixed" {
		return d.DiscountValue
	}
	return amount * d.DiscountValue / 100
}

package models

import (
	"time"
)

// PayoutStatus represents the payout state of an earning
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusPaid       PayoutStatus = "paid"
	PayoutStatusCancelled  PayoutStatus = "cancelled"
)

// Earning is the ledger row produced exactly once per completed booking.
// The unique index on BookingID is what makes completion idempotent.
type Earning struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ConsultantID uint `json:"consultant_id" gorm:"not null;index"`
	BookingID    uint `json:"booking_id" gorm:"uniqueIndex;not null"`

	// Amounts in halalas; TotalAmount = PlatformCommission + ConsultantNet
	TotalAmount        int64 `json:"total_amount" gorm:"not null"`
	PlatformCommission int64 `json:"platform_commission" gorm:"not null"`
	ConsultantNet      int64 `json:"consultant_net" gorm:"not null"`
	CommissionRate     int   `json:"commission_rate" gorm:"not null"` // percent applied at completion

	PayoutStatus        PayoutStatus `json:"payout_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PayoutMethod        string       `json:"payout_method" gorm:"size:50"`
	PayoutTransactionID string       `json:"payout_transaction_id" gorm:"size:255"`
	PayoutDate          *time.Time   `json:"payout_date"`
	PayoutNotes         string       `json:"payout_notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Consultant Consultant `json:"consultant,omitempty" gorm:"foreignKey:ConsultantID"`
	Booking    Booking    `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Earning model
func (Earning) TableName() string {
	return "consultant_earnings"
}

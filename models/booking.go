package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingStatus represents the current status of a consultation booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no-show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking represents a single client-consultant engagement and its lifecycle
// record. Bookings are never deleted; cancellation and no-show are terminal
// statuses.
type Booking struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	BookingNumber string `json:"booking_number" gorm:"size:50;uniqueIndex;not null"`

	// Parties
	ClientID           uint `json:"client_id" gorm:"not null;index"`
	ConsultantID       uint `json:"consultant_id" gorm:"not null;index"`
	ConsultationTypeID uint `json:"consultation_type_id" gorm:"not null"`

	// Schedule
	ScheduledDate time.Time `json:"scheduled_date" gorm:"not null"`
	ScheduledTime string    `json:"scheduled_time" gorm:"size:10;not null"` // "14:00"
	Duration      int       `json:"duration" gorm:"not null;default:60"`    // minutes
	SLADeadline   time.Time `json:"sla_deadline" gorm:"not null;index"`

	// Consultation details
	ClientNotes     string `json:"client_notes" gorm:"type:text"`
	ConsultantNotes string `json:"consultant_notes" gorm:"type:text"` // private to the consultant
	Attachments     string `json:"attachments" gorm:"type:text"`      // JSON array of URLs

	// Status
	Status             BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CancellationReason string        `json:"cancellation_reason" gorm:"type:text"`
	CancelledBy        *uint         `json:"cancelled_by"`
	CancelledAt        *time.Time    `json:"cancelled_at"`

	// Financials (halalas)
	TotalAmount    int64 `json:"total_amount" gorm:"not null"`
	DiscountAmount int64 `json:"discount_amount" gorm:"not null;default:0"`
	FinalAmount    int64 `json:"final_amount" gorm:"not null"`
	DiscountCodeID *uint `json:"discount_code_id"`

	// Payment
	PaymentStatus        PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod        string        `json:"payment_method" gorm:"size:50"`
	PaymentTransactionID string        `json:"payment_transaction_id" gorm:"size:255"`
	PaidAt               *time.Time    `json:"paid_at"`

	// Client rating snapshot (the full review lives in reviews)
	Rating     *int       `json:"rating"`
	Review     string     `json:"review" gorm:"type:text"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	// Milestones
	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Client           User             `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Consultant       Consultant       `json:"consultant,omitempty" gorm:"foreignKey:ConsultantID"`
	ConsultationType ConsultationType `json:"consultation_type,omitempty" gorm:"foreignKey:ConsultationTypeID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "consultation_bookings"
}

// BookingCreate represents the request structure for creating a booking
type BookingCreate struct {
	ConsultantID       uint     `json:"consultant_id" binding:"required"`
	ConsultationTypeID uint     `json:"consultation_type_id" binding:"required"`
	ScheduledDate      string   `json:"scheduled_date" binding:"required"` // "2026-01-15"
	ScheduledTime      string   `json:"scheduled_time" binding:"required"` // "14:00"
	ClientNotes        string   `json:"client_notes"`
	Attachments        []string `json:"attachments"`
	DiscountCode       string   `json:"discount_code"`
}

// BookingTransition represents the request structure for a status change
type BookingTransition struct {
	Status BookingStatus `json:"status" binding:"required"`
	Reason string        `json:"reason"`
}

package models

import (
	"time"
)

// SenderRole identifies which party of a booking sent a message
type SenderRole string

const (
	SenderRoleClient     SenderRole = "client"
	SenderRoleConsultant SenderRole = "consultant"
)

// Message is a single entry in a booking's conversation thread. Messages are
// append-only; only the read flag and timestamp may change after creation.
type Message struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	BookingID uint `json:"booking_id" gorm:"not null;index:idx_booking_created"`

	SenderID   uint       `json:"sender_id" gorm:"not null"`
	SenderRole SenderRole `json:"sender_role" gorm:"type:varchar(20);not null"`

	Body        string `json:"body" gorm:"type:text;not null"`
	Attachments string `json:"attachments" gorm:"type:text"` // JSON array of URLs

	IsRead bool       `json:"is_read" gorm:"not null;default:false"`
	ReadAt *time.Time `json:"read_at"`

	// AI assistance audit: the original draft is kept verbatim even when the
	// consultant edits it before sending.
	IsAIAssisted bool   `json:"is_ai_assisted" gorm:"not null;default:false"`
	AISuggestion string `json:"ai_suggestion" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_booking_created"`

	// Relationships
	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "consultation_messages"
}

// MessageCreate represents the request structure for posting a message
type MessageCreate struct {
	Body         string   `json:"body" binding:"required"`
	Attachments  []string `json:"attachments"`
	IsAIAssisted bool     `json:"is_ai_assisted"`
	AISuggestion string   `json:"ai_suggestion"`
}

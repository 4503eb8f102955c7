package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Title  string `json:"title" gorm:"not null"`
	Body   string `json:"body" gorm:"not null"`
	Type   string `json:"type" gorm:"not null"`  // booking_created, booking_confirmed, booking_started, booking_completed, booking_cancelled, booking_no_show, new_message, review_received, payout_update, system
	Data   string `json:"data" gorm:"type:text"` // JSON payload
	Read   bool   `json:"read" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

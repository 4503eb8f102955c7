package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a client's rating of a completed booking. At most one per booking,
// enforced by the unique index on BookingID.
type Review struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	ConsultantID uint `json:"consultant_id" gorm:"not null;index"`
	BookingID    uint `json:"booking_id" gorm:"uniqueIndex;not null"`
	ClientID     uint `json:"client_id" gorm:"not null"`

	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string `json:"comment" gorm:"type:text"`

	// Optional sub-ratings
	ProfessionalismRating *int `json:"professionalism_rating" gorm:"check:professionalism_rating >= 1 AND professionalism_rating <= 5"`
	CommunicationRating   *int `json:"communication_rating" gorm:"check:communication_rating >= 1 AND communication_rating <= 5"`
	KnowledgeRating       *int `json:"knowledge_rating" gorm:"check:knowledge_rating >= 1 AND knowledge_rating <= 5"`
	TimelinessRating      *int `json:"timeliness_rating" gorm:"check:timeliness_rating >= 1 AND timeliness_rating <= 5"`

	IsPublished bool `json:"is_published" gorm:"not null;default:true"`

	// Consultant reply
	ConsultantResponse string     `json:"consultant_response" gorm:"type:text"`
	RespondedAt        *time.Time `json:"responded_at"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Consultant Consultant `json:"consultant,omitempty" gorm:"foreignKey:ConsultantID"`
	Booking    Booking    `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Client     User       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "consultant_reviews"
}

// ReviewCreate represents the request structure for submitting a review
type ReviewCreate struct {
	Rating                int    `json:"rating" binding:"required,min=1,max=5"`
	Comment               string `json:"comment"`
	ProfessionalismRating *int   `json:"professionalism_rating" binding:"omitempty,min=1,max=5"`
	CommunicationRating   *int   `json:"communication_rating" binding:"omitempty,min=1,max=5"`
	KnowledgeRating       *int   `json:"knowledge_rating" binding:"omitempty,min=1,max=5"`
	TimelinessRating      *int   `json:"timeliness_rating" binding:"omitempty,min=1,max=5"`
}

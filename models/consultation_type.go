package models

import (
	"time"
)

// ConsultationType is a catalog entry describing a bookable consultation.
// Bookings copy the base price at creation time; catalog edits never touch
// existing bookings.
type ConsultationType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:50;uniqueIndex;not null"`

	NameAr        string `json:"name_ar" gorm:"size:255;not null"`
	NameEn        string `json:"name_en" gorm:"size:255;not null"`
	DescriptionAr string `json:"description_ar" gorm:"type:text"`
	DescriptionEn string `json:"description_en" gorm:"type:text"`

	// Pricing (halalas) and expected effort
	BasePriceSAR      int64 `json:"base_price_sar" gorm:"not null"`
	EstimatedDuration int   `json:"estimated_duration" gorm:"not null;default:60"` // minutes
	SLAHours          int   `json:"sla_hours" gorm:"not null;default:24"`

	// Related specialization codes, JSON array
	RelatedSpecializations string `json:"related_specializations" gorm:"type:text"`

	// Presentation
	Icon     string `json:"icon" gorm:"size:100"`
	ImageURL string `json:"image_url" gorm:"size:500"`
	Color    string `json:"color" gorm:"size:20"`
	Features string `json:"features" gorm:"type:text"` // JSON array

	// Client-side checklists, JSON arrays of {name_ar, name_en, type, required}
	RequiredDocuments string `json:"required_documents" gorm:"type:text"`
	RequiredInfo      string `json:"required_info" gorm:"type:text"`

	IsActive   bool `json:"is_active" gorm:"not null;default:true"`
	OrderIndex int  `json:"order_index" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the ConsultationType model
func (ConsultationType) TableName() string {
	return "consultation_types"
}

package models

import (
	"time"
)

// Specialization is a catalog entry consultants attach themselves to.
type Specialization struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:50;uniqueIndex;not null"`

	NameAr        string `json:"name_ar" gorm:"size:255;not null"`
	NameEn        string `json:"name_en" gorm:"size:255;not null"`
	DescriptionAr string `json:"description_ar" gorm:"type:text"`
	DescriptionEn string `json:"description_en" gorm:"type:text"`

	Icon     string `json:"icon" gorm:"size:100"`
	ImageURL string `json:"image_url" gorm:"size:500"`
	Color    string `json:"color" gorm:"size:20"`

	IsActive   bool `json:"is_active" gorm:"not null;default:true"`
	OrderIndex int  `json:"order_index" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Specialization model
func (Specialization) TableName() string {
	return "specializations"
}

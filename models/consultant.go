package models

import (
	"time"

	"gorm.io/gorm"
)

// ConsultantStatus represents the approval state of a consultant profile
type ConsultantStatus string

const (
	ConsultantStatusPending   ConsultantStatus = "pending"
	ConsultantStatusApproved  ConsultantStatus = "approved"
	ConsultantStatusRejected  ConsultantStatus = "rejected"
	ConsultantStatusSuspended ConsultantStatus = "suspended"
)

// Consultant represents an approved (or applying) professional profile.
// One row per user; created by self-registration, status driven by admins.
type Consultant struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	// Personal information
	FullNameAr     string  `json:"full_name_ar" gorm:"size:255;not null"`
	FullNameEn     string  `json:"full_name_en" gorm:"size:255;not null"`
	Email          string  `json:"email" gorm:"size:320;not null"`
	Phone          string  `json:"phone" gorm:"size:20;not null"`
	City           string  `json:"city" gorm:"size:100"`
	ProfilePicture *string `json:"profile_picture" gorm:"size:500"`

	// Professional information
	MainSpecialization string `json:"main_specialization" gorm:"size:100;not null"`
	SubSpecializations string `json:"sub_specializations" gorm:"type:text"` // JSON array
	YearsOfExperience  int    `json:"years_of_experience" gorm:"not null"`
	Qualifications     string `json:"qualifications" gorm:"type:text"` // JSON array
	Certifications     string `json:"certifications" gorm:"type:text"` // JSON array
	BioAr              string `json:"bio_ar" gorm:"type:text"`
	BioEn              string `json:"bio_en" gorm:"type:text"`

	// Payout details
	IBANNumber        string `json:"iban_number" gorm:"size:34"`
	BankName          string `json:"bank_name" gorm:"size:100"`
	AccountHolderName string `json:"account_holder_name" gorm:"size:255"`
	CommissionRate    int    `json:"commission_rate" gorm:"not null;default:20"` // percent

	// Approval workflow
	Status          ConsultantStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string           `json:"rejection_reason" gorm:"type:text"`
	ApprovedAt      *time.Time       `json:"approved_at"`
	ApprovedBy      *uint            `json:"approved_by"` // userId of admin

	// Running aggregates
	TotalConsultations     int     `json:"total_consultations" gorm:"not null;default:0"`
	CompletedConsultations int     `json:"completed_consultations" gorm:"not null;default:0"`
	AverageRating          float64 `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews           int     `json:"total_reviews" gorm:"not null;default:0"`
	TotalEarnings          int64   `json:"total_earnings" gorm:"not null;default:0"` // halalas

	// Availability
	IsAvailable      bool `json:"is_available" gorm:"not null;default:true"`
	MaxDailyBookings int  `json:"max_daily_bookings" gorm:"not null;default:5"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Consultant model
func (Consultant) TableName() string {
	return "consultants"
}

// IsApproved reports whether the consultant can take bookings.
func (c *Consultant) IsApproved() bool {
	return c.Status == ConsultantStatusApproved
}

// ConsultantDocument stores a vetting document reference (CV, license...).
type ConsultantDocument struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ConsultantID uint   `json:"consultant_id" gorm:"not null;index"`
	DocumentType string `json:"document_type" gorm:"type:varchar(20);not null"` // cv, certificate, id, license, other
	DocumentName string `json:"document_name" gorm:"size:255;not null"`
	DocumentURL  string `json:"document_url" gorm:"size:500;not null"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type" gorm:"size:100"`

	VerificationStatus string     `json:"verification_status" gorm:"type:varchar(20);not null;default:'pending'"` // pending, verified, rejected
	VerificationNotes  string     `json:"verification_notes" gorm:"type:text"`
	VerifiedBy         *uint      `json:"verified_by"`
	VerifiedAt         *time.Time `json:"verified_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Consultant Consultant `json:"consultant,omitempty" gorm:"foreignKey:ConsultantID"`
}

// TableName specifies the table name for the ConsultantDocument model
func (ConsultantDocument) TableName() string {
	return "consultant_documents"
}

// ConsultantRegister represents the request structure for consultant self-registration
type ConsultantRegister struct {
	FullNameAr         string   `json:"full_name_ar" binding:"required"`
	FullNameEn         string   `json:"full_name_en" binding:"required"`
	Phone              string   `json:"phone" binding:"required"`
	City               string   `json:"city"`
	MainSpecialization string   `json:"main_specialization" binding:"required"`
	SubSpecializations []string `json:"sub_specializations"`
	YearsOfExperience  int      `json:"years_of_experience" binding:"required,min=0"`
	Qualifications     []string `json:"qualifications"`
	Certifications     []string `json:"certifications"`
	BioAr              string   `json:"bio_ar"`
	BioEn              string   `json:"bio_en"`
	IBANNumber         string   `json:"iban_number"`
	BankName           string   `json:"bank_name"`
	AccountHolderName  string   `json:"account_holder_name"`
}

// ConsultantResponse represents the public response structure for consultant data
type ConsultantResponse struct {
	ID                     uint             `json:"id"`
	FullNameAr             string           `json:"full_name_ar"`
	FullNameEn             string           `json:"full_name_en"`
	City                   string           `json:"city"`
	ProfilePicture         *string          `json:"profile_picture"`
	MainSpecialization     string           `json:"main_specialization"`
	YearsOfExperience      int              `json:"years_of_experience"`
	BioAr                  string           `json:"bio_ar"`
	BioEn                  string           `json:"bio_en"`
	Status                 ConsultantStatus `json:"status"`
	TotalConsultations     int              `json:"total_consultations"`
	CompletedConsultations int              `json:"completed_consultations"`
	AverageRating          float64          `json:"average_rating"`
	TotalReviews           int              `json:"total_reviews"`
	IsAvailable            bool             `json:"is_available"`
}

// ToResponse converts a consultant to its public representation.
func (c *Consultant) ToResponse() ConsultantResponse {
	return ConsultantResponse{
		ID:                     c.ID,
		FullNameAr:             c.FullNameAr,
		FullNameEn:             c.FullNameEn,
		City:                   c.City,
		ProfilePicture:         c.ProfilePicture,
		MainSpecialization:     c.MainSpecialization,
		YearsOfExperience:      c.YearsOfExperience,
		BioAr:                  c.BioAr,
		BioEn:                  c.BioEn,
		Status:                 c.Status,
		TotalConsultations:     c.TotalConsultations,
		CompletedConsultations: c.CompletedConsultations,
		AverageRating:          c.AverageRating,
		TotalReviews:           c.TotalReviews,
		IsAvailable:            c.IsAvailable,
	}
}

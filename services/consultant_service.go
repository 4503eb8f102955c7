package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/models"
)

// consultantTransitions is the approval workflow. Rejected profiles are not
// listed here because re-application is handled by Register, not by a status
// operation.
var consultantTransitions = map[models.ConsultantStatus][]models.ConsultantStatus{
	models.ConsultantStatusPending:  {models.ConsultantStatusApproved, models.ConsultantStatusRejected},
	models.ConsultantStatusApproved: {models.ConsultantStatusSuspended},
}

// ValidateConsultantTransition checks an approval workflow change.
func ValidateConsultantTransition(from, to models.ConsultantStatus) error {
	for _, allowed := range consultantTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{Entity: "consultant", From: string(from), To: string(to)}
}

// ConsultantService manages the consultant directory and approval workflow.
type ConsultantService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewConsultantService creates a new consultant service
func NewConsultantService() *ConsultantService {
	return &ConsultantService{
		db:       database.DB,
		notifier: NewNotificationService(),
	}
}

// Register creates a pending consultant profile for a user. A previously
// rejected applicant may apply again, which resets the row to pending and
// clears the old rejection reason. Approved or suspended profiles cannot
// re-register.
func (s *ConsultantService) Register(userID uint, req models.ConsultantRegister) (*models.Consultant, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	subSpecs, _ := json.Marshal(req.SubSpecializations)
	quals, _ := json.Marshal(req.Qualifications)
	certs, _ := json.Marshal(req.Certifications)

	var existing models.Consultant
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		if existing.Status != models.ConsultantStatusRejected {
			return nil, ErrAlreadyApplied
		}
		// Re-application: back to the review queue with the new details.
		updates := map[string]interface{}{
			"status":              models.ConsultantStatusPending,
			"rejection_reason":    "",
			"full_name_ar":        req.FullNameAr,
			"full_name_en":        req.FullNameEn,
			"phone":               req.Phone,
			"city":                req.City,
			"main_specialization": req.MainSpecialization,
			"sub_specializations": string(subSpecs),
			"years_of_experience": req.YearsOfExperience,
			"qualifications":      string(quals),
			"certifications":      string(certs),
			"bio_ar":              req.BioAr,
			"bio_en":              req.BioEn,
			"iban_number":         req.IBANNumber,
			"bank_name":           req.BankName,
			"account_holder_name": req.AccountHolderName,
		}
		if err := s.db.Model(&models.Consultant{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.db.First(&existing, existing.ID).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	consultant := models.Consultant{
		UserID:             userID,
		FullNameAr:         req.FullNameAr,
		FullNameEn:         req.FullNameEn,
		Email:              user.Email,
		Phone:              req.Phone,
		City:               req.City,
		MainSpecialization: req.MainSpecialization,
		SubSpecializations: string(subSpecs),
		YearsOfExperience:  req.YearsOfExperience,
		Qualifications:     string(quals),
		Certifications:     string(certs),
		BioAr:              req.BioAr,
		BioEn:              req.BioEn,
		IBANNumber:         req.IBANNumber,
		BankName:           req.BankName,
		AccountHolderName:  req.AccountHolderName,
		CommissionRate:     config.AppConfig.Platform.DefaultCommissionRate,
		Status:             models.ConsultantStatusPending,
		IsAvailable:        true,
		MaxDailyBookings:   config.AppConfig.Platform.DefaultDailyBookings,
	}

	if err := s.db.Create(&consultant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	return &consultant, nil
}

// Approve moves a pending consultant into the directory. An optional
// commission override replaces the platform default.
func (s *ConsultantService) Approve(consultantID, adminID uint, commissionRate *int) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := s.db.First(&consultant, consultantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := ValidateConsultantTransition(consultant.Status, models.ConsultantStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.ConsultantStatusApproved,
		"approved_at": now,
		"approved_by": adminID,
	}
	if commissionRate != nil {
		updates["commission_rate"] = *commissionRate
	}
	if err := s.db.Model(&models.Consultant{}).Where("id = ?", consultant.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	// The owning account becomes a consultant account.
	if err := s.db.Model(&models.User{}).Where("id = ?", consultant.UserID).
		Update("role", models.RoleConsultant).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&consultant, consultant.ID).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(consultant.UserID, "system",
		"تمت الموافقة على طلبك",
		"Your consultant application has been approved",
		map[string]interface{}{"consultant_id": consultant.ID})

	return &consultant, nil
}

// Reject declines a pending application. A non-empty reason is required and
// kept on the row for the applicant.
func (s *ConsultantService) Reject(consultantID, adminID uint, reason string) (*models.Consultant, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	var consultant models.Consultant
	if err := s.db.First(&consultant, consultantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := ValidateConsultantTransition(consultant.Status, models.ConsultantStatusRejected); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Consultant{}).Where("id = ?", consultant.ID).
		Updates(map[string]interface{}{
			"status":           models.ConsultantStatusRejected,
			"rejection_reason": reason,
		}).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&consultant, consultant.ID).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(consultant.UserID, "system",
		"تم رفض طلبك",
		"Your consultant application was not approved",
		map[string]interface{}{"consultant_id": consultant.ID, "reason": reason})

	return &consultant, nil
}

// Suspend removes an approved consultant from the directory. Suspension has
// no self-service exit.
func (s *ConsultantService) Suspend(consultantID uint) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := s.db.First(&consultant, consultantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := ValidateConsultantTransition(consultant.Status, models.ConsultantStatusSuspended); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Consultant{}).Where("id = ?", consultant.ID).
		Update("status", models.ConsultantStatusSuspended).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&consultant, consultant.ID).Error; err != nil {
		return nil, err
	}
	return &consultant, nil
}

// GetByUserID loads the consultant profile owned by a user.
func (s *ConsultantService) GetByUserID(userID uint) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := s.db.Where("user_id = ?", userID).First(&consultant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &consultant, nil
}

// SetAvailability toggles whether the consultant takes new bookings.
func (s *ConsultantService) SetAvailability(userID uint, available bool) error {
	result := s.db.Model(&models.Consultant{}).
		Where("user_id = ? AND status = ?", userID, models.ConsultantStatusApproved).
		Update("is_available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListApproved returns the public directory of approved, available
// consultants.
func (s *ConsultantService) ListApproved(specialization string) ([]models.Consultant, error) {
	query := s.db.Where("status = ?", models.ConsultantStatusApproved)
	if specialization != "" {
		query = query.Where("main_specialization = ?", specialization)
	}

	var consultants []models.Consultant
	err := query.Order("average_rating DESC, completed_consultations DESC").Find(&consultants).Error
	return consultants, err
}

// ListPending returns the admin review queue, oldest application first.
func (s *ConsultantService) ListPending() ([]models.Consultant, error) {
	var consultants []models.Consultant
	err := s.db.
		Preload("User").
		Where("status = ?", models.ConsultantStatusPending).
		Order("created_at ASC").
		Find(&consultants).Error
	return consultants, err
}

// AddDocument attaches a vetting document to the caller's profile.
func (s *ConsultantService) AddDocument(userID uint, docType, name, url, mimeType string, size int64) (*models.ConsultantDocument, error) {
	consultant, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	doc := models.ConsultantDocument{
		ConsultantID:       consultant.ID,
		DocumentType:       docType,
		DocumentName:       name,
		DocumentURL:        url,
		MimeType:           mimeType,
		FileSize:           size,
		VerificationStatus: "pending",
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

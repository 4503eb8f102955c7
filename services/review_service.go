package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"consulting-platform-server/database"
	"consulting-platform-server/models"
)

// ReviewService records client reviews and keeps the consultant aggregates in
// sync.
type ReviewService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewReviewService creates a new review service
func NewReviewService() *ReviewService {
	return &ReviewService{
		db:       database.DB,
		notifier: NewNotificationService(),
	}
}

// Submit records a review for a completed booking. One review per booking;
// the unique index on booking_id backs up the pre-check.
func (s *ReviewService) Submit(bookingID, clientID uint, req models.ReviewCreate) (*models.Review, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if booking.ClientID != clientID {
		return nil, ErrUnauthorized
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, ErrNotCompleted
	}

	var existing models.Review
	if err := s.db.Where("booking_id = ?", bookingID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		ConsultantID:          booking.ConsultantID,
		BookingID:             booking.ID,
		ClientID:              clientID,
		Rating:                req.Rating,
		Comment:               req.Comment,
		ProfessionalismRating: req.ProfessionalismRating,
		CommunicationRating:   req.CommunicationRating,
		KnowledgeRating:       req.KnowledgeRating,
		TimelinessRating:      req.TimelinessRating,
		IsPublished:           true,
	}

	// The review row, the booking snapshot and the consultant aggregates
	// commit together; a partial write would leave the rating out of sync
	// with the ledger.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyReviewed
			}
			return err
		}

		// Snapshot onto the booking so list views avoid a join.
		now := time.Now()
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"rating":      req.Rating,
				"review":      req.Comment,
				"reviewed_at": now,
			}).Error; err != nil {
			return err
		}

		return s.recomputeConsultantRating(tx, booking.ConsultantID)
	})
	if err != nil {
		return nil, err
	}

	var consultant models.Consultant
	if err := s.db.Select("user_id").First(&consultant, booking.ConsultantID).Error; err == nil {
		s.notifier.Notify(consultant.UserID, "review_received",
			"تقييم جديد",
			"A client left a review on your consultation",
			map[string]interface{}{"booking_id": booking.ID, "rating": req.Rating})
	}

	return &review, nil
}

// recomputeConsultantRating recalculates the average from scratch. A full
// recompute cannot drift the way an incremental running average can.
func (s *ReviewService) recomputeConsultantRating(tx *gorm.DB, consultantID uint) error {
	type aggregate struct {
		Avg   float64
		Count int
	}
	var agg aggregate
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("consultant_id = ?", consultantID).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Model(&models.Consultant{}).Where("id = ?", consultantID).
		UpdateColumns(map[string]interface{}{
			"average_rating": agg.Avg,
			"total_reviews":  agg.Count,
		}).Error
}

// Respond stores the consultant's public reply to a review.
func (s *ReviewService) Respond(reviewID, consultantUserID uint, response string) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var consultant models.Consultant
	if err := s.db.First(&consultant, review.ConsultantID).Error; err != nil {
		return nil, err
	}
	if consultant.UserID != consultantUserID {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	if err := s.db.Model(&models.Review{}).Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"consultant_response": response,
			"responded_at":        now,
		}).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&review, review.ID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListForConsultant returns a consultant's published reviews, newest first.
func (s *ReviewService) ListForConsultant(consultantID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Preload("Client").
		Where("consultant_id = ? AND is_published = ?", consultantID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

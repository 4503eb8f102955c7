package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"
)

// payoutTransitions mirrors the booking table for the earning payout states.
var payoutTransitions = map[models.PayoutStatus][]models.PayoutStatus{
	models.PayoutStatusPending:    {models.PayoutStatusProcessing, models.PayoutStatusCancelled},
	models.PayoutStatusProcessing: {models.PayoutStatusPaid, models.PayoutStatusCancelled},
}

// ValidatePayoutTransition checks a payout status change.
func ValidatePayoutTransition(from, to models.PayoutStatus) error {
	for _, allowed := range payoutTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{Entity: "payout", From: string(from), To: string(to)}
}

// SplitAmount divides a paid amount into platform commission and consultant
// net. The commission floors, so rounding remainders always go to the
// consultant, never the platform.
func SplitAmount(total int64, ratePercent int) (commission, net int64) {
	if ratePercent < 0 {
		ratePercent = 0
	}
	if ratePercent > 100 {
		ratePercent = 100
	}
	commission = total * int64(ratePercent) / 100
	return commission, total - commission
}

// EarningsService maintains the per-booking earnings ledger and the
// consultant aggregates derived from it.
type EarningsService struct {
	db *gorm.DB
}

// NewEarningsService creates a new earnings service
func NewEarningsService() *EarningsService {
	return &EarningsService{db: database.DB}
}

// GetByBookingID returns the earning for a booking.
func (s *EarningsService) GetByBookingID(bookingID uint) (*models.Earning, error) {
	var earning models.Earning
	if err := s.db.Where("booking_id = ?", bookingID).First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &earning, nil
}

// RecordCompletion writes the earning for a just-completed booking inside the
// caller's transaction. The commission rate is read from the consultant's
// current rate and frozen onto the row. Safe under concurrent completion: the
// insert runs under a savepoint, so when the unique index on booking_id
// rejects a second writer we roll back to the savepoint (Postgres aborts the
// transaction on the failed statement otherwise) and fetch the first writer's
// row instead.
func (s *EarningsService) RecordCompletion(tx *gorm.DB, booking *models.Booking) (*models.Earning, error) {
	var consultant models.Consultant
	if err := tx.First(&consultant, booking.ConsultantID).Error; err != nil {
		return nil, err
	}

	commission, net := SplitAmount(booking.FinalAmount, consultant.CommissionRate)
	earning := models.Earning{
		ConsultantID:       booking.ConsultantID,
		BookingID:          booking.ID,
		TotalAmount:        booking.FinalAmount,
		PlatformCommission: commission,
		ConsultantNet:      net,
		CommissionRate:     consultant.CommissionRate,
		PayoutStatus:       models.PayoutStatusPending,
	}

	if err := tx.SavePoint("earning_insert").Error; err != nil {
		return nil, err
	}
	if err := tx.Create(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if rerr := tx.RollbackTo("earning_insert").Error; rerr != nil {
				return nil, rerr
			}
			var existing models.Earning
			if ferr := tx.Where("booking_id = ?", booking.ID).First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			return &existing, nil
		}
		return nil, err
	}

	if err := tx.Model(&models.Consultant{}).Where("id = ?", booking.ConsultantID).
		UpdateColumns(map[string]interface{}{
			"completed_consultations": gorm.Expr("completed_consultations + 1"),
			"total_earnings":          gorm.Expr("total_earnings + ?", net),
		}).Error; err != nil {
		return nil, err
	}

	return &earning, nil
}

// UpdatePayoutStatus moves an earning along the payout lifecycle. Method and
// transaction reference are recorded when the payout lands.
func (s *EarningsService) UpdatePayoutStatus(earningID uint, newStatus models.PayoutStatus, method, transactionID, notes string) (*models.Earning, error) {
	var earning models.Earning
	if err := s.db.First(&earning, earningID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := ValidatePayoutTransition(earning.PayoutStatus, newStatus); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"payout_status": newStatus}
	if notes != "" {
		updates["payout_notes"] = notes
	}
	if newStatus == models.PayoutStatusPaid {
		now := time.Now()
		updates["payout_method"] = method
		updates["payout_transaction_id"] = transactionID
		updates["payout_date"] = now
	}

	if err := s.db.Model(&models.Earning{}).Where("id = ?", earning.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&earning, earning.ID).Error; err != nil {
		return nil, err
	}

	if newStatus == models.PayoutStatusPaid {
		var consultant models.Consultant
		if err := s.db.First(&consultant, earning.ConsultantID).Error; err == nil {
			NewNotificationService().Notify(consultant.UserID, "payout_update",
				"تم تحويل أرباحك",
				"Your consultation earnings have been paid out",
				map[string]interface{}{"earning_id": earning.ID, "amount": earning.ConsultantNet})
		} else {
			utils.GetLogger().Warn("payout notification skipped", zap.Uint("earning_id", earning.ID), zap.Error(err))
		}
	}

	return &earning, nil
}

// ListByPayoutStatus returns the payout queue for admins, oldest first.
func (s *EarningsService) ListByPayoutStatus(status models.PayoutStatus) ([]models.Earning, error) {
	var earnings []models.Earning
	err := s.db.
		Preload("Consultant").
		Preload("Booking").
		Where("payout_status = ?", status).
		Order("created_at ASC").
		Find(&earnings).Error
	return earnings, err
}

// ListForConsultant returns a consultant's earnings, newest first.
func (s *EarningsService) ListForConsultant(consultantID uint) ([]models.Earning, error) {
	var earnings []models.Earning
	err := s.db.
		Preload("Booking").
		Where("consultant_id = ?", consultantID).
		Order("created_at DESC").
		Find(&earnings).Error
	return earnings, err
}

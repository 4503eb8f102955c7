package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"
)

// PartyRole is the capability a user holds on a booking.
type PartyRole string

const (
	PartyClient     PartyRole = "client"
	PartyConsultant PartyRole = "consultant"
	PartyNone       PartyRole = "none"
)

// bookingTransitions is the full state machine. Anything absent is rejected.
var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:    {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed:  {models.BookingStatusInProgress, models.BookingStatusCancelled, models.BookingStatusNoShow},
	models.BookingStatusInProgress: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

// ValidateBookingTransition checks a requested status change against the
// transition table.
func ValidateBookingTransition(from, to models.BookingStatus) error {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{Entity: "booking", From: string(from), To: string(to)}
}

// FinalAmount computes the charged amount, clamped at zero so an oversized
// discount can never produce a negative charge.
func FinalAmount(total, discount int64) int64 {
	final := total - discount
	if final < 0 {
		return 0
	}
	return final
}

const bookingNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingNumber produces a candidate booking number, e.g.
// CONS-1735688312000-X4K9QX. Uniqueness is enforced by the database; callers
// retry on collision.
func GenerateBookingNumber(prefix string, now time.Time) string {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(bookingNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing is unrecoverable for anything else too
			panic(err)
		}
		suffix[i] = bookingNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), string(suffix))
}

// resolveRole decides which side of a booking an actor is on, given the
// already-resolved consultant owner. Zero consultantUserID means the
// consultant row could not be resolved.
func resolveRole(actorID, clientID, consultantUserID uint) PartyRole {
	switch {
	case actorID == clientID:
		return PartyClient
	case consultantUserID != 0 && actorID == consultantUserID:
		return PartyConsultant
	default:
		return PartyNone
	}
}

// BookingService drives the consultation booking lifecycle.
type BookingService struct {
	db       *gorm.DB
	earnings *EarningsService
	notifier *NotificationService
}

// NewBookingService creates a new booking service
func NewBookingService() *BookingService {
	return &BookingService{
		db:       database.DB,
		earnings: NewEarningsService(),
		notifier: NewNotificationService(),
	}
}

// RoleOf resolves the actor's capability on a booking. Every authorization
// check in the lifecycle goes through here.
func (s *BookingService) RoleOf(actorID uint, booking *models.Booking) PartyRole {
	var consultant models.Consultant
	consultantUserID := uint(0)
	if err := s.db.Select("user_id").First(&consultant, booking.ConsultantID).Error; err == nil {
		consultantUserID = consultant.UserID
	}
	return resolveRole(actorID, booking.ClientID, consultantUserID)
}

// GetBooking loads a booking with its relationships.
func (s *BookingService) GetBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.
		Preload("Client").
		Preload("Consultant").
		Preload("ConsultationType").
		First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// CreateBooking creates a pending booking for a client against an approved
// consultant. The consultation type's price is copied onto the booking so
// later catalog edits cannot rewrite history.
func (s *BookingService) CreateBooking(clientID uint, req models.BookingCreate) (*models.Booking, error) {
	var ctype models.ConsultationType
	if err := s.db.Where("is_active = ?", true).First(&ctype, req.ConsultationTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var consultant models.Consultant
	if err := s.db.First(&consultant, req.ConsultantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Approval is checked at creation time only, per the lifecycle contract.
	if !consultant.IsApproved() || !consultant.IsAvailable {
		return nil, ErrConsultantUnavailable
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_date: %w", err)
	}

	// Daily cap counts live bookings on the requested day.
	var sameDay int64
	if err := s.db.Model(&models.Booking{}).
		Where("consultant_id = ? AND scheduled_date = ? AND status NOT IN ?",
			consultant.ID, scheduledDate,
			[]models.BookingStatus{models.BookingStatusCancelled, models.BookingStatusNoShow}).
		Count(&sameDay).Error; err != nil {
		return nil, err
	}
	if consultant.MaxDailyBookings > 0 && sameDay >= int64(consultant.MaxDailyBookings) {
		return nil, ErrConsultantUnavailable
	}

	totalAmount := ctype.BasePriceSAR
	discountAmount, discountCodeID := NewDiscountService().Resolve(req.DiscountCode, totalAmount)

	slaHours := ctype.SLAHours
	if slaHours <= 0 {
		slaHours = config.AppConfig.Platform.DefaultSLAHours
	}

	attachments := ""
	if len(req.Attachments) > 0 {
		if raw, err := json.Marshal(req.Attachments); err == nil {
			attachments = string(raw)
		}
	}

	now := time.Now()
	booking := models.Booking{
		ClientID:           clientID,
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ctype.ID,
		ScheduledDate:      scheduledDate,
		ScheduledTime:      req.ScheduledTime,
		Duration:           ctype.EstimatedDuration,
		SLADeadline:        now.Add(time.Duration(slaHours) * time.Hour),
		ClientNotes:        req.ClientNotes,
		Attachments:        attachments,
		Status:             models.BookingStatusPending,
		TotalAmount:        totalAmount,
		DiscountAmount:     discountAmount,
		FinalAmount:        FinalAmount(totalAmount, discountAmount),
		DiscountCodeID:     discountCodeID,
		PaymentStatus:      models.PaymentStatusPending,
	}

	// The booking number is unique by index; regenerate and retry on
	// collision instead of hoping the suffix never repeats.
	const maxAttempts = 5
	created := false
	for attempt := 0; attempt < maxAttempts; attempt++ {
		booking.BookingNumber = GenerateBookingNumber(config.AppConfig.Platform.BookingNumberPrefix, time.Now())
		err := s.db.Create(&booking).Error
		if err == nil {
			created = true
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	if !created {
		return nil, ErrDuplicateBookingNumber
	}

	if discountCodeID != nil {
		NewDiscountService().MarkUsed(*discountCodeID)
	}

	if err := s.db.Model(&models.Consultant{}).Where("id = ?", consultant.ID).
		UpdateColumn("total_consultations", gorm.Expr("total_consultations + 1")).Error; err != nil {
		utils.GetLogger().Warn("failed to bump consultant booking count",
			zap.Uint("consultant_id", consultant.ID), zap.Error(err))
	}

	s.notifier.Notify(consultant.UserID, "booking_created",
		"حجز استشارة جديد",
		fmt.Sprintf("New consultation request %s", booking.BookingNumber),
		map[string]interface{}{"booking_id": booking.ID, "booking_number": booking.BookingNumber})

	return &booking, nil
}

// Transition moves a booking through the state machine. On completion the
// earning is recorded exactly once; calling completion again on an already
// completed booking returns the existing earning instead of failing.
func (s *BookingService) Transition(bookingID, actorID uint, isAdmin bool, newStatus models.BookingStatus, reason string) (*models.Booking, *models.Earning, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	role := PartyNone
	if isAdmin {
		role = PartyConsultant // admins hold consultant-level control plus cancel
	} else {
		role = s.RoleOf(actorID, &booking)
	}
	if role == PartyNone {
		return nil, nil, ErrUnauthorized
	}
	// Clients only ever cancel; the consultant drives the rest.
	if role == PartyClient && newStatus != models.BookingStatusCancelled {
		return nil, nil, ErrUnauthorized
	}

	// Idempotent completion: a second "completed" request is a no-op that
	// hands back the earning already on file.
	if newStatus == models.BookingStatusCompleted && booking.Status == models.BookingStatusCompleted {
		earning, err := s.earnings.GetByBookingID(booking.ID)
		if err != nil {
			return nil, nil, err
		}
		return &booking, earning, nil
	}

	if err := ValidateBookingTransition(booking.Status, newStatus); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{"status": newStatus}

	switch newStatus {
	case models.BookingStatusConfirmed:
		updates["confirmed_at"] = now
	case models.BookingStatusInProgress:
		updates["started_at"] = now
	case models.BookingStatusCancelled:
		if reason == "" {
			return nil, nil, ErrReasonRequired
		}
		updates["cancellation_reason"] = reason
		updates["cancelled_by"] = actorID
		updates["cancelled_at"] = now
	case models.BookingStatusNoShow:
		if reason != "" {
			updates["cancellation_reason"] = reason
		}
	case models.BookingStatusCompleted:
		updates["completed_at"] = now
	}

	var earning *models.Earning
	if newStatus == models.BookingStatusCompleted {
		// Status flip, earning row and consultant aggregates move together.
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
				return err
			}
			var txErr error
			earning, txErr = s.earnings.RecordCompletion(tx, &booking)
			return txErr
		})
		if err != nil {
			return nil, nil, err
		}
	} else {
		if err := s.db.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error; err != nil {
			return nil, nil, err
		}
	}

	if err := s.db.First(&booking, booking.ID).Error; err != nil {
		return nil, nil, err
	}

	s.notifyTransition(&booking, role, newStatus)

	return &booking, earning, nil
}

// notifyTransition pings the counterpart about a status change. Best-effort:
// a failed notification never rolls back the transition.
func (s *BookingService) notifyTransition(booking *models.Booking, actorRole PartyRole, newStatus models.BookingStatus) {
	titles := map[models.BookingStatus][2]string{
		models.BookingStatusConfirmed:  {"تم تأكيد الحجز", "Your consultation has been confirmed"},
		models.BookingStatusInProgress: {"بدأت الاستشارة", "Your consultation is now in progress"},
		models.BookingStatusCompleted:  {"اكتملت الاستشارة", "Your consultation has been completed"},
		models.BookingStatusCancelled:  {"تم إلغاء الحجز", "The consultation has been cancelled"},
		models.BookingStatusNoShow:     {"لم يحضر العميل", "The consultation was marked as a no-show"},
	}
	title, ok := titles[newStatus]
	if !ok {
		return
	}

	// Notify the side that did not act.
	var recipient uint
	if actorRole == PartyClient {
		var consultant models.Consultant
		if err := s.db.Select("user_id").First(&consultant, booking.ConsultantID).Error; err != nil {
			utils.GetLogger().Warn("transition notification skipped",
				zap.Uint("booking_id", booking.ID), zap.Error(err))
			return
		}
		recipient = consultant.UserID
	} else {
		recipient = booking.ClientID
	}

	s.notifier.Notify(recipient, "booking_"+statusEventName(newStatus), title[0], title[1],
		map[string]interface{}{
			"booking_id":     booking.ID,
			"booking_number": booking.BookingNumber,
			"status":         newStatus,
		})
}

func statusEventName(status models.BookingStatus) string {
	switch status {
	case models.BookingStatusInProgress:
		return "started"
	case models.BookingStatusNoShow:
		return "no_show"
	default:
		return string(status)
	}
}

// ListForClient returns a client's bookings, newest first.
func (s *BookingService) ListForClient(clientID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Consultant").
		Preload("ConsultationType").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListForConsultant returns a consultant's bookings, newest first.
func (s *BookingService) ListForConsultant(consultantID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Client").
		Preload("ConsultationType").
		Where("consultant_id = ?", consultantID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// UpdateConsultantNotes stores the consultant's private notes on a booking.
func (s *BookingService) UpdateConsultantNotes(bookingID, actorID uint, notes string) error {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.RoleOf(actorID, &booking) != PartyConsultant {
		return ErrUnauthorized
	}
	return s.db.Model(&models.Booking{}).Where("id = ?", bookingID).
		Update("consultant_notes", notes).Error
}

// ListPastSLA returns non-terminal bookings whose SLA deadline has passed.
// Breach detection is a pull query; nothing in the core runs on a timer.
func (s *BookingService) ListPastSLA(now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Consultant").
		Where("sla_deadline < ? AND status IN ?", now,
			[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusInProgress}).
		Order("sla_deadline ASC").
		Find(&bookings).Error
	return bookings, err
}

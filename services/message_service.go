package services

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"
)

// MessageService owns the per-booking conversation threads.
type MessageService struct {
	db       *gorm.DB
	bookings *BookingService
	notifier *NotificationService
}

// NewMessageService creates a new message service
func NewMessageService() *MessageService {
	return &MessageService{
		db:       database.DB,
		bookings: NewBookingService(),
		notifier: NewNotificationService(),
	}
}

// Post appends a message to a booking's thread. The first client message on a
// pending or confirmed booking pulls the booking into in-progress: first
// contact begins the work. That coupling is deliberate, not a generic side
// effect.
func (s *MessageService) Post(bookingID, senderID uint, req models.MessageCreate) (*models.Message, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	role := s.bookings.RoleOf(senderID, &booking)
	if role == PartyNone {
		return nil, ErrUnauthorized
	}

	senderRole := models.SenderRoleClient
	if role == PartyConsultant {
		senderRole = models.SenderRoleConsultant
	}

	attachments := ""
	if len(req.Attachments) > 0 {
		if raw, err := json.Marshal(req.Attachments); err == nil {
			attachments = string(raw)
		}
	}

	message := models.Message{
		BookingID:   booking.ID,
		SenderID:    senderID,
		SenderRole:  senderRole,
		Body:        req.Body,
		Attachments: attachments,
	}
	// The AI audit trail only applies to consultant messages; the original
	// draft is stored verbatim even when edited before sending.
	if senderRole == models.SenderRoleConsultant && req.IsAIAssisted {
		message.IsAIAssisted = true
		message.AISuggestion = req.AISuggestion
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	if senderRole == models.SenderRoleClient &&
		(booking.Status == models.BookingStatusPending || booking.Status == models.BookingStatusConfirmed) {
		now := time.Now()
		if err := s.db.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":     models.BookingStatusInProgress,
				"started_at": now,
			}).Error; err != nil {
			utils.GetLogger().Warn("auto-advance to in-progress failed",
				zap.Uint("booking_id", booking.ID), zap.Error(err))
		}
	}

	s.notifyCounterpart(&booking, senderRole, &message)

	return &message, nil
}

// notifyCounterpart pushes a new-message notification to the other party.
func (s *MessageService) notifyCounterpart(booking *models.Booking, senderRole models.SenderRole, message *models.Message) {
	var recipient uint
	if senderRole == models.SenderRoleClient {
		var consultant models.Consultant
		if err := s.db.Select("user_id").First(&consultant, booking.ConsultantID).Error; err != nil {
			utils.GetLogger().Warn("message notification skipped",
				zap.Uint("booking_id", booking.ID), zap.Error(err))
			return
		}
		recipient = consultant.UserID
	} else {
		recipient = booking.ClientID
	}

	s.notifier.Notify(recipient, "new_message",
		"رسالة جديدة",
		"You have a new message in your consultation",
		map[string]interface{}{
			"booking_id": booking.ID,
			"message_id": message.ID,
			"sender":     senderRole,
		})
}

// List returns a booking's thread ordered by creation time, ties broken by
// insertion sequence.
func (s *MessageService) List(bookingID, actorID uint) ([]models.Message, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.bookings.RoleOf(actorID, &booking) == PartyNone {
		return nil, ErrUnauthorized
	}

	var messages []models.Message
	err := s.db.
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flags a message as read by its recipient. Idempotent; re-marking
// keeps the original read timestamp.
func (s *MessageService) MarkRead(messageID, actorID uint) error {
	var message models.Message
	if err := s.db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var booking models.Booking
	if err := s.db.First(&booking, message.BookingID).Error; err != nil {
		return err
	}
	role := s.bookings.RoleOf(actorID, &booking)
	if role == PartyNone || actorID == message.SenderID {
		return ErrUnauthorized
	}

	if message.IsRead {
		return nil
	}

	now := time.Now()
	return s.db.Model(&models.Message{}).Where("id = ?", message.ID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// UnreadCount returns how many messages addressed to the actor are unread.
func (s *MessageService) UnreadCount(bookingID, actorID uint) (int64, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if s.bookings.RoleOf(actorID, &booking) == PartyNone {
		return 0, ErrUnauthorized
	}

	var count int64
	err := s.db.Model(&models.Message{}).
		Where("booking_id = ? AND sender_id <> ? AND is_read = ?", bookingID, actorID, false).
		Count(&count).Error
	return count, err
}

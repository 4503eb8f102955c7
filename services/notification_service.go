package services

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"
	ws "consulting-platform-server/websocket"
)

// NotificationService delivers in-app, email and websocket notifications.
// Everything here is best-effort: delivery failures are logged and never
// surfaced to the operation that triggered them.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{db: database.DB}
}

// Notify records an in-app notification and fans it out over email and
// websocket. It intentionally returns nothing.
func (s *NotificationService) Notify(userID uint, ntype, title, body string, data map[string]interface{}) {
	payload := ""
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			payload = string(raw)
		}
	}

	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   ntype,
		Data:   payload,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		utils.GetLogger().Warn("failed to persist notification",
			zap.Uint("user_id", userID), zap.String("type", ntype), zap.Error(err))
	}

	if hub := ws.DefaultHub; hub != nil {
		hub.SendToUser(userID, &ws.Message{
			Type: "notification",
			Data: map[string]interface{}{
				"id":    notification.ID,
				"type":  ntype,
				"title": title,
				"body":  body,
				"data":  data,
			},
		})
	}

	s.sendEmail(userID, title, body)
}

// sendEmail delivers the notification over SMTP when configured.
func (s *NotificationService) sendEmail(userID uint, subject, body string) {
	smtp := config.AppConfig.SMTP
	if smtp.Host == "" {
		return
	}

	var user models.User
	if err := s.db.Select("email", "full_name").First(&user, userID).Error; err != nil {
		utils.GetLogger().Warn("email notification skipped, user lookup failed",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtp.From)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", "<p>"+body+"</p>")

	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password)
	if err := d.DialAndSend(m); err != nil {
		utils.GetLogger().Warn("email notification failed",
			zap.Uint("user_id", userID), zap.String("subject", subject), zap.Error(err))
	}
}

// ListForUser returns a user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a notification as read. Idempotent.
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var n models.Notification
		if err := s.db.First(&n, notificationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if n.UserID != userID {
			return ErrUnauthorized
		}
	}
	return nil
}

// MarkAllRead flags every unread notification for a user.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotPaid        = errors.New("payment is not in paid status")
	ErrPaymentAmountMismatch = errors.New("payment amount does not match booking amount")
)

// MoyasarPayment is the subset of the Moyasar payment object we verify
type MoyasarPayment struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"` // halalas
	Currency string `json:"currency"`
	Source   struct {
		Type string `json:"type"`
	} `json:"source"`
}

// PaymentService verifies Moyasar payments against bookings
type PaymentService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	db      *gorm.DB
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		apiKey:  config.AppConfig.Platform.MoyasarAPIKey,
		baseURL: "https://api.moyasar.com/v1",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		db: database.DB,
	}
}

// fetchPayment retrieves a payment from Moyasar by id
func (ps *PaymentService) fetchPayment(paymentID string) (*MoyasarPayment, error) {
	if ps.apiKey == "" {
		return nil, fmt.Errorf("payment gateway is not configured")
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/payments/%s", ps.baseURL, paymentID), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(ps.apiKey, "")

	resp, err := ps.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moyasar API error: %s", string(body))
	}

	var payment MoyasarPayment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, err
	}

	return &payment, nil
}

// ConfirmBookingPayment verifies a gateway payment and marks the booking paid.
// The client who owns the booking supplies the Moyasar payment id after checkout.
func (ps *PaymentService) ConfirmBookingPayment(bookingID, clientID uint, paymentID string) (*models.Booking, error) {
	var booking models.Booking
	if err := ps.db.First(&booking, bookingID).Error; err != nil {
		return nil, ErrNotFound
	}
	if booking.ClientID != clientID {
		return nil, ErrUnauthorized
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return &booking, nil
	}

	payment, err := ps.fetchPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != "paid" {
		return nil, ErrPaymentNotPaid
	}
	if payment.Amount != booking.FinalAmount {
		utils.GetLogger().Warn("payment amount mismatch",
			zap.Uint("booking_id", booking.ID),
			zap.Int64("expected", booking.FinalAmount),
			zap.Int64("received", payment.Amount))
		return nil, ErrPaymentAmountMismatch
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status":         models.PaymentStatusPaid,
		"payment_method":         payment.Source.Type,
		"payment_transaction_id": payment.ID,
		"paid_at":                &now,
	}
	if err := ps.db.Model(&booking).Updates(updates).Error; err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking payment confirmed",
		zap.Uint("booking_id", booking.ID),
		zap.String("payment_id", payment.ID))
	return &booking, nil
}

// MarkRefunded records a refund on a cancelled booking. Admin only; the
// actual refund is issued through the gateway dashboard.
func (ps *PaymentService) MarkRefunded(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := ps.db.First(&booking, bookingID).Error; err != nil {
		return nil, ErrNotFound
	}
	if booking.PaymentStatus != models.PaymentStatusPaid {
		return nil, ErrPaymentNotPaid
	}
	if booking.Status != models.BookingStatusCancelled {
		return nil, &InvalidTransitionError{Entity: "payment", From: string(booking.Status), To: "refunded"}
	}

	if err := ps.db.Model(&booking).Update("payment_status", models.PaymentStatusRefunded).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

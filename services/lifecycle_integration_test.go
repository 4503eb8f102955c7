package services

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"
)

var integrationOnce sync.Once

// setupIntegration connects to the database named by TEST_DB_URL. Tests that
// need a real Postgres skip when it is unset.
func setupIntegration(t *testing.T) {
	t.Helper()
	url := os.Getenv("TEST_DB_URL")
	if url == "" {
		t.Skip("TEST_DB_URL not set, skipping database integration test")
	}

	integrationOnce.Do(func() {
		os.Setenv("DB_URL", url)
		config.Load()
		if err := database.Initialize(); err != nil {
			t.Fatalf("failed to initialize test database: %v", err)
		}
	})
	if database.DB == nil {
		t.Fatal("test database not initialized")
	}
}

func createTestUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("Testing123")
	if err != nil {
		t.Fatal(err)
	}
	user := models.User{
		Email:        fmt.Sprintf("test-%s@example.com", uuid.NewString()),
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

func createApprovedConsultant(t *testing.T) (*models.Consultant, *models.User) {
	t.Helper()
	user := createTestUser(t, models.RoleClient)
	admin := createTestUser(t, models.RoleAdmin)

	svc := NewConsultantService()
	consultant, err := svc.Register(user.ID, models.ConsultantRegister{
		FullNameAr:         "مستشار تجريبي",
		FullNameEn:         "Test Consultant",
		Phone:              "+966500000000",
		MainSpecialization: "labor-law",
		YearsOfExperience:  5,
	})
	if err != nil {
		t.Fatalf("failed to register consultant: %v", err)
	}

	consultant, err = svc.Approve(consultant.ID, admin.ID, nil)
	if err != nil {
		t.Fatalf("failed to approve consultant: %v", err)
	}
	return consultant, user
}

func createTestConsultationType(t *testing.T, price int64) *models.ConsultationType {
	t.Helper()
	ct := models.ConsultationType{
		Code:              "test-" + uuid.NewString()[:8],
		NameAr:            "استشارة",
		NameEn:            "Consultation",
		BasePriceSAR:      price,
		EstimatedDuration: 60,
		SLAHours:          24,
		IsActive:          true,
	}
	if err := database.DB.Create(&ct).Error; err != nil {
		t.Fatalf("failed to create consultation type: %v", err)
	}
	return &ct
}

func createCompletedBooking(t *testing.T) (*models.Booking, *models.Earning, *models.User, *models.User) {
	t.Helper()
	consultant, consultantUser := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 100000)

	svc := NewBookingService()
	booking, err := svc.CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "14:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
	} {
		booking, _, err = svc.Transition(booking.ID, consultantUser.ID, false, status, "")
		if err != nil {
			t.Fatalf("failed transition to %s: %v", status, err)
		}
	}

	earning, err := NewEarningsService().GetByBookingID(booking.ID)
	if err != nil {
		t.Fatalf("expected an earning after completion: %v", err)
	}
	return booking, earning, client, consultantUser
}

func TestBookingCompletionIsIdempotent(t *testing.T) {
	setupIntegration(t)

	booking, earning, _, consultantUser := createCompletedBooking(t)

	// A second completion must return the same ledger row, not a second one.
	_, again, err := NewBookingService().Transition(
		booking.ID, consultantUser.ID, false, models.BookingStatusCompleted, "")
	if err != nil {
		t.Fatalf("repeat completion should succeed: %v", err)
	}
	if again == nil || again.ID != earning.ID {
		t.Errorf("repeat completion returned a different earning: got %+v, want id %d", again, earning.ID)
	}

	var count int64
	database.DB.Model(&models.Earning{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one earning row, found %d", count)
	}
}

func TestConcurrentCompletionRecordsOneEarning(t *testing.T) {
	setupIntegration(t)

	consultant, consultantUser := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 100000)

	svc := NewBookingService()
	booking, err := svc.CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "15:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	for _, status := range []models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusInProgress} {
		if booking, _, err = svc.Transition(booking.ID, consultantUser.ID, false, status, ""); err != nil {
			t.Fatalf("failed transition to %s: %v", status, err)
		}
	}

	// Two racing completions: both must land on the same ledger row.
	earnings := make([]*models.Earning, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, earnings[i], errs[i] = NewBookingService().Transition(
				booking.ID, consultantUser.ID, false, models.BookingStatusCompleted, "")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		if errs[i] != nil {
			t.Fatalf("completion %d failed: %v", i, errs[i])
		}
		if earnings[i] == nil {
			t.Fatalf("completion %d returned no earning", i)
		}
	}
	if earnings[0].ID != earnings[1].ID {
		t.Errorf("racing completions returned different earnings: %d and %d", earnings[0].ID, earnings[1].ID)
	}

	var count int64
	database.DB.Model(&models.Earning{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one earning row, found %d", count)
	}
}

func TestEarningSplitMatchesConsultantRate(t *testing.T) {
	setupIntegration(t)

	booking, earning, _, _ := createCompletedBooking(t)

	if earning.TotalAmount != booking.FinalAmount {
		t.Errorf("earning total = %d, want booking final amount %d", earning.TotalAmount, booking.FinalAmount)
	}
	wantCommission, wantNet := SplitAmount(booking.FinalAmount, earning.CommissionRate)
	if earning.PlatformCommission != wantCommission || earning.ConsultantNet != wantNet {
		t.Errorf("split = (%d, %d), want (%d, %d)",
			earning.PlatformCommission, earning.ConsultantNet, wantCommission, wantNet)
	}
}

func TestReviewOncePerBooking(t *testing.T) {
	setupIntegration(t)

	booking, _, client, _ := createCompletedBooking(t)

	svc := NewReviewService()
	review, err := svc.Submit(booking.ID, client.ID, models.ReviewCreate{
		Rating:  5,
		Comment: "Thorough and fast",
	})
	if err != nil {
		t.Fatalf("first review should succeed: %v", err)
	}
	if review.Rating != 5 {
		t.Errorf("review rating = %d, want 5", review.Rating)
	}

	_, err = svc.Submit(booking.ID, client.ID, models.ReviewCreate{Rating: 1})
	if err != ErrAlreadyReviewed {
		t.Errorf("second review error = %v, want ErrAlreadyReviewed", err)
	}
}

func TestReviewUpdatesConsultantAggregates(t *testing.T) {
	setupIntegration(t)

	booking, _, client, _ := createCompletedBooking(t)

	if _, err := NewReviewService().Submit(booking.ID, client.ID, models.ReviewCreate{
		Rating:  4,
		Comment: "Solid advice",
	}); err != nil {
		t.Fatalf("review should succeed: %v", err)
	}

	// The aggregates commit in the same transaction as the review row.
	var consultant models.Consultant
	if err := database.DB.First(&consultant, booking.ConsultantID).Error; err != nil {
		t.Fatal(err)
	}
	if consultant.TotalReviews != 1 {
		t.Errorf("total_reviews = %d, want 1", consultant.TotalReviews)
	}
	if consultant.AverageRating != 4 {
		t.Errorf("average_rating = %v, want 4", consultant.AverageRating)
	}

	var snap models.Booking
	if err := database.DB.First(&snap, booking.ID).Error; err != nil {
		t.Fatal(err)
	}
	if snap.Rating == nil || *snap.Rating != 4 {
		t.Errorf("booking rating snapshot = %v, want 4", snap.Rating)
	}
}

func TestReviewRequiresCompletion(t *testing.T) {
	setupIntegration(t)

	consultant, _ := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 50000)

	booking, err := NewBookingService().CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "09:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	_, err = NewReviewService().Submit(booking.ID, client.ID, models.ReviewCreate{Rating: 4})
	if err != ErrNotCompleted {
		t.Errorf("review on pending booking error = %v, want ErrNotCompleted", err)
	}
}

func TestClientFirstMessageStartsWork(t *testing.T) {
	setupIntegration(t)

	consultant, consultantUser := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 50000)

	svc := NewBookingService()
	booking, err := svc.CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "10:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	booking, _, err = svc.Transition(booking.ID, consultantUser.ID, false, models.BookingStatusConfirmed, "")
	if err != nil {
		t.Fatalf("failed to confirm booking: %v", err)
	}

	if _, err := NewMessageService().Post(booking.ID, client.ID, models.MessageCreate{
		Body: "Here are the contract details",
	}); err != nil {
		t.Fatalf("failed to post message: %v", err)
	}

	booking, err = svc.GetBooking(booking.ID)
	if err != nil {
		t.Fatal(err)
	}
	if booking.Status != models.BookingStatusInProgress {
		t.Errorf("booking status = %s, want in-progress after first client message", booking.Status)
	}
	if booking.StartedAt == nil {
		t.Error("started_at should be stamped when work begins")
	}
}

func TestMessageListOrderIsStable(t *testing.T) {
	setupIntegration(t)

	consultant, consultantUser := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 50000)

	bsvc := NewBookingService()
	booking, err := bsvc.CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "13:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	if booking, _, err = bsvc.Transition(booking.ID, consultantUser.ID, false, models.BookingStatusConfirmed, ""); err != nil {
		t.Fatalf("failed to confirm booking: %v", err)
	}

	// Alternate senders so the thread interleaves both parties.
	svc := NewMessageService()
	var posted []uint
	for i := 0; i < 6; i++ {
		senderID := client.ID
		if i%2 == 1 {
			senderID = consultantUser.ID
		}
		msg, err := svc.Post(booking.ID, senderID, models.MessageCreate{
			Body: fmt.Sprintf("message %d", i),
		})
		if err != nil {
			t.Fatalf("failed to post message %d: %v", i, err)
		}
		posted = append(posted, msg.ID)
	}

	listed, err := svc.List(booking.ID, client.ID)
	if err != nil {
		t.Fatalf("failed to list messages: %v", err)
	}
	if len(listed) != len(posted) {
		t.Fatalf("listed %d messages, want %d", len(listed), len(posted))
	}
	for i, msg := range listed {
		if msg.ID != posted[i] {
			t.Errorf("position %d: got message %d, want %d", i, msg.ID, posted[i])
		}
		if i > 0 {
			prev := listed[i-1]
			if msg.CreatedAt.Before(prev.CreatedAt) ||
				(msg.CreatedAt.Equal(prev.CreatedAt) && msg.ID < prev.ID) {
				t.Errorf("messages %d and %d out of (created_at, id) order", prev.ID, msg.ID)
			}
		}
	}
}

func TestThirdPartyCannotPostMessages(t *testing.T) {
	setupIntegration(t)

	consultant, _ := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	outsider := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 50000)

	booking, err := NewBookingService().CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "11:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	if _, err := NewMessageService().Post(booking.ID, outsider.ID, models.MessageCreate{Body: "hi"}); err != ErrUnauthorized {
		t.Errorf("outsider post error = %v, want ErrUnauthorized", err)
	}
}

func TestClientCannotConfirmBooking(t *testing.T) {
	setupIntegration(t)

	consultant, _ := createApprovedConsultant(t)
	client := createTestUser(t, models.RoleClient)
	ct := createTestConsultationType(t, 50000)

	booking, err := NewBookingService().CreateBooking(client.ID, models.BookingCreate{
		ConsultantID:       consultant.ID,
		ConsultationTypeID: ct.ID,
		ScheduledDate:      time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		ScheduledTime:      "12:00",
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	// Clients may only cancel; confirmation is the consultant's call.
	if _, _, err := NewBookingService().Transition(booking.ID, client.ID, false,
		models.BookingStatusConfirmed, ""); err != ErrUnauthorized {
		t.Errorf("client confirm error = %v, want ErrUnauthorized", err)
	}

	if _, _, err := NewBookingService().Transition(booking.ID, client.ID, false,
		models.BookingStatusCancelled, "changed my mind"); err != nil {
		t.Errorf("client cancel should succeed, got %v", err)
	}
}

package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"consulting-platform-server/database"
	"consulting-platform-server/models"
	"consulting-platform-server/utils"
)

// DiscountService resolves discount codes at booking creation.
type DiscountService struct {
	db *gorm.DB
}

// NewDiscountService creates a new discount service
func NewDiscountService() *DiscountService {
	return &DiscountService{db: database.DB}
}

// capDiscount clamps a resolved discount into [0, amount]. The stored
// discount must always satisfy final = total - discount, so an oversized
// fixed code eats the whole amount, never more.
func capDiscount(discount, amount int64) int64 {
	if discount < 0 {
		return 0
	}
	if discount > amount {
		return amount
	}
	return discount
}

// Resolve returns the discount amount for a code applied to the given amount.
// Unknown, inactive, expired or exhausted codes yield a zero discount rather
// than failing the booking.
func (s *DiscountService) Resolve(code string, amount int64) (int64, *uint) {
	if code == "" {
		return 0, nil
	}

	var dc models.DiscountCode
	if err := s.db.Where("code = ?", code).First(&dc).Error; err != nil {
		return 0, nil
	}
	if !dc.IsUsable(time.Now()) {
		return 0, nil
	}

	return capDiscount(dc.AmountFor(amount), amount), &dc.ID
}

// MarkUsed bumps the usage counter after a booking applied the code.
func (s *DiscountService) MarkUsed(codeID uint) {
	if err := s.db.Model(&models.DiscountCode{}).Where("id = ?", codeID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
		utils.GetLogger().Warn("failed to bump discount code usage",
			zap.Uint("discount_code_id", codeID), zap.Error(err))
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountType 할인 유형
type DiscountType string

const (
	DiscountTypeFixed   DiscountType = "fixed"   // 정액 할인
	DiscountTypePercent DiscountType = "percent" // 정률 할인
)

// Coupon 쿠폰 엔티티
type Coupon struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Code string `gorm:"column:code;size:50;uniqueIndex;not null" json:"code"`

	// 할인 정보
	DiscountType  DiscountType    `gorm:"column:discount_type;size:20;not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"column:discount_value;type:decimal(12,2);not null" json:"discount_value"`
	MaxDiscount   *Money          `gorm:"column:max_discount" json:"max_discount,omitempty"`

	// 사용 조건
	MinAmount Money `gorm:"column:min_amount;default:0" json:"min_amount"`

	IsActive  bool       `gorm:"column:is_active;not null" json:"is_active"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName GORM 테이블명
func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired 만료 여부
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// CouponApplication 쿠폰 적용 결과
type CouponApplication struct {
	Code             string `json:"code"`
	OriginalAmount   Money  `json:"original_amount"`
	DiscountAmount   Money  `json:"discount_amount"`
	DiscountedAmount Money  `json:"discounted_amount"`
}

// CreateCouponRequest 쿠폰 생성 요청 DTO
type CreateCouponRequest struct {
	Code          string          `json:"code" binding:"required,min=3,max=50"`
	DiscountType  string          `json:"discount_type" binding:"required,oneof=fixed percent"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MaxDiscount   *Money          `json:"max_discount"`
	MinAmount     Money           `json:"min_amount"`
	IsActive      *bool           `json:"is_active"`
	ExpiresAt     *time.Time      `json:"expires_at"`
}

// UpdateCouponRequest 쿠폰 수정 요청 DTO
type UpdateCouponRequest struct {
	DiscountValue *decimal.Decimal `json:"discount_value"`
	MaxDiscount   *Money           `json:"max_discount"`
	MinAmount     *Money           `json:"min_amount"`
	IsActive      *bool            `json:"is_active"`
	ExpiresAt     *time.Time       `json:"expires_at"`
}

// ValidateCouponRequest 쿠폰 검증 요청 DTO
type ValidateCouponRequest struct {
	Code   string `json:"code" binding:"required"`
	Amount Money  `json:"amount" binding:"required,gt=0"`
}

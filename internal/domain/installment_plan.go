package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 기본 플랜 이름
const (
	PlanNameFull = "full"
)

// InstallmentPlan 분할 납부 플랜
type InstallmentPlan struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"column:name;size:50;uniqueIndex;not null" json:"name"`
	Title string `gorm:"column:title;size:100" json:"title,omitempty"`

	// 분할 정책
	Installments    int             `gorm:"column:installments;not null;default:1" json:"installments"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:decimal(5,2);not null;default:0" json:"discount_percent"`
	// 첫 회차 비율 (원래 수강료 기준, 미설정 시 기본 정책 사용)
	FirstInstallmentPercent decimal.NullDecimal `gorm:"column:first_installment_percent;type:decimal(5,2)" json:"first_installment_percent,omitempty"`

	IsActive bool `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName GORM 테이블명
func (InstallmentPlan) TableName() string {
	return "installment_plans"
}

// CreateInstallmentPlanRequest 플랜 생성 요청 DTO
type CreateInstallmentPlanRequest struct {
	Name                    string           `json:"name" binding:"required,min=1,max=50"`
	Title                   string           `json:"title" binding:"omitempty,max=100"`
	Installments            int              `json:"installments" binding:"required,gte=1,lte=24"`
	DiscountPercent         decimal.Decimal  `json:"discount_percent"`
	FirstInstallmentPercent *decimal.Decimal `json:"first_installment_percent"`
	IsActive                *bool            `json:"is_active"`
}

// UpdateInstallmentPlanRequest 플랜 수정 요청 DTO
type UpdateInstallmentPlanRequest struct {
	Title                   *string          `json:"title" binding:"omitempty,max=100"`
	Installments            *int             `json:"installments" binding:"omitempty,gte=1,lte=24"`
	DiscountPercent         *decimal.Decimal `json:"discount_percent"`
	FirstInstallmentPercent *decimal.Decimal `json:"first_installment_percent"`
	IsActive                *bool            `json:"is_active"`
}

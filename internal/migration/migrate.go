package migration

import (
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Models every table owned by this service
func Models() []interface{} {
	return []interface{}{
		&domain.Course{},
		&domain.InstallmentPlan{},
		&domain.Coupon{},
		&domain.Payment{},
		&domain.GatewayEvent{},
		&domain.CertificateApplication{},
		&domain.AdminAuditLog{},
	}
}

// Run executes AutoMigrate for all tables and seeds default installment plans if empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - 테이블 없으면 생성, 있으면 컬럼만 추가
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	// 2. Seed - 플랜 테이블이 비어있을 때만 기본 플랜 삽입
	var count int64
	if err := db.Unscoped().Model(&domain.InstallmentPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return seedPlans(db)
	}

	return nil
}

func seedPlans(db *gorm.DB) error {
	plans := []domain.InstallmentPlan{
		{Name: domain.PlanNameFull, Title: "일시불", Installments: 1, DiscountPercent: decimal.Zero, IsActive: true},
		{Name: "2x", Title: "2회 분할", Installments: 2, DiscountPercent: decimal.NewFromInt(5), IsActive: true},
		{Name: "3x", Title: "3회 분할", Installments: 3, DiscountPercent: decimal.Zero, IsActive: true},
	}
	return db.Create(&plans).Error
}

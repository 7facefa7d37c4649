package repository

import (
	"context"

	"github.com/codecraft/institute-backend/internal/domain"
	"gorm.io/gorm"
)

// InstallmentPlanRepository 분할 납부 플랜 저장소 인터페이스
type InstallmentPlanRepository interface {
	Create(ctx context.Context, plan *domain.InstallmentPlan) error
	Update(ctx context.Context, plan *domain.InstallmentPlan) error
	Delete(ctx context.Context, id uint64) error

	FindByID(ctx context.Context, id uint64) (*domain.InstallmentPlan, error)
	FindActiveByName(ctx context.Context, name string) (*domain.InstallmentPlan, error)
	ListActive(ctx context.Context) ([]*domain.InstallmentPlan, error)
	ListAll(ctx context.Context) ([]*domain.InstallmentPlan, error)
}

type installmentPlanRepository struct {
	db *gorm.DB
}

// NewInstallmentPlanRepository 생성자
func NewInstallmentPlanRepository(db *gorm.DB) InstallmentPlanRepository {
	return &installmentPlanRepository{db: db}
}

func (r *installmentPlanRepository) Create(ctx context.Context, plan *domain.InstallmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// Update 전체 필드 저장 (is_active=false 같은 zero 값 포함)
func (r *installmentPlanRepository) Update(ctx context.Context, plan *domain.InstallmentPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete 소프트 삭제 (과거 결제가 이름으로 참조)
func (r *installmentPlanRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&domain.InstallmentPlan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *installmentPlanRepository) FindByID(ctx context.Context, id uint64) (*domain.InstallmentPlan, error) {
	var plan domain.InstallmentPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *installmentPlanRepository) FindActiveByName(ctx context.Context, name string) (*domain.InstallmentPlan, error) {
	var plan domain.InstallmentPlan
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *installmentPlanRepository) ListActive(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	var plans []*domain.InstallmentPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("installments ASC, id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *installmentPlanRepository) ListAll(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	var plans []*domain.InstallmentPlan
	err := r.db.WithContext(ctx).Order("installments ASC, id ASC").Find(&plans).Error
	return plans, err
}

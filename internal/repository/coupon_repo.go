package repository

import (
	"context"

	"github.com/codecraft/institute-backend/internal/domain"
	"gorm.io/gorm"
)

// CouponRepository 쿠폰 저장소 인터페이스
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	Update(ctx context.Context, coupon *domain.Coupon) error
	Delete(ctx context.Context, id uint64) error

	FindByID(ctx context.Context, id uint64) (*domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context, page, limit int) ([]*domain.Coupon, int64, error)
}

// couponRepository GORM 구현체
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 생성자
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

// Create 쿠폰 생성
func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

// Update 쿠폰 수정
func (r *couponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// Delete 쿠폰 소프트 삭제
func (r *couponRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Coupon{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID ID로 쿠폰 조회
func (r *couponRepository) FindByID(ctx context.Context, id uint64) (*domain.Coupon, error) {
	var coupon domain.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindByCode 코드로 쿠폰 조회
func (r *couponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// List 쿠폰 목록
func (r *couponRepository) List(ctx context.Context, page, limit int) ([]*domain.Coupon, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Coupon{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit)
	var coupons []*domain.Coupon
	err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&coupons).Error
	if err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

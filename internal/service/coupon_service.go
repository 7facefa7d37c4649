package service

import (
	"context"
	"errors"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/pricing"
	"github.com/codecraft/institute-backend/internal/repository"
	"gorm.io/gorm"
)

// ErrCouponCodeTaken 중복 쿠폰 코드
var ErrCouponCodeTaken = errors.New("coupon code already exists")

// CouponService 쿠폰 서비스
type CouponService interface {
	// Validate 금액에 쿠폰 적용 결과 계산 (저장하지 않음)
	Validate(ctx context.Context, req *domain.ValidateCouponRequest) (*domain.CouponApplication, error)

	List(ctx context.Context, page, limit int) ([]*domain.Coupon, int64, error)
	Create(ctx context.Context, req *domain.CreateCouponRequest) (*domain.Coupon, error)
	Update(ctx context.Context, id uint64, req *domain.UpdateCouponRequest) (*domain.Coupon, error)
	Delete(ctx context.Context, id uint64) error
}

type couponService struct {
	repo repository.CouponRepository
	now  func() time.Time
}

// NewCouponService 생성자
func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{repo: repo, now: time.Now}
}

func (s *couponService) Validate(ctx context.Context, req *domain.ValidateCouponRequest) (*domain.CouponApplication, error) {
	coupon, err := s.repo.FindByCode(ctx, normalizeCouponCode(req.Code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return pricing.ApplyCoupon(req.Amount, coupon, s.now())
}

func (s *couponService) List(ctx context.Context, page, limit int) ([]*domain.Coupon, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *couponService) Create(ctx context.Context, req *domain.CreateCouponRequest) (*domain.Coupon, error) {
	code := normalizeCouponCode(req.Code)

	_, err := s.repo.FindByCode(ctx, code)
	if err == nil {
		return nil, ErrCouponCodeTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	coupon := &domain.Coupon{
		Code:          code,
		DiscountType:  domain.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinAmount:     req.MinAmount,
		IsActive:      true,
		ExpiresAt:     req.ExpiresAt,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id uint64, req *domain.UpdateCouponRequest) (*domain.Coupon, error) {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.MaxDiscount != nil {
		coupon.MaxDiscount = req.MaxDiscount
	}
	if req.MinAmount != nil {
		coupon.MinAmount = *req.MinAmount
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}

	if err := validateCoupon(coupon); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Delete(ctx context.Context, id uint64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCouponNotFound
	}
	return err
}

// validateCoupon 할인 설정 검사. 임의 금액으로 계산해 보고 형식 오류를 걸러낸다
func validateCoupon(c *domain.Coupon) error {
	if !c.DiscountValue.IsPositive() {
		return &pricing.ValidationError{Field: "discount_value", Message: "must be positive"}
	}
	if c.MinAmount < 0 {
		return &pricing.ValidationError{Field: "min_amount", Message: "must not be negative"}
	}
	_, err := pricing.CouponDiscount(domain.MoneyFromUnits(1), c)
	return err
}

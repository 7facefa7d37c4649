package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/pricing"
	"github.com/codecraft/institute-backend/internal/repository"
	"gorm.io/gorm"
)

// 가격 조회 에러 정의
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrCourseInactive = errors.New("course is not open for enrollment")
	ErrPlanNotFound   = errors.New("installment plan not found or inactive")
	ErrCouponNotFound = errors.New("coupon not found")
)

// PricingService 강의 가격 견적 서비스 인터페이스
type PricingService interface {
	// Quote 강의, 플랜 이름, 쿠폰 코드로 결제 금액 계산. planName 이 비면 일시불
	Quote(ctx context.Context, courseID uint64, planName, couponCode string) (*domain.PricingResult, error)
}

type pricingService struct {
	courseRepo repository.CourseRepository
	planRepo   repository.InstallmentPlanRepository
	couponRepo repository.CouponRepository
	now        func() time.Time
}

// NewPricingService 생성자
func NewPricingService(
	courseRepo repository.CourseRepository,
	planRepo repository.InstallmentPlanRepository,
	couponRepo repository.CouponRepository,
) PricingService {
	return &pricingService{
		courseRepo: courseRepo,
		planRepo:   planRepo,
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

func (s *pricingService) Quote(ctx context.Context, courseID uint64, planName, couponCode string) (*domain.PricingResult, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsActive {
		return nil, ErrCourseInactive
	}

	plan, err := s.resolvePlan(ctx, strings.TrimSpace(planName))
	if err != nil {
		return nil, err
	}

	var coupon *domain.Coupon
	var couponErr string
	if code := normalizeCouponCode(couponCode); code != "" {
		coupon, err = s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			coupon = nil
			couponErr = ErrCouponNotFound.Error()
		}
	}

	result, err := pricing.Compute(course.Fee, plan, coupon, s.now())
	if err != nil {
		return nil, err
	}
	if couponErr != "" {
		result.CouponError = couponErr
	}
	return result, nil
}

// resolvePlan 이름이 없거나 "full" 플랜이 등록되지 않았으면 nil (할인 없는 일시불)
func (s *pricingService) resolvePlan(ctx context.Context, name string) (*domain.InstallmentPlan, error) {
	if name == "" {
		return nil, nil
	}
	plan, err := s.planRepo.FindActiveByName(ctx, name)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if name == domain.PlanNameFull {
		return nil, nil
	}
	return nil, ErrPlanNotFound
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

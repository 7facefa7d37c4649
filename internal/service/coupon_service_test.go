package service

import (
	"context"
	"testing"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCouponFixture() (*MockCouponRepository, CouponService) {
	repo := new(MockCouponRepository)
	svc := NewCouponService(repo)
	svc.(*couponService).now = func() time.Time { return fixedNow }
	return repo, svc
}

func TestCouponService_Validate(t *testing.T) {
	t.Run("성공 - 정률 쿠폰 상한 적용", func(t *testing.T) {
		repo, svc := newCouponFixture()
		maxDiscount := domain.MoneyFromUnits(3000)
		repo.On("FindByCode", mock.Anything, "SPRING").Return(&domain.Coupon{
			Code: "SPRING", DiscountType: domain.DiscountTypePercent, DiscountValue: decimal.NewFromInt(20),
			MaxDiscount: &maxDiscount, IsActive: true,
		}, nil)

		got, err := svc.Validate(context.Background(), &domain.ValidateCouponRequest{Code: "spring", Amount: domain.MoneyFromUnits(47500)})

		require.NoError(t, err)
		assert.Equal(t, domain.MoneyFromUnits(3000), got.DiscountAmount)
		assert.Equal(t, domain.MoneyFromUnits(44500), got.DiscountedAmount)
	})

	t.Run("실패 - 만료된 쿠폰", func(t *testing.T) {
		repo, svc := newCouponFixture()
		expired := fixedNow.Add(-time.Hour)
		repo.On("FindByCode", mock.Anything, "OLD").Return(&domain.Coupon{
			Code: "OLD", DiscountType: domain.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(500),
			IsActive: true, ExpiresAt: &expired,
		}, nil)

		_, err := svc.Validate(context.Background(), &domain.ValidateCouponRequest{Code: "OLD", Amount: domain.MoneyFromUnits(1000)})

		assert.ErrorIs(t, err, pricing.ErrCouponExpired)
	})

	t.Run("실패 - 없는 쿠폰", func(t *testing.T) {
		repo, svc := newCouponFixture()
		repo.On("FindByCode", mock.Anything, "NOPE").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Validate(context.Background(), &domain.ValidateCouponRequest{Code: "NOPE", Amount: 100})

		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestCouponService_Create(t *testing.T) {
	t.Run("성공 - 코드 정규화 후 생성", func(t *testing.T) {
		repo, svc := newCouponFixture()
		repo.On("FindByCode", mock.Anything, "WELCOME").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Coupon) bool {
			return c.Code == "WELCOME" && c.IsActive
		})).Return(nil)

		got, err := svc.Create(context.Background(), &domain.CreateCouponRequest{
			Code: " welcome ", DiscountType: "fixed", DiscountValue: decimal.NewFromInt(1000),
		})

		require.NoError(t, err)
		assert.Equal(t, "WELCOME", got.Code)
	})

	t.Run("실패 - 100% 초과 정률", func(t *testing.T) {
		repo, svc := newCouponFixture()
		repo.On("FindByCode", mock.Anything, "BAD").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(context.Background(), &domain.CreateCouponRequest{
			Code: "BAD", DiscountType: "percent", DiscountValue: decimal.NewFromInt(150),
		})

		assert.ErrorIs(t, err, pricing.ErrCouponMalformed)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("실패 - 중복 코드", func(t *testing.T) {
		repo, svc := newCouponFixture()
		repo.On("FindByCode", mock.Anything, "DUP").Return(&domain.Coupon{Code: "DUP"}, nil)

		_, err := svc.Create(context.Background(), &domain.CreateCouponRequest{
			Code: "dup", DiscountType: "fixed", DiscountValue: decimal.NewFromInt(10),
		})

		assert.ErrorIs(t, err, ErrCouponCodeTaken)
	})
}

func TestInstallmentPlanService(t *testing.T) {
	t.Run("성공 - 플랜 생성", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		svc := NewInstallmentPlanService(repo)
		first := decimal.NewFromInt(25)
		repo.On("FindActiveByName", mock.Anything, "4x").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.InstallmentPlan) bool {
			return p.Name == "4x" && p.Installments == 4 && p.FirstInstallmentPercent.Valid && p.IsActive
		})).Return(nil)

		plan, err := svc.Create(context.Background(), &domain.CreateInstallmentPlanRequest{
			Name: "4X", Installments: 4, DiscountPercent: decimal.NewFromInt(2), FirstInstallmentPercent: &first,
		})

		require.NoError(t, err)
		assert.True(t, plan.FirstInstallmentPercent.Decimal.Equal(first))
	})

	t.Run("실패 - 할인율 범위 초과", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		svc := NewInstallmentPlanService(repo)
		repo.On("FindActiveByName", mock.Anything, "bad").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(context.Background(), &domain.CreateInstallmentPlanRequest{
			Name: "bad", Installments: 2, DiscountPercent: decimal.NewFromInt(120),
		})

		var verr *pricing.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "discount_percent", verr.Field)
	})

	t.Run("실패 - 이름 중복", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		svc := NewInstallmentPlanService(repo)
		repo.On("FindActiveByName", mock.Anything, "2x").Return(&domain.InstallmentPlan{Name: "2x"}, nil)

		_, err := svc.Create(context.Background(), &domain.CreateInstallmentPlanRequest{Name: "2x", Installments: 2})

		assert.ErrorIs(t, err, ErrPlanNameTaken)
	})

	t.Run("성공 - 부분 수정", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		svc := NewInstallmentPlanService(repo)
		inactive := false
		repo.On("FindByID", mock.Anything, uint64(3)).Return(&domain.InstallmentPlan{ID: 3, Name: "3x", Installments: 3, IsActive: true}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.InstallmentPlan) bool {
			return !p.IsActive && p.Installments == 3
		})).Return(nil)

		plan, err := svc.Update(context.Background(), 3, &domain.UpdateInstallmentPlanRequest{IsActive: &inactive})

		require.NoError(t, err)
		assert.False(t, plan.IsActive)
	})

	t.Run("실패 - 없는 플랜 삭제", func(t *testing.T) {
		repo := new(MockInstallmentPlanRepository)
		svc := NewInstallmentPlanService(repo)
		repo.On("Delete", mock.Anything, uint64(9)).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), 9), ErrPlanNotFound)
	})
}

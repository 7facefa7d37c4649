// Package pricing computes what a learner owes for a course under an
// installment plan. Every function here is pure.
package pricing

import (
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// 관찰된 정책: 2회 50%, 3회 30%
	defaultFirstPercent = map[int]decimal.Decimal{
		1: hundred,
		2: decimal.NewFromInt(50),
		3: decimal.NewFromInt(30),
	}
)

// DefaultFirstInstallmentPercent 플랜에 첫 회차 비율이 없을 때 사용하는 기본값
func DefaultFirstInstallmentPercent(installments int) decimal.Decimal {
	if p, ok := defaultFirstPercent[installments]; ok {
		return p
	}
	if installments < 1 {
		return hundred
	}
	return hundred.Div(decimal.NewFromInt(int64(installments)))
}

// FirstInstallmentPercent 플랜의 첫 회차 비율 (원래 수강료 기준)
func FirstInstallmentPercent(plan *domain.InstallmentPlan) decimal.Decimal {
	if plan.FirstInstallmentPercent.Valid {
		return plan.FirstInstallmentPercent.Decimal
	}
	return DefaultFirstInstallmentPercent(plan.Installments)
}

// ValidatePlan 플랜 설정값 검증
func ValidatePlan(plan *domain.InstallmentPlan) error {
	if plan == nil {
		return nil
	}
	if plan.Installments < 1 {
		return invalid("installments", "must be at least 1, got %d", plan.Installments)
	}
	if plan.DiscountPercent.IsNegative() || plan.DiscountPercent.GreaterThan(hundred) {
		return invalid("discount_percent", "must be between 0 and 100, got %s", plan.DiscountPercent)
	}
	if plan.FirstInstallmentPercent.Valid {
		p := plan.FirstInstallmentPercent.Decimal
		if !p.IsPositive() || p.GreaterThan(hundred) {
			return invalid("first_installment_percent", "must be in (0, 100], got %s", p)
		}
	}
	return nil
}

// Compute 수강료와 플랜으로 할인액, 최종 결제액, 회차별 금액을 계산한다.
//
// plan 이 nil 이면 할인 없는 일시불로 본다. coupon 은 금액에 반영하지 않고
// 최종 결제액 기준 적용 결과만 함께 돌려준다.
func Compute(courseFee domain.Money, plan *domain.InstallmentPlan, coupon *domain.Coupon, now time.Time) (*domain.PricingResult, error) {
	if courseFee <= 0 {
		return nil, invalid("course_fee", "must be positive, got %s", courseFee)
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	result := &domain.PricingResult{
		CourseFee: courseFee,
		PlanName:  domain.PlanNameFull,
	}

	installments := 1
	if plan != nil {
		result.PlanName = plan.Name
		installments = plan.Installments
		result.InstallmentDiscountAmount = courseFee.MulPercent(plan.DiscountPercent)
	}
	result.FinalPayableAmount = domain.MaxMoney(0, courseFee-result.InstallmentDiscountAmount)

	if installments <= 1 {
		result.FirstInstallmentAmount = result.FinalPayableAmount
		result.Schedule = []domain.Money{result.FinalPayableAmount}
	} else {
		split(result, courseFee, installments, FirstInstallmentPercent(plan))
	}

	if coupon != nil {
		applied, err := ApplyCoupon(result.FinalPayableAmount, coupon, now)
		if err != nil {
			result.CouponError = err.Error()
		} else {
			result.Coupon = applied
		}
	}

	return result, nil
}

// split 첫 회차는 원래 수강료 기준 비율, 나머지는 균등 분할
func split(r *domain.PricingResult, courseFee domain.Money, installments int, firstPercent decimal.Decimal) {
	rest := installments - 1

	first := domain.MinMoney(r.FinalPayableAmount, courseFee.MulPercent(firstPercent))
	remaining := domain.MaxMoney(0, r.FinalPayableAmount-first)
	subsequent := domain.MoneyFromDecimal(remaining.Decimal().Div(decimal.NewFromInt(int64(rest))))

	r.FirstInstallmentAmount = first
	r.SubsequentInstallmentAmount = subsequent
	r.NumberOfSubsequentInstallments = rest

	schedule := make([]domain.Money, 0, installments)
	schedule = append(schedule, first)
	left := remaining
	for i := 0; i < rest-1; i++ {
		amount := domain.MinMoney(subsequent, left)
		schedule = append(schedule, amount)
		left -= amount
	}
	r.Schedule = append(schedule, left)
}

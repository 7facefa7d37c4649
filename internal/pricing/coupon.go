package pricing

import (
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
)

// ApplyCoupon 금액에 쿠폰을 적용한다. 할인액은 금액을 넘지 않는다.
func ApplyCoupon(amount domain.Money, coupon *domain.Coupon, now time.Time) (*domain.CouponApplication, error) {
	if coupon == nil {
		return nil, ErrCouponRequired
	}
	if amount < 0 {
		return nil, invalid("amount", "must not be negative, got %s", amount)
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if coupon.IsExpired(now) {
		return nil, ErrCouponExpired
	}
	if amount < coupon.MinAmount {
		return nil, ErrCouponMinAmount
	}

	discount, err := CouponDiscount(amount, coupon)
	if err != nil {
		return nil, err
	}

	return &domain.CouponApplication{
		Code:             coupon.Code,
		OriginalAmount:   amount,
		DiscountAmount:   discount,
		DiscountedAmount: amount - discount,
	}, nil
}

// CouponDiscount 조건 검사 없이 할인액만 계산
func CouponDiscount(amount domain.Money, coupon *domain.Coupon) (domain.Money, error) {
	if coupon.DiscountValue.IsNegative() {
		return 0, ErrCouponMalformed
	}

	var discount domain.Money
	switch coupon.DiscountType {
	case domain.DiscountTypePercent:
		if coupon.DiscountValue.GreaterThan(hundred) {
			return 0, ErrCouponMalformed
		}
		discount = amount.MulPercent(coupon.DiscountValue)
		if coupon.MaxDiscount != nil && *coupon.MaxDiscount > 0 {
			discount = domain.MinMoney(discount, *coupon.MaxDiscount)
		}
	case domain.DiscountTypeFixed:
		discount = domain.MoneyFromDecimal(coupon.DiscountValue)
	default:
		return 0, ErrCouponMalformed
	}

	return domain.MinMoney(discount, amount), nil
}

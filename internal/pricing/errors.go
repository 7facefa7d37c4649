package pricing

import "fmt"

// ValidationError 입력값 검증 실패 (영속화 전에 거부)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// 쿠폰 에러 정의
var (
	ErrCouponRequired  = &ValidationError{Field: "coupon", Message: "coupon is required"}
	ErrCouponInactive  = &ValidationError{Field: "coupon", Message: "coupon is inactive"}
	ErrCouponExpired   = &ValidationError{Field: "coupon", Message: "coupon has expired"}
	ErrCouponMinAmount = &ValidationError{Field: "coupon", Message: "amount is below the coupon minimum"}
	ErrCouponMalformed = &ValidationError{Field: "coupon", Message: "coupon discount is malformed"}
)

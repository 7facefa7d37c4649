package domain

// PricingResult 가격 계산 결과
type PricingResult struct {
	CourseFee                      Money `json:"course_fee"`
	InstallmentDiscountAmount      Money `json:"installment_discount_amount"`
	FinalPayableAmount             Money `json:"final_payable_amount"`
	FirstInstallmentAmount         Money `json:"first_installment_amount"`
	SubsequentInstallmentAmount    Money `json:"subsequent_installment_amount"`
	NumberOfSubsequentInstallments int   `json:"number_of_subsequent_installments"`

	// 회차별 청구 금액 (마지막 회차가 반올림 차이를 흡수해 합계가 FinalPayableAmount와 같다)
	Schedule []Money `json:"schedule"`

	PlanName string `json:"plan_name"`

	// 쿠폰은 참고용 평가만 하고 금액에 반영하지 않는다
	Coupon      *CouponApplication `json:"coupon,omitempty"`
	CouponError string             `json:"coupon_error,omitempty"`
}

// AmountDue 회차별 결제 금액 (1부터 시작)
func (r *PricingResult) AmountDue(installmentNumber int) (Money, bool) {
	if installmentNumber < 1 || installmentNumber > len(r.Schedule) {
		return 0, false
	}
	return r.Schedule[installmentNumber-1], true
}

// TotalInstallments 전체 회차 수
func (r *PricingResult) TotalInstallments() int {
	return r.NumberOfSubsequentInstallments + 1
}

package domain

import (
	"time"

	"github.com/codecraft/institute-backend/internal/statemachine"
)

// PaymentStatus 결제 상태
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // 게이트웨이 응답 대기
	PaymentStatusCompleted PaymentStatus = "completed" // 결제 완료
	PaymentStatusFailed    PaymentStatus = "failed"    // 실패
	PaymentStatusCancelled PaymentStatus = "cancelled" // 사용자 취소 또는 만료
	PaymentStatusRefund    PaymentStatus = "refund"    // 환불
)

// PaymentLifecycle 결제 상태 전이표 (pending 에서 종료 상태로 한 번만 이동)
var PaymentLifecycle = statemachine.New(PaymentStatusPending, map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusCancelled,
		PaymentStatusRefund,
	},
})

// IsValid 알려진 상태인지 확인
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusCancelled, PaymentStatusRefund:
		return true
	}
	return false
}

// IsTerminal 종료 상태 여부
func (s PaymentStatus) IsTerminal() bool {
	return PaymentLifecycle.IsTerminal(s)
}

// Payment 결제 엔티티
type Payment struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	TransactionID string `gorm:"column:transaction_id;size:64;uniqueIndex;not null" json:"transaction_id"`
	Amount        Money  `gorm:"column:amount;not null" json:"amount"`
	CourseID      uint64 `gorm:"column:course_id;index;not null" json:"course_id"`

	// 결제자 스냅샷
	UserID     string `gorm:"column:user_id;size:64;index;not null" json:"user_id"`
	UserName   string `gorm:"column:user_name;size:100" json:"user_name"`
	UserEmail  string `gorm:"column:user_email;size:255" json:"user_email"`
	UserMobile string `gorm:"column:user_mobile;size:30" json:"user_mobile"`

	Status PaymentStatus `gorm:"column:status;size:20;index;not null;default:'pending'" json:"status"`

	// 관리자 확인
	Checking  bool       `gorm:"column:checking;default:false" json:"checking"`
	CheckedAt *time.Time `gorm:"column:checked_at" json:"checked_at,omitempty"`
	CheckedBy string     `gorm:"column:checked_by;size:64" json:"checked_by,omitempty"`

	// IPN
	IPNReceived  bool `gorm:"column:ipn_received;default:false" json:"ipn_received"`
	IPNValidated bool `gorm:"column:ipn_validated;default:false" json:"ipn_validated"`

	// 분할 납부
	IsInstallment     bool   `gorm:"column:is_installment;default:false" json:"is_installment"`
	InstallmentPlan   string `gorm:"column:installment_plan;size:50" json:"installment_plan,omitempty"`
	InstallmentNumber int    `gorm:"column:installment_number;default:1" json:"installment_number"`
	TotalInstallments int    `gorm:"column:total_installments;default:1" json:"total_installments"`

	// 가격 스냅샷
	OriginalAmount      Money `gorm:"column:original_amount" json:"original_amount"`
	InstallmentDiscount Money `gorm:"column:installment_discount" json:"installment_discount"`
	TotalPayable        Money `gorm:"column:total_payable" json:"total_payable"`

	// 쿠폰
	CouponCode     string `gorm:"column:coupon_code;size:50" json:"coupon_code,omitempty"`
	CouponDiscount Money  `gorm:"column:coupon_discount" json:"coupon_discount"`

	// 게이트웨이 세션
	SessionKey     string `gorm:"column:sessionkey;size:255" json:"sessionkey,omitempty"`
	GatewayPageURL string `gorm:"column:gateway_page_url;size:500" json:"gateway_page_url,omitempty"`
	SuccessURL     string `gorm:"column:success_url;size:500" json:"success_url,omitempty"`
	FailURL        string `gorm:"column:fail_url;size:500" json:"fail_url,omitempty"`
	CancelURL      string `gorm:"column:cancel_url;size:500" json:"cancel_url,omitempty"`

	// 검증 결과
	ValID             string `gorm:"column:val_id;size:100" json:"val_id,omitempty"`
	BankTransactionID string `gorm:"column:bank_transaction_id;size:100" json:"bank_transaction_id,omitempty"`
	CardType          string `gorm:"column:card_type;size:50" json:"card_type,omitempty"`
	CardIssuer        string `gorm:"column:card_issuer;size:100" json:"card_issuer,omitempty"`

	// 진단
	FailReason string `gorm:"column:fail_reason;size:500" json:"fail_reason,omitempty"`
	RiskLevel  string `gorm:"column:risk_level;size:10" json:"risk_level,omitempty"`
	RiskTitle  string `gorm:"column:risk_title;size:100" json:"risk_title,omitempty"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName GORM 테이블명
func (Payment) TableName() string {
	return "payments"
}

// PaymentOutcome 게이트웨이 검증 후 기록할 종료 상태와 필드
type PaymentOutcome struct {
	Status            PaymentStatus
	IPNReceived       bool
	IPNValidated      bool
	ValID             string
	BankTransactionID string
	CardType          string
	CardIssuer        string
	FailReason        string
	RiskLevel         string
	RiskTitle         string
	CompletedAt       *time.Time
}

// InitiatePaymentRequest 결제 시작 요청 DTO
type InitiatePaymentRequest struct {
	CourseID          uint64 `json:"course_id" binding:"required" validate:"required"`
	PlanName          string `json:"plan_name" validate:"omitempty,max=50"`
	InstallmentNumber int    `json:"installment_number" validate:"omitempty,gte=1,lte=24"`
	// 클라이언트가 계산한 이번 결제 금액 (선택, 서버 계산값과 다르면 거부)
	Amount     *Money `json:"amount"`
	CouponCode string `json:"coupon_code" validate:"omitempty,max=50"`

	Name   string `json:"name" binding:"required" validate:"required,max=100"`
	Email  string `json:"email" binding:"required" validate:"required,email"`
	Mobile string `json:"mobile" binding:"required" validate:"required,min=6,max=30"`

	// JWT에서 채움
	UserID string `json:"-" validate:"required"`
}

// InitiatePaymentResponse 결제 시작 응답 DTO
type InitiatePaymentResponse struct {
	GatewayURL    string `json:"gateway_url"`
	TransactionID string `json:"transaction_id"`
	Amount        Money  `json:"amount"`
}

// VerifyPaymentRequest 수동 검증 요청 DTO
type VerifyPaymentRequest struct {
	ValID string `json:"val_id" form:"val_id"`
}

// PaymentListRequest 결제 목록 조회 요청
type PaymentListRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending completed failed cancelled refund"`
	Checking *bool  `form:"checking"`
	CourseID uint64 `form:"course_id"`
	UserID   string `form:"-"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// PaymentStatusSummary 상태별 집계
type PaymentStatusSummary struct {
	Status PaymentStatus `json:"status"`
	Count  int64         `json:"count"`
	Amount Money         `json:"amount"`
}

// PaymentSummary 결제 집계 (매출 리포트)
type PaymentSummary struct {
	ByStatus  []PaymentStatusSummary `json:"by_status"`
	Revenue   Money                  `json:"revenue"`
	Unchecked int64                  `json:"unchecked"`
}

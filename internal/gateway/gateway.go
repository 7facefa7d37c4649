// Package gateway talks to the hosted payment page provider: it opens checkout
// sessions and re-verifies transactions reported by instant payment notifications.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/codecraft/institute-backend/internal/domain"
)

// 호출 구분 (메트릭 라벨, 에러 메시지)
const (
	OpCreateSession = "create_session"
	OpValidate      = "validate"
	OpQuery         = "query"
)

// 게이트웨이 에러 정의
var (
	ErrSessionRejected  = errors.New("gateway rejected session request")
	ErrUnexpectedStatus = errors.New("unexpected gateway http status")
	ErrMalformed        = errors.New("malformed gateway response")
	ErrNotFound         = errors.New("transaction not found at gateway")
)

// Error 게이트웨이 호출 실패 (타임아웃, 네트워크, 거절 응답)
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Gateway 결제 게이트웨이 인터페이스
type Gateway interface {
	// CreateSession 결제창 세션 생성
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)

	// ValidateByValID IPN의 val_id로 거래 검증
	ValidateByValID(ctx context.Context, valID string) (*Verification, error)

	// QueryByTranID 가맹점 거래번호로 거래 조회
	QueryByTranID(ctx context.Context, tranID string) (*Verification, error)

	// VerifyNotification IPN 서명 검증
	VerifyNotification(n *Notification) error
}

// SessionRequest 세션 생성 요청
type SessionRequest struct {
	TransactionID   string
	Amount          domain.Money
	ProductName     string
	ProductCategory string

	CustomerName   string
	CustomerEmail  string
	CustomerMobile string

	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string

	// 게이트웨이가 IPN에 그대로 되돌려주는 값
	ValueA string
	ValueB string
}

// Session 세션 생성 응답
type Session struct {
	SessionKey     string
	GatewayPageURL string
	SuccessURL     string
	FailURL        string
	CancelURL      string
}

// 검증 API 상태값
const (
	StatusValid       = "VALID"
	StatusValidated   = "VALIDATED"
	StatusFailed      = "FAILED"
	StatusCancelled   = "CANCELLED"
	StatusUnattempted = "UNATTEMPTED"
	StatusExpired     = "EXPIRED"
	StatusPending     = "PENDING"
	StatusInvalid     = "INVALID_TRANSACTION"
)

// Verification 게이트웨이 검증 결과
type Verification struct {
	Status            string
	TransactionID     string
	ValID             string
	Amount            domain.Money
	Currency          string
	BankTransactionID string
	CardType          string
	CardIssuer        string
	RiskLevel         string
	RiskTitle         string
	Error             string
}

// IsValid 결제 성공으로 확인됐는지 (VALIDATED는 이미 한 번 검증된 거래)
func (v *Verification) IsValid() bool {
	return v.Status == StatusValid || v.Status == StatusValidated
}

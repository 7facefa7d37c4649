package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/codecraft/institute-backend/internal/domain"
)

// NotificationStatus IPN 상태값
type NotificationStatus string

const (
	NotifyValid       NotificationStatus = "VALID"
	NotifyValidated   NotificationStatus = "VALIDATED"
	NotifyFailed      NotificationStatus = "FAILED"
	NotifyCancelled   NotificationStatus = "CANCELLED"
	NotifyUnattempted NotificationStatus = "UNATTEMPTED"
	NotifyExpired     NotificationStatus = "EXPIRED"
)

// ErrMissingTranID tran_id 없는 알림
var ErrMissingTranID = errors.New("notification has no tran_id")

// Notification 게이트웨이 IPN 페이로드
type Notification struct {
	Status        NotificationStatus
	TransactionID string
	ValID         string
	Amount        domain.Money
	StoreAmount   domain.Money
	Currency      string
	TranDate      string

	BankTransactionID string
	CardType          string
	CardNo            string
	CardIssuer        string
	CardBrand         string
	CardIssuerCountry string

	RiskLevel string
	RiskTitle string
	Error     string

	VerifySign string
	VerifyKey  string

	ValueA string
	ValueB string
	ValueC string
	ValueD string

	// 알려지지 않은 필드
	Extra map[string]string

	// 서명 검증용 원본 폼 값
	raw url.Values
}

// Recognized 처리 가능한 상태값인지
func (s NotificationStatus) Recognized() bool {
	switch s {
	case NotifyValid, NotifyValidated, NotifyFailed, NotifyCancelled, NotifyUnattempted, NotifyExpired:
		return true
	}
	return false
}

// IsSuccess 성공 보고 여부 (검증 API로 재확인 필요)
func (s NotificationStatus) IsSuccess() bool {
	return s == NotifyValid || s == NotifyValidated
}

// ParseNotification 폼 값에서 알림 구조체 생성
func ParseNotification(form url.Values) (*Notification, error) {
	n := &Notification{Extra: make(map[string]string), raw: form}

	var amountErr error
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		v := strings.TrimSpace(values[0])

		switch key {
		case "status":
			n.Status = NotificationStatus(strings.ToUpper(v))
		case "tran_id":
			n.TransactionID = v
		case "val_id":
			n.ValID = v
		case "amount":
			n.Amount, amountErr = parseAmount(v)
		case "store_amount":
			n.StoreAmount, _ = parseAmount(v)
		case "currency":
			n.Currency = v
		case "tran_date":
			n.TranDate = v
		case "bank_tran_id":
			n.BankTransactionID = v
		case "card_type":
			n.CardType = v
		case "card_no":
			n.CardNo = v
		case "card_issuer":
			n.CardIssuer = v
		case "card_brand":
			n.CardBrand = v
		case "card_issuer_country":
			n.CardIssuerCountry = v
		case "risk_level":
			n.RiskLevel = v
		case "risk_title":
			n.RiskTitle = v
		case "error":
			n.Error = v
		case "verify_sign":
			n.VerifySign = v
		case "verify_key":
			n.VerifyKey = v
		case "value_a":
			n.ValueA = v
		case "value_b":
			n.ValueB = v
		case "value_c":
			n.ValueC = v
		case "value_d":
			n.ValueD = v
		default:
			n.Extra[key] = v
		}
	}

	if n.TransactionID == "" {
		return n, ErrMissingTranID
	}
	if amountErr != nil {
		return n, fmt.Errorf("notification amount: %w", amountErr)
	}
	return n, nil
}

// Fields 감사 로그 저장용 평면 맵 (카드 번호는 제외)
func (n *Notification) Fields() map[string]string {
	out := map[string]string{
		"status":       string(n.Status),
		"tran_id":      n.TransactionID,
		"val_id":       n.ValID,
		"amount":       n.Amount.String(),
		"currency":     n.Currency,
		"tran_date":    n.TranDate,
		"bank_tran_id": n.BankTransactionID,
		"card_type":    n.CardType,
		"card_issuer":  n.CardIssuer,
		"card_brand":   n.CardBrand,
		"risk_level":   n.RiskLevel,
		"risk_title":   n.RiskTitle,
		"error":        n.Error,
	}
	for k, v := range n.Extra {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// rawValue 게이트웨이가 보낸 그대로의 값
func (n *Notification) rawValue(key string) string {
	if n.raw == nil {
		return ""
	}
	return n.raw.Get(key)
}

func parseAmount(v string) (domain.Money, error) {
	if v == "" {
		return 0, nil
	}
	return domain.ParseMoney(v)
}

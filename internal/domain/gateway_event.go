package domain

import (
	"time"

	"gorm.io/datatypes"
)

// GatewayEventType 게이트웨이 이벤트 유형
type GatewayEventType string

const (
	GatewayEventIPN          GatewayEventType = "ipn"
	GatewayEventManualVerify GatewayEventType = "manual_verify"
	GatewayEventSweep        GatewayEventType = "sweep"
)

// GatewayEventOutcome 처리 결과
type GatewayEventOutcome string

const (
	OutcomeProcessed GatewayEventOutcome = "processed" // 상태 전이 완료
	OutcomeDuplicate GatewayEventOutcome = "duplicate" // 이미 종료된 결제에 대한 재전송
	OutcomePending   GatewayEventOutcome = "pending"   // 검증 실패로 pending 유지
	OutcomeRejected  GatewayEventOutcome = "rejected"  // 서명 불일치, 게이트웨이 미확인, 알 수 없는 상태값
	OutcomeError     GatewayEventOutcome = "error"
)

// GatewayEvent 게이트웨이 알림 감사 로그 (추가 전용)
type GatewayEvent struct {
	ID            uint64              `gorm:"primaryKey" json:"id"`
	PaymentID     *uint64             `gorm:"column:payment_id;index" json:"payment_id,omitempty"`
	TransactionID string              `gorm:"column:transaction_id;size:64;index" json:"transaction_id"`
	ValID         string              `gorm:"column:val_id;size:100" json:"val_id,omitempty"`
	EventType     GatewayEventType    `gorm:"column:event_type;size:20;not null" json:"event_type"`
	GatewayStatus string              `gorm:"column:gateway_status;size:30" json:"gateway_status"`
	Outcome       GatewayEventOutcome `gorm:"column:outcome;size:20;not null" json:"outcome"`
	Error         string              `gorm:"column:error;size:500" json:"error,omitempty"`
	Payload       datatypes.JSON      `gorm:"column:payload" json:"payload,omitempty"`
	ReceivedAt    time.Time           `gorm:"column:received_at;index" json:"received_at"`
}

// TableName GORM 테이블명
func (GatewayEvent) TableName() string {
	return "payment_gateway_events"
}

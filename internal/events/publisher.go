// Package events publishes payment side effects (enrollment, receipts,
// certificate eligibility) to other services over Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel Redis 채널
const DefaultChannel = "institute:payments"

// 이벤트 유형
const (
	TypePaymentCompleted = "payment.completed"
	TypePaymentClosed    = "payment.closed" // failed, cancelled, refund
)

// PaymentEvent 결제 상태 변경 이벤트
type PaymentEvent struct {
	Type              string               `json:"type"`
	PaymentID         uint64               `json:"payment_id"`
	TransactionID     string               `json:"transaction_id"`
	UserID            string               `json:"user_id"`
	CourseID          uint64               `json:"course_id"`
	Status            domain.PaymentStatus `json:"status"`
	Amount            domain.Money         `json:"amount"`
	InstallmentPlan   string               `json:"installment_plan,omitempty"`
	InstallmentNumber int                  `json:"installment_number"`
	TotalInstallments int                  `json:"total_installments"`
	OccurredAt        time.Time            `json:"occurred_at"`
}

// NewPaymentEvent 종료 상태에 맞는 이벤트 생성
func NewPaymentEvent(p *domain.Payment, status domain.PaymentStatus, at time.Time) *PaymentEvent {
	eventType := TypePaymentClosed
	if status == domain.PaymentStatusCompleted {
		eventType = TypePaymentCompleted
	}
	return &PaymentEvent{
		Type:              eventType,
		PaymentID:         p.ID,
		TransactionID:     p.TransactionID,
		UserID:            p.UserID,
		CourseID:          p.CourseID,
		Status:            status,
		Amount:            p.Amount,
		InstallmentPlan:   p.InstallmentPlan,
		InstallmentNumber: p.InstallmentNumber,
		TotalInstallments: p.TotalInstallments,
		OccurredAt:        at,
	}
}

// Publisher 이벤트 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context, event *PaymentEvent) error
}

// RedisPublisher Redis pub/sub 발행자
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher 생성자. client 가 nil 이면 아무것도 하지 않는 발행자 반환
func NewRedisPublisher(client *redis.Client, channel string) Publisher {
	if client == nil {
		return NopPublisher{}
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Publish JSON 으로 직렬화해 채널에 발행
func (p *RedisPublisher) Publish(ctx context.Context, event *PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

// NopPublisher Redis 미사용 환경
type NopPublisher struct{}

// Publish no-op
func (NopPublisher) Publish(context.Context, *PaymentEvent) error {
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Payment{ID: 3, TransactionID: "TXN-1", UserID: "u1", CourseID: 7, Amount: domain.MoneyFromUnits(25000), InstallmentNumber: 1, TotalInstallments: 2}

	completed := NewPaymentEvent(p, domain.PaymentStatusCompleted, at)
	assert.Equal(t, TypePaymentCompleted, completed.Type)
	assert.Equal(t, domain.PaymentStatusCompleted, completed.Status)

	failed := NewPaymentEvent(p, domain.PaymentStatusFailed, at)
	assert.Equal(t, TypePaymentClosed, failed.Type)

	data, err := json.Marshal(completed)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":25000.00`)
	assert.Contains(t, string(data), `"type":"payment.completed"`)
}

func TestNewRedisPublisher(t *testing.T) {
	t.Run("Redis 없으면 no-op", func(t *testing.T) {
		pub := NewRedisPublisher(nil, "")
		assert.IsType(t, NopPublisher{}, pub)
		assert.NoError(t, pub.Publish(context.Background(), &PaymentEvent{}))
	})

	t.Run("Redis 연결 실패는 에러 반환", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
		defer client.Close()

		pub := NewRedisPublisher(client, "")
		rp, ok := pub.(*RedisPublisher)
		require.True(t, ok)
		assert.Equal(t, DefaultChannel, rp.channel)
		assert.Error(t, pub.Publish(context.Background(), &PaymentEvent{Type: TypePaymentCompleted}))
	})
}

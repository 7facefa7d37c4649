package repository

import (
	"context"

	"github.com/codecraft/institute-backend/internal/domain"
	"gorm.io/gorm"
)

// GatewayEventRepository 게이트웨이 알림 감사 로그 저장소
type GatewayEventRepository interface {
	Create(ctx context.Context, event *domain.GatewayEvent) error
	ListByTransactionID(ctx context.Context, tranID string) ([]*domain.GatewayEvent, error)
}

type gatewayEventRepository struct {
	db *gorm.DB
}

// NewGatewayEventRepository 생성자
func NewGatewayEventRepository(db *gorm.DB) GatewayEventRepository {
	return &gatewayEventRepository{db: db}
}

func (r *gatewayEventRepository) Create(ctx context.Context, event *domain.GatewayEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *gatewayEventRepository) ListByTransactionID(ctx context.Context, tranID string) ([]*domain.GatewayEvent, error) {
	var events []*domain.GatewayEvent
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", tranID).
		Order("received_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

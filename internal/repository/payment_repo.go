package repository

import (
	"context"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"gorm.io/gorm"
)

// SessionFields 게이트웨이 세션 생성 후 저장할 값
type SessionFields struct {
	SessionKey     string
	GatewayPageURL string
	SuccessURL     string
	FailURL        string
	CancelURL      string
}

// PaymentRepository 결제 저장소 인터페이스
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error

	// 조회
	FindByID(ctx context.Context, id uint64) (*domain.Payment, error)
	FindByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error)
	FindCompleted(ctx context.Context, userID string, courseID uint64) (*domain.Payment, error)
	List(ctx context.Context, req *domain.PaymentListRequest) ([]*domain.Payment, int64, error)
	Summary(ctx context.Context) (*domain.PaymentSummary, error)
	FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Payment, error)

	// pending 상태에서만 적용되는 갱신
	UpdateSession(ctx context.Context, id uint64, s SessionFields) error
	RecordFailReason(ctx context.Context, id uint64, reason string) error
	MarkIPNReceived(ctx context.Context, id uint64, failReason string) error

	// TransitionFromPending status = pending 조건부 갱신. 다른 요청이 먼저 전이시켰으면 false
	TransitionFromPending(ctx context.Context, id uint64, outcome *domain.PaymentOutcome) (bool, error)

	// MarkChecked checking = false 조건부 갱신. 이미 확인된 건이면 false
	MarkChecked(ctx context.Context, id uint64, checkedBy string, at time.Time) (bool, error)
}

// paymentRepository GORM 구현체
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 생성자
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create 결제 생성 (항상 pending 으로 시작)
func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	p.Status = domain.PaymentLifecycle.Initial()
	p.Checking = false
	p.IPNReceived = false
	p.IPNValidated = false
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID ID로 조회
func (r *paymentRepository) FindByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByTransactionID 거래번호로 조회
func (r *paymentRepository) FindByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", tranID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindCompleted 사용자의 강의 결제 완료 건 (가장 최근)
func (r *paymentRepository) FindCompleted(ctx context.Context, userID string, courseID uint64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, domain.PaymentStatusCompleted).
		Order("completed_at DESC, id DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List 필터/페이지네이션 목록
func (r *paymentRepository) List(ctx context.Context, req *domain.PaymentListRequest) ([]*domain.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Payment{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Checking != nil {
		query = query.Where("checking = ?", *req.Checking)
	}
	if req.CourseID != 0 {
		query = query.Where("course_id = ?", req.CourseID)
	}
	if req.UserID != "" {
		query = query.Where("user_id = ?", req.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(req.Page, req.Limit)
	var payments []*domain.Payment
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Summary 상태별 건수와 금액 합계
func (r *paymentRepository) Summary(ctx context.Context) (*domain.PaymentSummary, error) {
	var rows []struct {
		Status string
		Count  int64
		Amount int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &domain.PaymentSummary{ByStatus: make([]domain.PaymentStatusSummary, 0, len(rows))}
	for _, row := range rows {
		s := domain.PaymentStatusSummary{
			Status: domain.PaymentStatus(row.Status),
			Count:  row.Count,
			Amount: domain.Money(row.Amount),
		}
		if s.Status == domain.PaymentStatusCompleted {
			summary.Revenue = s.Amount
		}
		summary.ByStatus = append(summary.ByStatus, s)
	}

	err = r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("status = ? AND checking = ?", domain.PaymentStatusCompleted, false).
		Count(&summary.Unchecked).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// FindStalePending 오래된 pending 결제
func (r *paymentRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.PaymentStatusPending, createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// UpdateSession 세션 정보 저장
func (r *paymentRepository) UpdateSession(ctx context.Context, id uint64, s SessionFields) error {
	return r.updatePending(ctx, id, map[string]interface{}{
		"sessionkey":       s.SessionKey,
		"gateway_page_url": s.GatewayPageURL,
		"success_url":      s.SuccessURL,
		"fail_url":         s.FailURL,
		"cancel_url":       s.CancelURL,
		"fail_reason":      "",
	})
}

// RecordFailReason pending 결제에 진단 메시지 기록
func (r *paymentRepository) RecordFailReason(ctx context.Context, id uint64, reason string) error {
	return r.updatePending(ctx, id, map[string]interface{}{
		"fail_reason": domain.TruncateText(reason, 500),
	})
}

// MarkIPNReceived IPN 수신 표시 (검증 전)
func (r *paymentRepository) MarkIPNReceived(ctx context.Context, id uint64, failReason string) error {
	return r.updatePending(ctx, id, map[string]interface{}{
		"ipn_received": true,
		"fail_reason":  domain.TruncateText(failReason, 500),
	})
}

func (r *paymentRepository) updatePending(ctx context.Context, id uint64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND status = ?", id, domain.PaymentStatusPending).
		Updates(fields).Error
}

// TransitionFromPending 종료 상태로 전이
func (r *paymentRepository) TransitionFromPending(ctx context.Context, id uint64, o *domain.PaymentOutcome) (bool, error) {
	if err := domain.PaymentLifecycle.Transition(domain.PaymentStatusPending, o.Status); err != nil {
		return false, err
	}

	fields := map[string]interface{}{
		"status":     o.Status,
		"updated_at": time.Now(),
	}
	// 수신 플래그는 올리기만 한다 (정리 작업이 오래된 조회값으로 되돌리지 않도록)
	if o.IPNReceived {
		fields["ipn_received"] = true
		if o.IPNValidated {
			fields["ipn_validated"] = true
		}
	}
	setIfNotEmpty(fields, "val_id", o.ValID)
	setIfNotEmpty(fields, "bank_transaction_id", o.BankTransactionID)
	setIfNotEmpty(fields, "card_type", o.CardType)
	setIfNotEmpty(fields, "card_issuer", o.CardIssuer)
	setIfNotEmpty(fields, "fail_reason", domain.TruncateText(o.FailReason, 500))
	setIfNotEmpty(fields, "risk_level", o.RiskLevel)
	setIfNotEmpty(fields, "risk_title", o.RiskTitle)
	if o.CompletedAt != nil {
		fields["completed_at"] = *o.CompletedAt
	}

	result := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND status IN ?", id, domain.PaymentLifecycle.Sources(o.Status)).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkChecked 관리자 확인 표시
func (r *paymentRepository) MarkChecked(ctx context.Context, id uint64, checkedBy string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND checking = ?", id, false).
		Updates(map[string]interface{}{
			"checking":   true,
			"checked_at": at,
			"checked_by": checkedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func setIfNotEmpty(fields map[string]interface{}, column, value string) {
	if value != "" {
		fields[column] = value
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

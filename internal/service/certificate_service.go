package service

import (
	"context"
	"errors"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/repository"
	pkglogger "github.com/codecraft/institute-backend/pkg/logger"
	"gorm.io/gorm"
)

// 수료증 에러 정의
var (
	ErrCertificateNotFound    = errors.New("certificate application not found")
	ErrCertificateNotEligible = errors.New("no completed payment for this course")
	ErrCertificateExists      = errors.New("certificate application already exists")
	ErrCertificateConflict    = errors.New("certificate application status changed")
)

// CertificateService 수료증 신청, 심사, 발급
type CertificateService interface {
	Apply(ctx context.Context, userID string, courseID uint64) (*domain.CertificateApplication, error)
	List(ctx context.Context, req *domain.CertificateListRequest) ([]*domain.CertificateApplication, int64, error)

	// 관리자 심사
	Approve(ctx context.Context, id uint64, adminID string) (*domain.CertificateApplication, error)
	Issue(ctx context.Context, id uint64, adminID string) (*domain.CertificateApplication, error)
	Reject(ctx context.Context, id uint64, adminID, reason string) (*domain.CertificateApplication, error)
}

type certificateService struct {
	certRepo    repository.CertificateRepository
	paymentRepo repository.PaymentRepository
	now         func() time.Time
}

// NewCertificateService 생성자
func NewCertificateService(certRepo repository.CertificateRepository, paymentRepo repository.PaymentRepository) CertificateService {
	return &certificateService{
		certRepo:    certRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

func (s *certificateService) Apply(ctx context.Context, userID string, courseID uint64) (*domain.CertificateApplication, error) {
	payment, err := s.paymentRepo.FindCompleted(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotEligible
		}
		return nil, err
	}

	_, err = s.certRepo.FindOpen(ctx, userID, courseID)
	if err == nil {
		return nil, ErrCertificateExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app := &domain.CertificateApplication{
		UserID:    userID,
		CourseID:  courseID,
		PaymentID: payment.ID,
	}
	if err := s.certRepo.Create(ctx, app); err != nil {
		// 동시 신청은 유니크 키에서 걸린다
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCertificateExists
		}
		return nil, err
	}
	return app, nil
}

func (s *certificateService) List(ctx context.Context, req *domain.CertificateListRequest) ([]*domain.CertificateApplication, int64, error) {
	return s.certRepo.List(ctx, req)
}

func (s *certificateService) Approve(ctx context.Context, id uint64, adminID string) (*domain.CertificateApplication, error) {
	now := s.now()
	return s.transition(ctx, id, domain.CertificateStatusApproved, adminID, func(*domain.CertificateApplication) map[string]interface{} {
		return map[string]interface{}{"approved_at": now}
	})
}

func (s *certificateService) Issue(ctx context.Context, id uint64, adminID string) (*domain.CertificateApplication, error) {
	now := s.now()
	return s.transition(ctx, id, domain.CertificateStatusIssued, adminID, func(app *domain.CertificateApplication) map[string]interface{} {
		return map[string]interface{}{
			"issued_at":      now,
			"certificate_no": domain.CertificateNumber(now, app.ID),
		}
	})
}

func (s *certificateService) Reject(ctx context.Context, id uint64, adminID, reason string) (*domain.CertificateApplication, error) {
	return s.transition(ctx, id, domain.CertificateStatusRejected, adminID, func(*domain.CertificateApplication) map[string]interface{} {
		return map[string]interface{}{"reject_reason": reason}
	})
}

// transition 현재 상태 기준 조건부 전이. 상태표 위반은 statemachine.ErrInvalidTransition
func (s *certificateService) transition(
	ctx context.Context,
	id uint64,
	to domain.CertificateStatus,
	adminID string,
	fields func(*domain.CertificateApplication) map[string]interface{},
) (*domain.CertificateApplication, error) {
	app, err := s.certRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}

	if err := domain.CertificateLifecycle.Transition(app.Status, to); err != nil {
		return nil, err
	}

	updates := fields(app)
	updates["reviewed_by"] = adminID

	changed, err := s.certRepo.Transition(ctx, id, app.Status, to, updates)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrCertificateConflict
	}

	pkglogger.GetLogger().Info().
		Uint64("certificate_id", id).
		Str("from", string(app.Status)).
		Str("to", string(to)).
		Str("reviewed_by", adminID).
		Msg("certificate application status changed")

	return s.certRepo.FindByID(ctx, id)
}

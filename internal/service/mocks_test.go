package service

import (
	"context"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/events"
	"github.com/codecraft/institute-backend/internal/gateway"
	"github.com/codecraft/institute-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository 결제 저장소 목
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error) {
	args := m.Called(ctx, tranID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindCompleted(ctx context.Context, userID string, courseID uint64) (*domain.Payment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, req *domain.PaymentListRequest) ([]*domain.Payment, int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]*domain.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) Summary(ctx context.Context) (*domain.PaymentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSummary), args.Error(1)
}

func (m *MockPaymentRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Payment, error) {
	args := m.Called(ctx, createdBefore, limit)
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateSession(ctx context.Context, id uint64, s repository.SessionFields) error {
	args := m.Called(ctx, id, s)
	return args.Error(0)
}

func (m *MockPaymentRepository) RecordFailReason(ctx context.Context, id uint64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkIPNReceived(ctx context.Context, id uint64, failReason string) error {
	args := m.Called(ctx, id, failReason)
	return args.Error(0)
}

func (m *MockPaymentRepository) TransitionFromPending(ctx context.Context, id uint64, outcome *domain.PaymentOutcome) (bool, error) {
	args := m.Called(ctx, id, outcome)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) MarkChecked(ctx context.Context, id uint64, checkedBy string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, checkedBy, at)
	return args.Bool(0), args.Error(1)
}

// MockGatewayEventRepository 게이트웨이 이벤트 저장소 목
type MockGatewayEventRepository struct {
	mock.Mock
}

func (m *MockGatewayEventRepository) Create(ctx context.Context, event *domain.GatewayEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockGatewayEventRepository) ListByTransactionID(ctx context.Context, tranID string) ([]*domain.GatewayEvent, error) {
	args := m.Called(ctx, tranID)
	return args.Get(0).([]*domain.GatewayEvent), args.Error(1)
}

// MockCourseRepository 강의 저장소 목
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uint64) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

// MockInstallmentPlanRepository 플랜 저장소 목
type MockInstallmentPlanRepository struct {
	mock.Mock
}

func (m *MockInstallmentPlanRepository) Create(ctx context.Context, plan *domain.InstallmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) Update(ctx context.Context, plan *domain.InstallmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) FindByID(ctx context.Context, id uint64) (*domain.InstallmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) FindActiveByName(ctx context.Context, name string) (*domain.InstallmentPlan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) ListActive(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) ListAll(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.InstallmentPlan), args.Error(1)
}

// MockCouponRepository 쿠폰 저장소 목
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uint64) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) List(ctx context.Context, page, limit int) ([]*domain.Coupon, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*domain.Coupon), args.Get(1).(int64), args.Error(2)
}

// MockCertificateRepository 수료증 저장소 목
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) Create(ctx context.Context, app *domain.CertificateApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindByID(ctx context.Context, id uint64) (*domain.CertificateApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertificateApplication), args.Error(1)
}

func (m *MockCertificateRepository) FindOpen(ctx context.Context, userID string, courseID uint64) (*domain.CertificateApplication, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertificateApplication), args.Error(1)
}

func (m *MockCertificateRepository) List(ctx context.Context, req *domain.CertificateListRequest) ([]*domain.CertificateApplication, int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]*domain.CertificateApplication), args.Get(1).(int64), args.Error(2)
}

func (m *MockCertificateRepository) Transition(ctx context.Context, id uint64, from, to domain.CertificateStatus, fields map[string]interface{}) (bool, error) {
	args := m.Called(ctx, id, from, to, fields)
	return args.Bool(0), args.Error(1)
}

// MockPricingService 가격 서비스 목
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Quote(ctx context.Context, courseID uint64, planName, couponCode string) (*domain.PricingResult, error) {
	args := m.Called(ctx, courseID, planName, couponCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingResult), args.Error(1)
}

// MockGateway 결제 게이트웨이 목
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateSession(ctx context.Context, req *gateway.SessionRequest) (*gateway.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Session), args.Error(1)
}

func (m *MockGateway) ValidateByValID(ctx context.Context, valID string) (*gateway.Verification, error) {
	args := m.Called(ctx, valID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Verification), args.Error(1)
}

func (m *MockGateway) QueryByTranID(ctx context.Context, tranID string) (*gateway.Verification, error) {
	args := m.Called(ctx, tranID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Verification), args.Error(1)
}

func (m *MockGateway) VerifyNotification(n *gateway.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

// MockPublisher 이벤트 발행 목
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event *events.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

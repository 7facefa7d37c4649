package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/events"
	"github.com/codecraft/institute-backend/internal/gateway"
	"github.com/codecraft/institute-backend/internal/metrics"
	"github.com/codecraft/institute-backend/internal/pricing"
	"github.com/codecraft/institute-backend/internal/repository"
	pkglogger "github.com/codecraft/institute-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 결제 에러 정의
var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrPaymentForbidden         = errors.New("payment belongs to another user")
	ErrAmountMismatch           = errors.New("amount does not match the computed installment amount")
	ErrInvalidInstallmentNumber = errors.New("installment number is out of range for the plan")
	ErrNothingToPay             = errors.New("nothing to pay for this installment")
	ErrUnknownNotification      = errors.New("unrecognized gateway notification status")
	ErrMissingValID             = errors.New("successful notification without val_id")
	ErrNotConfirmed             = errors.New("gateway did not confirm the transaction")

	// ErrAlreadyFinalized 종료 상태 결제에 대한 재전송 또는 경쟁 요청. IPN 에서는 정상 응답으로 처리
	ErrAlreadyFinalized = errors.New("payment already reached a terminal status")
)

var requestValidator = validator.New()

// PaymentConfig 결제 콜백 설정
type PaymentConfig struct {
	SuccessURL      string
	FailURL         string
	CancelURL       string
	IPNURL          string
	ProductCategory string
}

// PaymentService 결제 서비스 인터페이스
type PaymentService interface {
	// Initiate pending 결제 생성 후 게이트웨이 세션 요청
	Initiate(ctx context.Context, req *domain.InitiatePaymentRequest) (*domain.InitiatePaymentResponse, error)

	// Reconcile 게이트웨이 IPN 처리
	Reconcile(ctx context.Context, n *gateway.Notification) (*domain.Payment, error)

	// Verify 관리자 수동 검증. valID 가 비면 거래번호로 조회
	Verify(ctx context.Context, tranID, valID string) (*domain.Payment, error)

	// MarkChecked 관리자 확인 표시 (멱등)
	MarkChecked(ctx context.Context, id uint64, adminID string) (*domain.Payment, error)

	// ExpireStale 오래된 pending 결제를 cancelled 로 정리
	ExpireStale(ctx context.Context, olderThan time.Duration, batchSize int) (int, error)

	// 조회
	GetByTransactionID(ctx context.Context, tranID, userID string, isAdmin bool) (*domain.Payment, error)
	List(ctx context.Context, req *domain.PaymentListRequest) ([]*domain.Payment, int64, error)
	Summary(ctx context.Context) (*domain.PaymentSummary, error)
	Events(ctx context.Context, tranID string) ([]*domain.GatewayEvent, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	eventRepo   repository.GatewayEventRepository
	courseRepo  repository.CourseRepository
	pricing     PricingService
	gateway     gateway.Gateway
	publisher   events.Publisher
	config      PaymentConfig
	now         func() time.Time
}

// NewPaymentService 생성자
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	eventRepo repository.GatewayEventRepository,
	courseRepo repository.CourseRepository,
	pricingService PricingService,
	gw gateway.Gateway,
	publisher events.Publisher,
	config PaymentConfig,
) PaymentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if config.ProductCategory == "" {
		config.ProductCategory = "education"
	}
	return &paymentService{
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		courseRepo:  courseRepo,
		pricing:     pricingService,
		gateway:     gw,
		publisher:   publisher,
		config:      config,
		now:         time.Now,
	}
}

// ============================================
// 결제 시작
// ============================================

func (s *paymentService) Initiate(ctx context.Context, req *domain.InitiatePaymentRequest) (*domain.InitiatePaymentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.InstallmentNumber == 0 {
		req.InstallmentNumber = 1
	}

	quote, err := s.pricing.Quote(ctx, req.CourseID, req.PlanName, "")
	if err != nil {
		return nil, err
	}

	due, ok := quote.AmountDue(req.InstallmentNumber)
	if !ok {
		return nil, ErrInvalidInstallmentNumber
	}
	if due <= 0 {
		return nil, ErrNothingToPay
	}
	if req.Amount != nil && *req.Amount != due {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrAmountMismatch, due, *req.Amount)
	}

	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		TransactionID:       newTransactionID(),
		Amount:              due,
		CourseID:            req.CourseID,
		UserID:              req.UserID,
		UserName:            req.Name,
		UserEmail:           req.Email,
		UserMobile:          req.Mobile,
		IsInstallment:       quote.TotalInstallments() > 1,
		InstallmentPlan:     quote.PlanName,
		InstallmentNumber:   req.InstallmentNumber,
		TotalInstallments:   quote.TotalInstallments(),
		OriginalAmount:      quote.CourseFee,
		InstallmentDiscount: quote.InstallmentDiscountAmount,
		TotalPayable:        quote.FinalPayableAmount,
		CouponCode:          normalizeCouponCode(req.CouponCode),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	metrics.PaymentInitiated()

	log := pkglogger.WithTransaction(payment.TransactionID)

	started := time.Now()
	session, err := s.gateway.CreateSession(ctx, &gateway.SessionRequest{
		TransactionID:   payment.TransactionID,
		Amount:          payment.Amount,
		ProductName:     course.Title,
		ProductCategory: s.config.ProductCategory,
		CustomerName:    payment.UserName,
		CustomerEmail:   payment.UserEmail,
		CustomerMobile:  payment.UserMobile,
		SuccessURL:      s.config.SuccessURL,
		FailURL:         s.config.FailURL,
		CancelURL:       s.config.CancelURL,
		IPNURL:          s.config.IPNURL,
		ValueA:          fmt.Sprintf("%d", payment.ID),
		ValueB:          payment.InstallmentPlan,
	})
	metrics.ObserveGateway(gateway.OpCreateSession, started, err)
	if err != nil {
		// 재시도 추적을 위해 결제는 pending 으로 남기고 진단만 기록
		if recErr := s.paymentRepo.RecordFailReason(ctx, payment.ID, err.Error()); recErr != nil {
			log.Error().Err(recErr).Msg("failed to record gateway failure")
		}
		log.Error().Err(err).Uint64("payment_id", payment.ID).Msg("gateway session request failed")
		return nil, err
	}

	err = s.paymentRepo.UpdateSession(ctx, payment.ID, repository.SessionFields{
		SessionKey:     session.SessionKey,
		GatewayPageURL: session.GatewayPageURL,
		SuccessURL:     session.SuccessURL,
		FailURL:        session.FailURL,
		CancelURL:      session.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("store gateway session: %w", err)
	}

	log.Info().
		Uint64("payment_id", payment.ID).
		Str("amount", payment.Amount.String()).
		Str("plan", payment.InstallmentPlan).
		Int("installment", payment.InstallmentNumber).
		Msg("payment initiated")

	return &domain.InitiatePaymentResponse{
		GatewayURL:    session.GatewayPageURL,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
	}, nil
}

// ============================================
// IPN 처리
// ============================================

func (s *paymentService) Reconcile(ctx context.Context, n *gateway.Notification) (*domain.Payment, error) {
	payload := n.Fields()
	log := pkglogger.WithTransaction(n.TransactionID)

	// 서명이 맞지 않는 알림은 결제를 조회하기 전에 거절
	if err := s.gateway.VerifyNotification(n); err != nil {
		s.recordEvent(ctx, nil, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), domain.OutcomeRejected, err, payload)
		log.Warn().Err(err).Msg("ipn signature rejected")
		return nil, err
	}

	payment, err := s.findByTransactionID(ctx, n.TransactionID)
	if err != nil {
		outcome := domain.OutcomeError
		if errors.Is(err, ErrPaymentNotFound) {
			outcome = domain.OutcomeRejected
		}
		s.recordEvent(ctx, nil, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), outcome, err, payload)
		return nil, err
	}

	if payment.Status.IsTerminal() {
		return s.duplicate(ctx, payment, n.ValID, domain.GatewayEventIPN, string(n.Status), payload)
	}

	// 알림 내용은 게이트웨이에 다시 확인한 결과로만 반영
	var v *gateway.Verification
	switch {
	case n.Status.IsSuccess():
		if n.ValID == "" {
			s.recordEvent(ctx, payment, n.TransactionID, "", domain.GatewayEventIPN, string(n.Status), domain.OutcomeRejected, ErrMissingValID, payload)
			return nil, ErrMissingValID
		}
		started := time.Now()
		v, err = s.gateway.ValidateByValID(ctx, n.ValID)
		metrics.ObserveGateway(gateway.OpValidate, started, err)

	case n.Status.Recognized():
		started := time.Now()
		v, err = s.gateway.QueryByTranID(ctx, n.TransactionID)
		metrics.ObserveGateway(gateway.OpQuery, started, err)
		if errors.Is(err, gateway.ErrNotFound) {
			err = fmt.Errorf("%w: %v", ErrNotConfirmed, err)
			s.recordEvent(ctx, payment, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), domain.OutcomeRejected, err, payload)
			return nil, err
		}

	default:
		s.recordEvent(ctx, payment, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), domain.OutcomeRejected, ErrUnknownNotification, payload)
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotification, n.Status)
	}

	if err != nil {
		// pending 유지, 게이트웨이가 재전송하도록 에러 반환
		reason := "verification unavailable: " + err.Error()
		if markErr := s.paymentRepo.MarkIPNReceived(ctx, payment.ID, reason); markErr != nil {
			log.Error().Err(markErr).Msg("failed to mark ipn received")
		}
		s.recordEvent(ctx, payment, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), domain.OutcomePending, err, payload)
		log.Warn().Err(err).Uint64("payment_id", payment.ID).Msg("ipn verification failed, payment left pending")
		return nil, err
	}

	outcome, err := s.outcomeFromVerification(payment, v, true)
	if err != nil {
		s.recordEvent(ctx, payment, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), domain.OutcomeRejected, err, payload)
		log.Warn().Err(err).Uint64("payment_id", payment.ID).Str("gateway_status", v.Status).Msg("ipn not confirmed by gateway")
		return nil, err
	}
	if outcome == nil {
		s.recordEvent(ctx, payment, n.TransactionID, n.ValID, domain.GatewayEventIPN, string(n.Status), domain.OutcomePending, nil, payload)
		return payment, nil
	}

	// 게이트웨이가 실패를 확인한 경우 알림의 상세 사유를 보존
	if outcome.Status == domain.PaymentStatusFailed && v.Error == "" && n.Error != "" && n.Status == gateway.NotifyFailed {
		outcome.FailReason = n.Error
	}
	if outcome.RiskLevel == "" {
		outcome.RiskLevel = n.RiskLevel
		outcome.RiskTitle = n.RiskTitle
	}
	return s.apply(ctx, payment, outcome, n.ValID, domain.GatewayEventIPN, string(n.Status), payload)
}

// ============================================
// 수동 검증
// ============================================

func (s *paymentService) Verify(ctx context.Context, tranID, valID string) (*domain.Payment, error) {
	payment, err := s.findByTransactionID(ctx, tranID)
	if err != nil {
		return nil, err
	}

	payload := map[string]string{"tran_id": tranID, "val_id": valID}
	if payment.Status.IsTerminal() {
		return s.duplicate(ctx, payment, valID, domain.GatewayEventManualVerify, "", payload)
	}

	v, err := s.lookup(ctx, payment, valID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			s.recordEvent(ctx, payment, tranID, valID, domain.GatewayEventManualVerify, "", domain.OutcomePending, err, payload)
			return payment, nil
		}
		if recErr := s.paymentRepo.RecordFailReason(ctx, payment.ID, "verification unavailable: "+err.Error()); recErr != nil {
			pkglogger.GetLogger().Error().Err(recErr).Str("tran_id", tranID).Msg("failed to record verification failure")
		}
		s.recordEvent(ctx, payment, tranID, valID, domain.GatewayEventManualVerify, "", domain.OutcomeError, err, payload)
		return nil, err
	}

	outcome, err := s.outcomeFromVerification(payment, v, false)
	if err != nil {
		s.recordEvent(ctx, payment, tranID, valID, domain.GatewayEventManualVerify, v.Status, domain.OutcomeRejected, err, payload)
		return nil, err
	}
	if outcome == nil {
		s.recordEvent(ctx, payment, tranID, valID, domain.GatewayEventManualVerify, v.Status, domain.OutcomePending, nil, payload)
		return payment, nil
	}
	return s.apply(ctx, payment, outcome, v.ValID, domain.GatewayEventManualVerify, v.Status, payload)
}

// lookup val_id 가 있으면 검증 API, 없으면 거래번호 조회
func (s *paymentService) lookup(ctx context.Context, payment *domain.Payment, valID string) (*gateway.Verification, error) {
	started := time.Now()
	if valID != "" {
		v, err := s.gateway.ValidateByValID(ctx, valID)
		metrics.ObserveGateway(gateway.OpValidate, started, err)
		return v, err
	}
	v, err := s.gateway.QueryByTranID(ctx, payment.TransactionID)
	metrics.ObserveGateway(gateway.OpQuery, started, err)
	return v, err
}

// outcomeFromVerification 게이트웨이 검증 결과를 종료 상태로 변환.
// 아직 진행 중이면 nil, 게이트웨이가 이 결제를 확인하지 못하면 ErrNotConfirmed
func (s *paymentService) outcomeFromVerification(p *domain.Payment, v *gateway.Verification, fromIPN bool) (*domain.PaymentOutcome, error) {
	if v.TransactionID != "" && v.TransactionID != p.TransactionID {
		return nil, fmt.Errorf("%w: verification belongs to %q", ErrNotConfirmed, v.TransactionID)
	}

	received := fromIPN || p.IPNReceived
	base := domain.PaymentOutcome{
		IPNReceived:       received,
		IPNValidated:      received,
		ValID:             v.ValID,
		BankTransactionID: v.BankTransactionID,
		CardType:          v.CardType,
		CardIssuer:        v.CardIssuer,
		RiskLevel:         v.RiskLevel,
		RiskTitle:         v.RiskTitle,
	}

	switch v.Status {
	case gateway.StatusValid, gateway.StatusValidated:
		if v.TransactionID == "" {
			return nil, fmt.Errorf("%w: verification has no tran_id", ErrNotConfirmed)
		}
		if v.Amount != p.Amount {
			base.Status = domain.PaymentStatusFailed
			base.IPNValidated = false
			base.FailReason = fmt.Sprintf("validation amount mismatch: expected %s, got %s", p.Amount, v.Amount)
			return &base, nil
		}
		completedAt := s.now()
		base.Status = domain.PaymentStatusCompleted
		base.CompletedAt = &completedAt
		return &base, nil

	case gateway.StatusPending:
		return nil, nil

	case gateway.StatusFailed:
		base.Status = domain.PaymentStatusFailed
		base.FailReason = "gateway reported failure"
		if v.Error != "" {
			base.FailReason = v.Error
		}
		return &base, nil

	case gateway.StatusCancelled, gateway.StatusUnattempted, gateway.StatusExpired:
		base.Status = domain.PaymentStatusCancelled
		base.FailReason = strings.ToLower(v.Status)
		return &base, nil

	default:
		return nil, fmt.Errorf("%w: gateway status %q", ErrNotConfirmed, v.Status)
	}
}

// apply 조건부 전이 후 감사 로그, 메트릭, 이벤트 발행. 경쟁에서 지면 중복 처리
func (s *paymentService) apply(
	ctx context.Context,
	payment *domain.Payment,
	outcome *domain.PaymentOutcome,
	valID string,
	eventType domain.GatewayEventType,
	gatewayStatus string,
	payload map[string]string,
) (*domain.Payment, error) {
	changed, err := s.paymentRepo.TransitionFromPending(ctx, payment.ID, outcome)
	if err != nil {
		s.recordEvent(ctx, payment, payment.TransactionID, valID, eventType, gatewayStatus, domain.OutcomeError, err, payload)
		return nil, err
	}

	current, err := s.paymentRepo.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return s.duplicate(ctx, current, valID, eventType, gatewayStatus, payload)
	}

	s.recordEvent(ctx, current, current.TransactionID, valID, eventType, gatewayStatus, domain.OutcomeProcessed, nil, payload)
	metrics.PaymentTransitioned(string(current.Status))

	pkglogger.GetLogger().Info().
		Str("tran_id", current.TransactionID).
		Uint64("payment_id", current.ID).
		Str("status", string(current.Status)).
		Str("source", string(eventType)).
		Str("fail_reason", current.FailReason).
		Msg("payment status changed")

	if err := s.publisher.Publish(ctx, events.NewPaymentEvent(current, current.Status, s.now())); err != nil {
		pkglogger.GetLogger().Error().Err(err).
			Str("tran_id", current.TransactionID).
			Msg("failed to publish payment event")
	}

	return current, nil
}

// duplicate 종료 상태 결제에 대한 재요청. 상태는 바꾸지 않고 기록만 남긴다
func (s *paymentService) duplicate(
	ctx context.Context,
	payment *domain.Payment,
	valID string,
	eventType domain.GatewayEventType,
	gatewayStatus string,
	payload map[string]string,
) (*domain.Payment, error) {
	s.recordEvent(ctx, payment, payment.TransactionID, valID, eventType, gatewayStatus, domain.OutcomeDuplicate, nil, payload)

	pkglogger.GetLogger().Warn().
		Str("tran_id", payment.TransactionID).
		Uint64("payment_id", payment.ID).
		Str("status", string(payment.Status)).
		Str("source", string(eventType)).
		Msg("duplicate delivery for finalized payment")

	return payment, ErrAlreadyFinalized
}

func (s *paymentService) recordEvent(
	ctx context.Context,
	payment *domain.Payment,
	tranID, valID string,
	eventType domain.GatewayEventType,
	gatewayStatus string,
	outcome domain.GatewayEventOutcome,
	cause error,
	payload map[string]string,
) {
	if eventType == domain.GatewayEventIPN {
		metrics.NotificationHandled(string(outcome))
	}

	event := &domain.GatewayEvent{
		TransactionID: tranID,
		ValID:         valID,
		EventType:     eventType,
		GatewayStatus: gatewayStatus,
		Outcome:       outcome,
		ReceivedAt:    s.now(),
	}
	if payment != nil {
		id := payment.ID
		event.PaymentID = &id
	}
	if cause != nil {
		event.Error = domain.TruncateText(cause.Error(), 500)
	}
	if data, err := json.Marshal(payload); err == nil {
		event.Payload = data
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		pkglogger.GetLogger().Error().Err(err).
			Str("tran_id", tranID).
			Str("outcome", string(outcome)).
			Msg("failed to record gateway event")
	}
}

// ============================================
// 관리자 확인 / 정리
// ============================================

func (s *paymentService) MarkChecked(ctx context.Context, id uint64, adminID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Checking {
		return payment, nil
	}

	changed, err := s.paymentRepo.MarkChecked(ctx, id, adminID, s.now())
	if err != nil {
		return nil, err
	}
	if changed {
		pkglogger.GetLogger().Info().
			Uint64("payment_id", id).
			Str("checked_by", adminID).
			Msg("payment marked as checked")
	}
	return s.paymentRepo.FindByID(ctx, id)
}

func (s *paymentService) ExpireStale(ctx context.Context, olderThan time.Duration, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	stale, err := s.paymentRepo.FindStalePending(ctx, s.now().Add(-olderThan), batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, p := range stale {
		current, err := s.settleStale(ctx, p)
		if err != nil {
			if errors.Is(err, ErrAlreadyFinalized) {
				continue
			}
			// 게이트웨이 장애 등은 다음 주기에 다시 시도
			pkglogger.GetLogger().Warn().Err(err).
				Str("tran_id", p.TransactionID).
				Msg("stale payment left pending")
			continue
		}
		if current != nil && current.Status == domain.PaymentStatusCancelled {
			expired++
		}
	}

	if expired > 0 {
		pkglogger.GetLogger().Info().Int("expired", expired).Dur("older_than", olderThan).Msg("stale pending payments expired")
	}
	return expired, nil
}

// settleStale 만료 전에 게이트웨이에 거래 상태를 확인.
// 게이트웨이에 기록이 없을 때만 expired 로 취소하고, 결제가 확인되면 그 결과를 반영한다.
// 아직 진행 중이면 nil
func (s *paymentService) settleStale(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	payload := map[string]string{"tran_id": p.TransactionID, "reason": "stale"}

	v, err := s.lookup(ctx, p, "")
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return nil, err
	}

	var outcome *domain.PaymentOutcome
	gatewayStatus := ""
	if err == nil {
		gatewayStatus = v.Status
		outcome, err = s.outcomeFromVerification(p, v, false)
		if err != nil && !errors.Is(err, ErrNotConfirmed) {
			return nil, err
		}
		if err == nil && outcome == nil {
			return nil, nil
		}
	}
	if outcome == nil {
		outcome = &domain.PaymentOutcome{
			Status:     domain.PaymentStatusCancelled,
			FailReason: "expired",
		}
	}
	return s.apply(ctx, p, outcome, "", domain.GatewayEventSweep, gatewayStatus, payload)
}

// ============================================
// 조회
// ============================================

func (s *paymentService) GetByTransactionID(ctx context.Context, tranID, userID string, isAdmin bool) (*domain.Payment, error) {
	payment, err := s.findByTransactionID(ctx, tranID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && payment.UserID != userID {
		return nil, ErrPaymentForbidden
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, req *domain.PaymentListRequest) ([]*domain.Payment, int64, error) {
	return s.paymentRepo.List(ctx, req)
}

func (s *paymentService) Summary(ctx context.Context) (*domain.PaymentSummary, error) {
	return s.paymentRepo.Summary(ctx)
}

// Events 거래별 게이트웨이 알림 감사 로그
func (s *paymentService) Events(ctx context.Context, tranID string) ([]*domain.GatewayEvent, error) {
	if _, err := s.findByTransactionID(ctx, tranID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByTransactionID(ctx, tranID)
}

func (s *paymentService) findByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByTransactionID(ctx, tranID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// newTransactionID 게이트웨이 tran_id 길이 제한(30자)에 맞춘 거래번호
func newTransactionID() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TXN-" + id[:24]
}

// validateRequest validator 태그 검증 결과를 ValidationError 로 변환
func validateRequest(req interface{}) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &pricing.ValidationError{
			Field:   toSnake(fe.Field()),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		}
	}
	return &pricing.ValidationError{Message: err.Error()}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

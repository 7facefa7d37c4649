package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/gateway"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/internal/statemachine"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentService 결제 서비스 목
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Initiate(ctx context.Context, req *domain.InitiatePaymentRequest) (*domain.InitiatePaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InitiatePaymentResponse), args.Error(1)
}

func (m *MockPaymentService) Reconcile(ctx context.Context, n *gateway.Notification) (*domain.Payment, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) Verify(ctx context.Context, tranID, valID string) (*domain.Payment, error) {
	args := m.Called(ctx, tranID, valID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) MarkChecked(ctx context.Context, id uint64, adminID string) (*domain.Payment, error) {
	args := m.Called(ctx, id, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ExpireStale(ctx context.Context, olderThan time.Duration, batchSize int) (int, error) {
	args := m.Called(ctx, olderThan, batchSize)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentService) GetByTransactionID(ctx context.Context, tranID, userID string, isAdmin bool) (*domain.Payment, error) {
	args := m.Called(ctx, tranID, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, req *domain.PaymentListRequest) ([]*domain.Payment, int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]*domain.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentService) Summary(ctx context.Context) (*domain.PaymentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSummary), args.Error(1)
}

func (m *MockPaymentService) Events(ctx context.Context, tranID string) ([]*domain.GatewayEvent, error) {
	args := m.Called(ctx, tranID)
	return args.Get(0).([]*domain.GatewayEvent), args.Error(1)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// asUser 인증 미들웨어 대신 컨텍스트에 사용자 정보를 심는다
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func newPaymentRouter(svc service.PaymentService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(svc)

	r := gin.New()
	r.POST("/payments/ipn", h.IPN)

	authed := r.Group("/", asUser(userID, role))
	authed.POST("/payments/initiate", h.Initiate)
	authed.GET("/payments/:transactionId", h.Get)
	authed.POST("/payments/verify/:transactionId", h.Verify)
	authed.PATCH("/admin/payments/:id/check", h.MarkChecked)
	return r
}

func postIPN(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/ipn", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func ipnForm(status string) url.Values {
	form := url.Values{}
	form.Set("tran_id", "TXN-ABC")
	form.Set("status", status)
	form.Set("val_id", "VAL-1")
	form.Set("amount", "22500.00")
	return form
}

func TestPaymentHandler_IPN(t *testing.T) {
	t.Run("성공 - 완료 처리", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.MatchedBy(func(n *gateway.Notification) bool {
			return n.TransactionID == "TXN-ABC" && n.ValID == "VAL-1" && n.Status == gateway.NotifyValid
		})).Return(&domain.Payment{TransactionID: "TXN-ABC", Status: domain.PaymentStatusCompleted}, nil)

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("VALID"))

		assert.Equal(t, http.StatusOK, w.Code)
		var ack IPNAck
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &ack))
		assert.Equal(t, domain.PaymentStatusCompleted, ack.Status)
		assert.False(t, ack.Duplicate)
	})

	t.Run("성공 - 중복 전달은 200", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.Anything).
			Return(&domain.Payment{TransactionID: "TXN-ABC", Status: domain.PaymentStatusCompleted}, service.ErrAlreadyFinalized)

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("VALID"))

		assert.Equal(t, http.StatusOK, w.Code)
		var ack IPNAck
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &ack))
		assert.True(t, ack.Duplicate)
	})

	t.Run("실패 - 알 수 없는 거래번호 404", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.Anything).Return(nil, service.ErrPaymentNotFound)

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("VALID"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
	})

	t.Run("실패 - 검증 서버 장애 502", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.Anything).
			Return(nil, &gateway.Error{Op: gateway.OpValidate, Err: context.DeadlineExceeded})

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("VALID"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("실패 - 서명 불일치 403", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.Anything).Return(nil, gateway.ErrInvalidSignature)

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("FAILED"))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("실패 - 게이트웨이가 확인하지 않은 알림 422", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.Anything).Return(nil, service.ErrNotConfirmed)

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("VALID"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("실패 - 알 수 없는 상태 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, mock.Anything).Return(nil, service.ErrUnknownNotification)

		w := postIPN(newPaymentRouter(svc, "", ""), ipnForm("SOMETHING"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패 - tran_id 누락 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		form := ipnForm("VALID")
		form.Del("tran_id")

		w := postIPN(newPaymentRouter(svc, "", ""), form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler_Initiate(t *testing.T) {
	body := `{"course_id":1,"plan_name":"2x","installment_number":1,"name":"Rahim","email":"rahim@example.com","mobile":"01711000000"}`

	t.Run("성공 - 게이트웨이 URL 반환", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Initiate", mock.Anything, mock.MatchedBy(func(req *domain.InitiatePaymentRequest) bool {
			return req.UserID == "user-1" && req.CourseID == 1
		})).Return(&domain.InitiatePaymentResponse{
			GatewayURL: "https://sandbox.sslcommerz.com/pay", TransactionID: "TXN-1", Amount: 2500000,
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/initiate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newPaymentRouter(svc, "user-1", "student").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"gateway_url":"https://sandbox.sslcommerz.com/pay","transaction_id":"TXN-1","amount":25000.00}`, string(decode(t, w).Data))
	})

	t.Run("실패 - 게이트웨이 오류 502", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Initiate", mock.Anything, mock.Anything).
			Return(nil, &gateway.Error{Op: gateway.OpCreateSession, Err: gateway.ErrSessionRejected})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/initiate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newPaymentRouter(svc, "user-1", "student").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("실패 - 금액 불일치 400", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Initiate", mock.Anything, mock.Anything).Return(nil, service.ErrAmountMismatch)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/initiate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newPaymentRouter(svc, "user-1", "student").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패 - 필수 필드 누락 400", func(t *testing.T) {
		svc := new(MockPaymentService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments/initiate", strings.NewReader(`{"course_id":1}`))
		req.Header.Set("Content-Type", "application/json")
		newPaymentRouter(svc, "user-1", "student").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything)
	})
}

func TestPaymentHandler_Verify(t *testing.T) {
	t.Run("성공 - val_id 쿼리 전달", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Verify", mock.Anything, "TXN-ABC", "VAL-1").
			Return(&domain.Payment{TransactionID: "TXN-ABC", Status: domain.PaymentStatusCompleted}, nil)

		w := httptest.NewRecorder()
		newPaymentRouter(svc, "admin-1", "admin").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/verify/TXN-ABC?val_id=VAL-1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("실패 - 종료된 결제 409", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Verify", mock.Anything, "TXN-ABC", "").
			Return(&domain.Payment{Status: domain.PaymentStatusFailed}, service.ErrAlreadyFinalized)

		w := httptest.NewRecorder()
		newPaymentRouter(svc, "admin-1", "admin").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/verify/TXN-ABC", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPaymentHandler_GetAndCheck(t *testing.T) {
	t.Run("실패 - 다른 사용자 결제 403", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("GetByTransactionID", mock.Anything, "TXN-ABC", "user-2", false).Return(nil, service.ErrPaymentForbidden)

		w := httptest.NewRecorder()
		newPaymentRouter(svc, "user-2", "student").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/TXN-ABC", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("성공 - 관리자 확인 표시", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("MarkChecked", mock.Anything, uint64(7), "admin-1").
			Return(&domain.Payment{ID: 7, Checking: true, CheckedBy: "admin-1"}, nil)

		w := httptest.NewRecorder()
		newPaymentRouter(svc, "admin-1", "admin").ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/payments/7/check", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("실패 - 잘못된 ID 400", func(t *testing.T) {
		svc := new(MockPaymentService)

		w := httptest.NewRecorder()
		newPaymentRouter(svc, "admin-1", "admin").ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/payments/abc/check", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRespondError_InvalidTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, &statemachine.TransitionError{From: "issued", To: "rejected", Terminal: true})

	assert.Equal(t, http.StatusConflict, w.Code)
}

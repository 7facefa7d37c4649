package handler

import (
	"errors"
	"net/http"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/gateway"
	"github.com/codecraft/institute-backend/internal/middleware"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	service service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// IPNAck IPN 처리 결과
type IPNAck struct {
	TransactionID string               `json:"transaction_id"`
	Status        domain.PaymentStatus `json:"status"`
	Duplicate     bool                 `json:"duplicate"`
}

// Initiate godoc
// @Summary      결제 시작
// @Description  강의 수강료(또는 분할 회차) 결제를 위한 게이트웨이 세션을 생성합니다
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.InitiatePaymentRequest  true  "결제 요청"
// @Success      200  {object}  common.APIResponse{data=domain.InitiatePaymentResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /payments/initiate [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req domain.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.UserID = middleware.GetUserID(c)

	resp, err := h.service.Initiate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// IPN godoc
// @Summary      게이트웨이 결제 알림 (IPN)
// @Description  게이트웨이가 보내는 form 알림의 서명을 확인하고 게이트웨이에 거래를 재조회한 결과로 반영합니다. 이미 종료된 결제의 재전송은 200으로 응답합니다
// @Tags         payments
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        tran_id  formData  string  true   "가맹점 거래번호"
// @Param        status   formData  string  true   "VALID, FAILED, CANCELLED, ..."
// @Param        val_id   formData  string  false  "검증 ID"
// @Success      200  {object}  common.APIResponse{data=IPNAck}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /payments/ipn [post]
func (h *PaymentHandler) IPN(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		bindError(c, err)
		return
	}

	notification, err := gateway.ParseNotification(c.Request.Form)
	if err != nil {
		bindError(c, err)
		return
	}

	payment, err := h.service.Reconcile(c.Request.Context(), notification)
	if errors.Is(err, service.ErrAlreadyFinalized) {
		common.SuccessResponse(c, IPNAck{
			TransactionID: payment.TransactionID,
			Status:        payment.Status,
			Duplicate:     true,
		}, nil)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, IPNAck{
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
	}, nil)
}

// Verify godoc
// @Summary      결제 수동 검증
// @Description  게이트웨이에 거래를 조회해 pending 결제를 확정합니다 (관리자)
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transactionId  path      string                       true   "거래번호"
// @Param        request        body      domain.VerifyPaymentRequest  false  "검증 ID"
// @Success      200  {object}  common.APIResponse{data=domain.Payment}
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /payments/verify/{transactionId} [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req domain.VerifyPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	if req.ValID == "" {
		req.ValID = c.Query("val_id")
	}

	payment, err := h.service.Verify(c.Request.Context(), c.Param("transactionId"), req.ValID)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, payment, nil)
}

// MarkChecked godoc
// @Summary      결제 확인 표시
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "결제 ID"
// @Success      200  {object}  common.APIResponse{data=domain.Payment}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/payments/{id}/check [patch]
func (h *PaymentHandler) MarkChecked(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid payment ID", err)
		return
	}

	payment, err := h.service.MarkChecked(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, payment, nil)
}

// Get godoc
// @Summary      결제 조회
// @Description  본인 결제 또는 관리자 조회
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        transactionId  path  string  true  "거래번호"
// @Success      200  {object}  common.APIResponse{data=domain.Payment}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /payments/{transactionId} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.service.GetByTransactionID(
		c.Request.Context(),
		c.Param("transactionId"),
		middleware.GetUserID(c),
		middleware.IsAdmin(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, payment, nil)
}

// ListMine godoc
// @Summary      내 결제 목록
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "상태"
// @Param        page    query  int     false  "페이지"  default(1)
// @Param        limit   query  int     false  "개수"    default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.Payment}
// @Router       /me/payments [get]
func (h *PaymentHandler) ListMine(c *gin.Context) {
	var req domain.PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	req.UserID = middleware.GetUserID(c)
	h.list(c, &req)
}

// List godoc
// @Summary      결제 목록 (관리자)
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        status     query  string  false  "상태"
// @Param        checking   query  bool    false  "확인 여부"
// @Param        course_id  query  int     false  "강의 ID"
// @Param        page       query  int     false  "페이지"  default(1)
// @Param        limit      query  int     false  "개수"    default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.Payment}
// @Router       /admin/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var req domain.PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	h.list(c, &req)
}

func (h *PaymentHandler) list(c *gin.Context, req *domain.PaymentListRequest) {
	payments, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, payments, paginationMeta(req.Page, req.Limit, total))
}

// Summary godoc
// @Summary      상태별 결제 집계
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=domain.PaymentSummary}
// @Router       /admin/payments/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, summary, nil)
}

// Events godoc
// @Summary      게이트웨이 알림 이력
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        transactionId  path  string  true  "거래번호"
// @Success      200  {object}  common.APIResponse{data=[]domain.GatewayEvent}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/payment-events/{transactionId} [get]
func (h *PaymentHandler) Events(c *gin.Context) {
	list, err := h.service.Events(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, list, nil)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/internal/gateway"
	"github.com/codecraft/institute-backend/internal/pricing"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/internal/statemachine"
	"github.com/gin-gonic/gin"
)

// respondError 서비스 에러를 HTTP 상태로 변환
func respondError(c *gin.Context, err error) {
	var verr *pricing.ValidationError
	var gwErr *gateway.Error

	switch {
	case errors.As(err, &verr):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)

	case errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrInvalidInstallmentNumber),
		errors.Is(err, service.ErrNothingToPay),
		errors.Is(err, service.ErrUnknownNotification),
		errors.Is(err, service.ErrMissingValID),
		errors.Is(err, gateway.ErrMissingTranID):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)

	case errors.Is(err, service.ErrCourseInactive),
		errors.Is(err, service.ErrCertificateNotEligible),
		errors.Is(err, service.ErrNotConfirmed):
		common.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error(), err)

	case errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrCertificateNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Resource not found", err)

	case errors.Is(err, service.ErrPaymentForbidden),
		errors.Is(err, gateway.ErrInvalidSignature):
		common.ErrorResponse(c, http.StatusForbidden, "Access denied", nil)

	case errors.Is(err, service.ErrAlreadyFinalized),
		errors.Is(err, service.ErrCertificateExists),
		errors.Is(err, service.ErrCertificateConflict),
		errors.Is(err, service.ErrPlanNameTaken),
		errors.Is(err, service.ErrCouponCodeTaken),
		errors.Is(err, statemachine.ErrInvalidTransition):
		common.ErrorResponse(c, http.StatusConflict, "Conflict with current state", err)

	case errors.As(err, &gwErr):
		common.ErrorResponse(c, http.StatusBadGateway, "Payment gateway is unavailable, please try again", err)

	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// bindError 요청 바인딩 실패 응답
func bindError(c *gin.Context, err error) {
	common.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
}

func paginationMeta(page, limit int, total int64) *common.Meta {
	return &common.Meta{Page: page, Limit: limit, Total: total}
}

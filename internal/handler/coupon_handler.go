package handler

import (
	"net/http"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// CouponHandler handles coupon endpoints
type CouponHandler struct {
	service service.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(service service.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

// Validate godoc
// @Summary      쿠폰 적용 미리보기
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ValidateCouponRequest  true  "코드와 금액"
// @Success      200  {object}  common.APIResponse{data=domain.CouponApplication}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req domain.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Validate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// List godoc
// @Summary      쿠폰 목록 (관리자)
// @Tags         admin-coupons
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "페이지"  default(1)
// @Param        limit  query  int  false  "개수"    default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.Coupon}
// @Router       /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	coupons, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, coupons, paginationMeta(page, limit, total))
}

// Create godoc
// @Summary      쿠폰 생성 (관리자)
// @Tags         admin-coupons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateCouponRequest  true  "쿠폰"
// @Success      201  {object}  common.APIResponse{data=domain.Coupon}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req domain.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	coupon, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, coupon)
}

// Update godoc
// @Summary      쿠폰 수정 (관리자)
// @Tags         admin-coupons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                         true  "쿠폰 ID"
// @Param        request  body  domain.UpdateCouponRequest  true  "변경 항목"
// @Success      200  {object}  common.APIResponse{data=domain.Coupon}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid coupon ID", err)
		return
	}
	var req domain.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	coupon, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, coupon, nil)
}

// Delete godoc
// @Summary      쿠폰 삭제 (관리자)
// @Tags         admin-coupons
// @Security     BearerAuth
// @Param        id  path  int  true  "쿠폰 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid coupon ID", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// PricingHandler handles pricing quotes and installment plan management
type PricingHandler struct {
	pricing service.PricingService
	plans   service.InstallmentPlanService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricing service.PricingService, plans service.InstallmentPlanService) *PricingHandler {
	return &PricingHandler{pricing: pricing, plans: plans}
}

// Quote godoc
// @Summary      강의 결제 금액 계산
// @Description  분할 플랜별 할인액, 최종 결제액, 회차별 금액을 계산합니다. 쿠폰은 참고용으로만 평가됩니다
// @Tags         pricing
// @Produce      json
// @Param        id      path   int     true   "강의 ID"
// @Param        plan    query  string  false  "플랜 이름 (예: full, 2x)"
// @Param        coupon  query  string  false  "쿠폰 코드"
// @Success      200  {object}  common.APIResponse{data=domain.PricingResult}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /courses/{id}/pricing [get]
func (h *PricingHandler) Quote(c *gin.Context) {
	courseID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid course ID", err)
		return
	}

	result, err := h.pricing.Quote(c.Request.Context(), courseID, c.Query("plan"), c.Query("coupon"))
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// ListActivePlans godoc
// @Summary      분할 납부 플랜 목록
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.InstallmentPlan}
// @Router       /installment-plans [get]
func (h *PricingHandler) ListActivePlans(c *gin.Context) {
	plans, err := h.plans.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, plans, nil)
}

// ListAllPlans godoc
// @Summary      전체 플랜 목록 (관리자)
// @Tags         admin-pricing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.InstallmentPlan}
// @Router       /admin/installment-plans [get]
func (h *PricingHandler) ListAllPlans(c *gin.Context) {
	plans, err := h.plans.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, plans, nil)
}

// CreatePlan godoc
// @Summary      플랜 생성 (관리자)
// @Tags         admin-pricing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateInstallmentPlanRequest  true  "플랜"
// @Success      201  {object}  common.APIResponse{data=domain.InstallmentPlan}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/installment-plans [post]
func (h *PricingHandler) CreatePlan(c *gin.Context) {
	var req domain.CreateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, plan)
}

// UpdatePlan godoc
// @Summary      플랜 수정 (관리자)
// @Tags         admin-pricing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                                   true  "플랜 ID"
// @Param        request  body  domain.UpdateInstallmentPlanRequest  true  "변경 항목"
// @Success      200  {object}  common.APIResponse{data=domain.InstallmentPlan}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/installment-plans/{id} [put]
func (h *PricingHandler) UpdatePlan(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid plan ID", err)
		return
	}
	var req domain.UpdateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	plan, err := h.plans.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, plan, nil)
}

// DeletePlan godoc
// @Summary      플랜 삭제 (관리자)
// @Tags         admin-pricing
// @Security     BearerAuth
// @Param        id  path  int  true  "플랜 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/installment-plans/{id} [delete]
func (h *PricingHandler) DeletePlan(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid plan ID", err)
		return
	}

	if err := h.plans.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

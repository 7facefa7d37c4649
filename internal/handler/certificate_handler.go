package handler

import (
	"net/http"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/internal/middleware"
	"github.com/codecraft/institute-backend/internal/service"
	"github.com/codecraft/institute-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// CertificateHandler handles certificate applications
type CertificateHandler struct {
	service service.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler
func NewCertificateHandler(service service.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// Apply godoc
// @Summary      수료증 신청
// @Description  결제가 완료된 강의에 대해 수료증을 신청합니다
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.ApplyCertificateRequest  true  "강의"
// @Success      201  {object}  common.APIResponse{data=domain.CertificateApplication}
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /certificates [post]
func (h *CertificateHandler) Apply(c *gin.Context) {
	var req domain.ApplyCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.service.Apply(c.Request.Context(), middleware.GetUserID(c), req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, app)
}

// ListMine godoc
// @Summary      내 수료증 신청 목록
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.CertificateApplication}
// @Router       /me/certificates [get]
func (h *CertificateHandler) ListMine(c *gin.Context) {
	var req domain.CertificateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	req.UserID = middleware.GetUserID(c)
	h.list(c, &req)
}

// List godoc
// @Summary      수료증 신청 목록 (관리자)
// @Tags         admin-certificates
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "applied, approved, issued, rejected"
// @Success      200  {object}  common.APIResponse{data=[]domain.CertificateApplication}
// @Router       /admin/certificates [get]
func (h *CertificateHandler) List(c *gin.Context) {
	var req domain.CertificateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	h.list(c, &req)
}

func (h *CertificateHandler) list(c *gin.Context, req *domain.CertificateListRequest) {
	apps, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, apps, paginationMeta(req.Page, req.Limit, total))
}

// Approve godoc
// @Summary      수료증 승인 (관리자)
// @Tags         admin-certificates
// @Security     BearerAuth
// @Param        id  path  int  true  "신청 ID"
// @Success      200  {object}  common.APIResponse{data=domain.CertificateApplication}
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/certificates/{id}/approve [post]
func (h *CertificateHandler) Approve(c *gin.Context) {
	id, ok := certificateID(c)
	if !ok {
		return
	}
	h.respond(c)(h.service.Approve(c.Request.Context(), id, middleware.GetUserID(c)))
}

// Issue godoc
// @Summary      수료증 발급 (관리자)
// @Tags         admin-certificates
// @Security     BearerAuth
// @Param        id  path  int  true  "신청 ID"
// @Success      200  {object}  common.APIResponse{data=domain.CertificateApplication}
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/certificates/{id}/issue [post]
func (h *CertificateHandler) Issue(c *gin.Context) {
	id, ok := certificateID(c)
	if !ok {
		return
	}
	h.respond(c)(h.service.Issue(c.Request.Context(), id, middleware.GetUserID(c)))
}

// Reject godoc
// @Summary      수료증 반려 (관리자)
// @Tags         admin-certificates
// @Accept       json
// @Security     BearerAuth
// @Param        id       path  int                              true  "신청 ID"
// @Param        request  body  domain.RejectCertificateRequest  true  "반려 사유"
// @Success      200  {object}  common.APIResponse{data=domain.CertificateApplication}
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/certificates/{id}/reject [post]
func (h *CertificateHandler) Reject(c *gin.Context) {
	id, ok := certificateID(c)
	if !ok {
		return
	}
	var req domain.RejectCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.respond(c)(h.service.Reject(c.Request.Context(), id, middleware.GetUserID(c), req.Reason))
}

func (h *CertificateHandler) respond(c *gin.Context) func(*domain.CertificateApplication, error) {
	return func(app *domain.CertificateApplication, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		common.SuccessResponse(c, app, nil)
	}
}

func certificateID(c *gin.Context) (uint64, bool) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid certificate ID", err)
		return 0, false
	}
	return id, true
}

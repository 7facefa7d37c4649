package handler

import (
	"context"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// AuditLogReader lists admin audit entries
type AuditLogReader interface {
	List(ctx context.Context, req *domain.AuditLogListRequest) ([]*domain.AdminAuditLog, int64, error)
}

// AuditHandler exposes the admin audit trail
type AuditHandler struct {
	reader AuditLogReader
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(reader AuditLogReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

// List godoc
// @Summary      관리자 작업 이력
// @Tags         admin-audit
// @Produce      json
// @Security     BearerAuth
// @Param        admin_id  query  string  false  "관리자 ID"
// @Param        action    query  string  false  "예: PATCH /api/v1/admin/payments/:id/check"
// @Param        page      query  int     false  "페이지"  default(1)
// @Param        limit     query  int     false  "개수"    default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.AdminAuditLog}
// @Router       /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	var req domain.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	logs, total, err := h.reader.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, logs, paginationMeta(req.Page, req.Limit, total))
}

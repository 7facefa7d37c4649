package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/codecraft/institute-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditLogger writes admin audit entries
type AuditLogger struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAuditLogger creates a new AuditLogger. The admin_audit_logs table is created by migration.Run.
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db, now: time.Now}
}

// Record writes one audit entry
func (a *AuditLogger) Record(ctx context.Context, entry *domain.AdminAuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = a.now()
	}
	return a.db.WithContext(ctx).Create(entry).Error
}

// List retrieves paginated audit logs with optional filters
func (a *AuditLogger) List(ctx context.Context, req *domain.AuditLogListRequest) ([]*domain.AdminAuditLog, int64, error) {
	var logs []*domain.AdminAuditLog
	var total int64

	query := a.db.WithContext(ctx).Model(&domain.AdminAuditLog{})
	if req.AdminID != "" {
		query = query.Where("admin_id = ?", req.AdminID)
	}
	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id DESC").
		Offset((req.Page - 1) * req.Limit).Limit(req.Limit).
		Find(&logs).Error

	return logs, total, err
}

// AdminAudit records every state-changing request that passes through it.
// Must be applied after JWTAuth so that the admin ID is available.
func AdminAudit(a *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if a == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		adminID := GetUserID(c)
		if adminID == "" {
			return
		}

		entry := &domain.AdminAuditLog{
			AdminID:   adminID,
			Action:    c.Request.Method + " " + c.FullPath(),
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			ClientIP:  c.ClientIP(),
			RequestID: c.GetString("request_id"),
		}
		if err := a.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil {
			logger.GetLogger().Error().Err(err).
				Str("action", entry.Action).
				Str("admin_id", adminID).
				Msg("audit log write failed")
		}
	}
}

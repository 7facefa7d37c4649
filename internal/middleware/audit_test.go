package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codecraft/institute-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.AdminAuditLog{}))
	return db
}

func TestAdminAudit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuditDB(t)
	audit := NewAuditLogger(db)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-1")
		c.Set(ctxUserID, "admin-1")
		c.Next()
	})
	r.Use(AdminAudit(audit))
	r.GET("/admin/payments", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PATCH("/admin/payments/:id/check", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/payments", nil),
		httptest.NewRequest(http.MethodPatch, "/admin/payments/7/check", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	logs, total, err := audit.List(context.Background(), &domain.AuditLogListRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "admin-1", logs[0].AdminID)
	assert.Equal(t, "PATCH /admin/payments/:id/check", logs[0].Action)
	assert.Equal(t, "/admin/payments/7/check", logs[0].Path)
	assert.Equal(t, http.StatusOK, logs[0].Status)
	assert.Equal(t, "req-1", logs[0].RequestID)
	assert.False(t, logs[0].CreatedAt.IsZero())

	filtered, total, err := audit.List(context.Background(), &domain.AuditLogListRequest{AdminID: "admin-2", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, filtered)
}

package domain

import "time"

// AdminAuditLog 관리자 변경 요청 기록
type AdminAuditLog struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AdminID   string    `gorm:"column:admin_id;size:64;index" json:"admin_id"`
	Action    string    `gorm:"column:action;size:150;index" json:"action"` // "PATCH /api/v1/admin/payments/:id/check"
	Path      string    `gorm:"column:path;size:255" json:"path"`
	Status    int       `gorm:"column:status" json:"status"`
	ClientIP  string    `gorm:"column:client_ip;size:45" json:"client_ip"`
	RequestID string    `gorm:"column:request_id;size:64" json:"request_id"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName GORM 테이블명
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}

// AuditLogListRequest 감사 로그 조회 조건
type AuditLogListRequest struct {
	AdminID string `form:"admin_id"`
	Action  string `form:"action"`
	Page    int    `form:"page,default=1" binding:"min=1"`
	Limit   int    `form:"limit,default=20" binding:"min=1,max=100"`
}

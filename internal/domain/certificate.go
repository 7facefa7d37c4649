package domain

import (
	"fmt"
	"time"

	"github.com/codecraft/institute-backend/internal/statemachine"
)

// CertificateStatus 수료증 신청 상태
type CertificateStatus string

const (
	CertificateStatusApplied  CertificateStatus = "applied"
	CertificateStatusApproved CertificateStatus = "approved"
	CertificateStatusIssued   CertificateStatus = "issued"
	CertificateStatusRejected CertificateStatus = "rejected"
)

// CertificateLifecycle 수료증 상태 전이표
var CertificateLifecycle = statemachine.New(CertificateStatusApplied, map[CertificateStatus][]CertificateStatus{
	CertificateStatusApplied:  {CertificateStatusApproved, CertificateStatusRejected},
	CertificateStatusApproved: {CertificateStatusIssued, CertificateStatusRejected},
})

// CertificateApplication 수료증 신청 엔티티
type CertificateApplication struct {
	ID        uint64            `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"column:user_id;size:64;index:idx_cert_user_course;not null" json:"user_id"`
	CourseID  uint64            `gorm:"column:course_id;index:idx_cert_user_course;not null" json:"course_id"`
	PaymentID uint64            `gorm:"column:payment_id;not null" json:"payment_id"`
	Status    CertificateStatus `gorm:"column:status;size:20;index;not null;default:'applied'" json:"status"`

	// OpenKey 반려 전까지 user_id:course_id, 반려되면 NULL. 열린 신청은 사용자/강의당 하나
	OpenKey *string `gorm:"column:open_key;size:100;uniqueIndex" json:"-"`

	CertificateNo string     `gorm:"column:certificate_no;size:50" json:"certificate_no,omitempty"`
	RejectReason  string     `gorm:"column:reject_reason;size:500" json:"reject_reason,omitempty"`
	ReviewedBy    string     `gorm:"column:reviewed_by;size:64" json:"reviewed_by,omitempty"`
	ApprovedAt    *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	IssuedAt      *time.Time `gorm:"column:issued_at" json:"issued_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName GORM 테이블명
func (CertificateApplication) TableName() string {
	return "certificate_applications"
}

// CertificateOpenKey 열린 신청 유일성 키
func CertificateOpenKey(userID string, courseID uint64) string {
	return fmt.Sprintf("%s:%d", userID, courseID)
}

// CertificateNumber 발급 번호 생성 (CERT-2026-000042)
func CertificateNumber(issuedAt time.Time, id uint64) string {
	return fmt.Sprintf("CERT-%d-%06d", issuedAt.Year(), id)
}

// ApplyCertificateRequest 수료증 신청 요청 DTO
type ApplyCertificateRequest struct {
	CourseID uint64 `json:"course_id" binding:"required"`
}

// RejectCertificateRequest 반려 요청 DTO
type RejectCertificateRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CertificateListRequest 목록 조회 요청
type CertificateListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=applied approved issued rejected"`
	UserID string `form:"-"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}

package repository

import (
	"context"
	"time"

	"github.com/codecraft/institute-backend/internal/domain"
	"gorm.io/gorm"
)

// CertificateRepository 수료증 신청 저장소 인터페이스
type CertificateRepository interface {
	Create(ctx context.Context, app *domain.CertificateApplication) error
	FindByID(ctx context.Context, id uint64) (*domain.CertificateApplication, error)
	// FindOpen 반려되지 않은 신청
	FindOpen(ctx context.Context, userID string, courseID uint64) (*domain.CertificateApplication, error)
	List(ctx context.Context, req *domain.CertificateListRequest) ([]*domain.CertificateApplication, int64, error)

	// Transition 현재 상태가 from 일 때만 to 로 갱신. 경쟁에서 졌으면 false
	Transition(ctx context.Context, id uint64, from, to domain.CertificateStatus, fields map[string]interface{}) (bool, error)
}

type certificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository 생성자
func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

// Create 열린 신청이 이미 있으면 gorm.ErrDuplicatedKey
func (r *certificateRepository) Create(ctx context.Context, app *domain.CertificateApplication) error {
	app.Status = domain.CertificateLifecycle.Initial()
	key := domain.CertificateOpenKey(app.UserID, app.CourseID)
	app.OpenKey = &key

	err := r.db.WithContext(ctx).Create(app).Error
	if isDuplicateKey(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *certificateRepository) FindByID(ctx context.Context, id uint64) (*domain.CertificateApplication, error) {
	var app domain.CertificateApplication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *certificateRepository) FindOpen(ctx context.Context, userID string, courseID uint64) (*domain.CertificateApplication, error) {
	var app domain.CertificateApplication
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND status <> ?", userID, courseID, domain.CertificateStatusRejected).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *certificateRepository) List(ctx context.Context, req *domain.CertificateListRequest) ([]*domain.CertificateApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.CertificateApplication{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.UserID != "" {
		query = query.Where("user_id = ?", req.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(req.Page, req.Limit)
	var apps []*domain.CertificateApplication
	err := query.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *certificateRepository) Transition(ctx context.Context, id uint64, from, to domain.CertificateStatus, fields map[string]interface{}) (bool, error) {
	if err := domain.CertificateLifecycle.Transition(from, to); err != nil {
		return false, err
	}

	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range fields {
		updates[k] = v
	}
	if to == domain.CertificateStatusRejected {
		updates["open_key"] = gorm.Expr("NULL")
	}

	result := r.db.WithContext(ctx).Model(&domain.CertificateApplication{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

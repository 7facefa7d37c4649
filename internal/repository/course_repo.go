package repository

import (
	"context"

	"github.com/codecraft/institute-backend/internal/domain"
	"gorm.io/gorm"
)

// CourseRepository 강의 조회 저장소
type CourseRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Course, error)
	Create(ctx context.Context, course *domain.Course) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 생성자
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindByID(ctx context.Context, id uint64) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

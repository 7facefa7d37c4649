package domain

import (
	"time"
)

// Course 강의 엔티티 (가격 계산용 읽기 모델)
type Course struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"column:title;size:200;not null" json:"title"`
	Fee       Money     `gorm:"column:fee;not null" json:"fee"`
	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName GORM 테이블명
func (Course) TableName() string {
	return "courses"
}

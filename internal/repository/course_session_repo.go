package repository

import (
	"context"

	"gorm.io/gorm"

	"coursehub/internal/model"
)

// CourseSessionRepository 课堂数据访问接口
type CourseSessionRepository interface {
	CreateBatch(ctx context.Context, sessions []model.CourseSession) error
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseSession, error)
	DeleteByCourse(ctx context.Context, courseID string) error
}

type courseSessionRepo struct {
	db *gorm.DB
}

// NewCourseSessionRepo 创建 CourseSessionRepository 实例
func NewCourseSessionRepo(db *gorm.DB) CourseSessionRepository {
	return &courseSessionRepo{db: db}
}

func (r *courseSessionRepo) CreateBatch(ctx context.Context, sessions []model.CourseSession) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(sessions, 100).Error
}

func (r *courseSessionRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseSession, error) {
	var sessions []model.CourseSession
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("number ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *courseSessionRepo) DeleteByCourse(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&model.CourseSession{}).Error
}

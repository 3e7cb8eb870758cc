package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursehub/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Upsert(ctx context.Context, semester *model.Semester) error
	GetByYearTerm(ctx context.Context, year, term int) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

// Upsert 按 (year, term) 写入学期，冲突时覆盖日期与来源
func (r *semesterRepo) Upsert(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}, {Name: "term"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_date", "end_date", "source", "updated_at"}),
		}).
		Create(semester).Error
}

func (r *semesterRepo) GetByYearTerm(ctx context.Context, year, term int) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("year = ? AND term = ?", year, term).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) List(ctx context.Context) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Order("year ASC, term ASC").
		Find(&semesters).Error
	if err != nil {
		return nil, err
	}
	return semesters, nil
}

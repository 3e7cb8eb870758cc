package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"coursehub/internal/dto"
	"coursehub/internal/model"
	"coursehub/internal/repository"
)

// ── 课程查询模块业务错误 ──

var ErrCourseNotFound = errors.New("课程不存在")

// CourseService 课程查询业务接口
type CourseService interface {
	List(ctx context.Context, year, term int) ([]dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	ListSessions(ctx context.Context, courseID string) ([]dto.SessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, year, term int) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx, year, term)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	sessions, err := s.repo.CourseSession.ListByCourse(ctx, id)
	if err == nil {
		resp.SessionCount = len(sessions)
	}
	return &resp, nil
}

// ────────────────────── ListSessions ──────────────────────

func (s *courseService) ListSessions(ctx context.Context, courseID string) ([]dto.SessionResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	sessions, err := s.repo.CourseSession.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课堂失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, dto.SessionResponse{
			ID:          sess.SessionID,
			Number:      sess.Number,
			Date:        sess.Date.Format("2006-01-02"),
			StartPeriod: sess.StartPeriod,
			EndPeriod:   sess.EndPeriod,
			StartTime:   sess.StartTime,
			EndTime:     sess.EndTime,
		})
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	// 先删课堂再删课程
	if err := s.repo.CourseSession.DeleteByCourse(ctx, id); err != nil {
		s.logger.Error("删除课堂失败", zap.String("course_id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("course_id", id), zap.Error(err))
		return err
	}
	return nil
}

func toCourseResponse(course *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:              course.CourseID,
		Year:            course.Year,
		Term:            course.Term,
		Code:            course.Code,
		Name:            course.Name,
		Instructor:      course.Instructor,
		ScheduleRaw:     course.ScheduleRaw,
		ScheduleDisplay: course.ScheduleDisplay,
		Hours:           course.Hours,
		Credits:         course.Credits,
	}
}

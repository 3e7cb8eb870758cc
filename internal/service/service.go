package service

import (
	"go.uber.org/zap"

	"coursehub/config"
	"coursehub/internal/repository"
	"coursehub/internal/schedule"
	"coursehub/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Semester SemesterService
	Calendar CalendarService
	Import   ImportService
	Course   CourseService
	Export   ExportService
}

// NewService 创建 Service 聚合
//
// registry 为全局学期注册表，由 main 创建后注入各模块共享；
// cache 允许为 nil（Redis 不可用时日历同步退化为直接拉取）。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	registry *schedule.Registry,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	semesterSvc := NewSemesterService(cfg, repo, registry, logger)
	return &Service{
		Semester: semesterSvc,
		Calendar: NewCalendarService(cfg, semesterSvc, cache, logger),
		Import:   NewImportService(cfg, repo, registry, logger),
		Course:   NewCourseService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}

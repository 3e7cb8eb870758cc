package handler

import "coursehub/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course   *CourseHandler
	Semester *SemesterHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:   NewCourseHandler(svc.Course, svc.Import),
		Semester: NewSemesterHandler(svc.Semester, svc.Calendar),
		Export:   NewExportHandler(svc.Export),
	}
}

package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coursehub/internal/service"
	"coursehub/pkg/response"
)

// 匯入 CSV 大小上限
const maxImportFileSize = 10 * 1024 * 1024 // 10MB

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	importSvc service.ImportService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, importSvc service.ImportService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, importSvc: importSvc}
}

// ImportCourses 匯入课程 CSV
// POST /api/v1/courses/import  (multipart: file=课程CSV, holidays=2025-10-08,2026-01-01)
func (h *CourseHandler) ImportCourses(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 12001, "缺少上传文件 file")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		response.BadRequest(c, 12002, "文件过大")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 12003, "读取上传文件失败")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImportFileSize))
	if err != nil {
		response.BadRequest(c, 12003, "读取上传文件失败")
		return
	}

	holidays, err := parseHolidays(c.PostForm("holidays"))
	if err != nil {
		response.BadRequest(c, 12004, "holidays 日期格式错误（应为 2006-01-02，逗号分隔）")
		return
	}

	report, err := h.importSvc.ImportCourses(c.Request.Context(), raw, holidays)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCSV) {
			response.UnprocessableEntity(c, 12005, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// ListCourses 获取课程列表
// GET /api/v1/courses?year=114&term=1
func (h *CourseHandler) ListCourses(c *gin.Context) {
	year, ok := optionalIntQuery(c, "year")
	if !ok {
		response.BadRequest(c, 12006, "year 必须为整数")
		return
	}
	term, ok := optionalIntQuery(c, "term")
	if !ok {
		response.BadRequest(c, 12006, "term 必须为整数")
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), year, term)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := c.Param("id")

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// ListCourseSessions 获取课程的课堂表
// GET /api/v1/courses/:id/sessions
func (h *CourseHandler) ListCourseSessions(c *gin.Context) {
	id := c.Param("id")

	sessions, err := h.courseSvc.ListSessions(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// DeleteCourse 删除课程及其课堂
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")

	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12101, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// parseHolidays 解析逗号分隔的假日列表
func parseHolidays(raw string) ([]time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var holidays []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, day)
	}
	return holidays, nil
}

// optionalIntQuery 读取可选整数查询参数；缺省返回 0
func optionalIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

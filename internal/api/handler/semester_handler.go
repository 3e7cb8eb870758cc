package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"coursehub/internal/dto"
	"coursehub/internal/schedule"
	"coursehub/internal/service"
	"coursehub/pkg/response"
)

// SemesterHandler 学期模块 HTTP 处理器
type SemesterHandler struct {
	semesterSvc service.SemesterService
	calendarSvc service.CalendarService
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService, calendarSvc service.CalendarService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc, calendarSvc: calendarSvc}
}

// ListSemesters 获取学期列表
// GET /api/v1/semesters
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.semesterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": semesters})
}

// GetSemester 获取单个学期
// GET /api/v1/semesters/:year/:term
func (h *SemesterHandler) GetSemester(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	term, err2 := strconv.Atoi(c.Param("term"))
	if err1 != nil || err2 != nil {
		response.BadRequest(c, 13002, "学年与学期必须为整数")
		return
	}

	semester, err := h.semesterSvc.Get(c.Request.Context(), year, term)
	if err != nil {
		if errors.Is(err, schedule.ErrUnknownTerm) {
			response.NotFound(c, 13003, "学期不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, semester)
}

// UpsertSemester 手动登记/覆盖学期
// PUT /api/v1/semesters
func (h *SemesterHandler) UpsertSemester(c *gin.Context) {
	var req dto.UpsertSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	semester, err := h.semesterSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSemesterDateInvalid) {
			response.UnprocessableEntity(c, 13001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, semester)
}

// SyncSemesters 从学校行事历同步学期
// POST /api/v1/semesters/sync
func (h *SemesterHandler) SyncSemesters(c *gin.Context) {
	var req dto.SyncSemestersRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.calendarSvc.Sync(c.Request.Context(), req.ICSURL)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}

	response.OK(c, report)
}

func (h *SemesterHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarURLMissing):
		response.BadRequest(c, 13101, "未配置行事历地址")
	case errors.Is(err, service.ErrCalendarFetch):
		response.BadGateway(c, 13102, "获取行事历失败")
	case errors.Is(err, service.ErrCalendarParse):
		response.UnprocessableEntity(c, 13103, "行事历格式解析失败")
	default:
		response.InternalError(c)
	}
}

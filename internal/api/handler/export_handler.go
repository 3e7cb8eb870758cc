package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"coursehub/internal/service"
	"coursehub/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCourseSessions 导出课程的课堂表
// GET /api/v1/courses/:id/export
func (h *ExportHandler) ExportCourseSessions(c *gin.Context) {
	courseID := c.Param("id")

	buf, filename, err := h.exportSvc.ExportCourseSessions(c.Request.Context(), courseID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportCourseNotFound):
		response.NotFound(c, 14101, "课程不存在")
	case errors.Is(err, service.ErrExportNoSessions):
		response.BadRequest(c, 14102, "该课程暂无课堂记录")
	default:
		response.InternalError(c)
	}
}

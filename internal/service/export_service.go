package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coursehub/internal/repository"
	"coursehub/internal/schedule"
)

// ── 导出模块业务错误 ──

var (
	ErrExportCourseNotFound = errors.New("课程不存在")
	ErrExportNoSessions     = errors.New("该课程暂无课堂记录")
	ErrExportGenerateFail   = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 课堂表导出为 Excel (.xlsx)，一行一堂课
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportCourseSessions 导出某门课程的课堂表
	ExportCourseSessions(ctx context.Context, courseID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportCourseSessions ──────────────────────
//
// 输出格式：
//   - 标题行：课程名 — 课堂表
//   - 表头：堂次 | 日期 | 星期 | 节次 | 时间
//   - 数据行按堂次升序

func (s *exportService) ExportCourseSessions(ctx context.Context, courseID string) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	sessions, err := s.repo.CourseSession.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课堂失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课堂表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 课堂表", course.Name))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"堂次", "日期", "星期", "节次", "时间"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
	}

	// 数据行
	for i, sess := range sessions {
		row := i + 3
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sess.Number)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sess.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), schedule.WeekdayName(sess.Date.Weekday()))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("第%d-%d节", sess.StartPeriod, sess.EndPeriod))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%s-%s", sess.StartTime, sess.EndTime))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课堂表_%s.xlsx", course.Name)
	return buf, filename, nil
}

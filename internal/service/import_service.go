package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursehub/config"
	"coursehub/internal/dto"
	"coursehub/internal/model"
	"coursehub/internal/repository"
	"coursehub/internal/schedule"
)

// ── 课程匯入 ──
//
// 流程：CSV 清洗 → 逐行解析课表 → 解析学年学期 → 展开课堂 → 持久化。
// 行与行互不影响：任何一行失败只记入报告，批次继续。两类行级错误
// （清洗失败、解析/生成失败）合并在同一份 rowErrors 中，按行号排序。

// ImportService 课程匯入业务接口
type ImportService interface {
	// ImportCourses 匯入课程 CSV；holidays 为整天停课的假日
	ImportCourses(ctx context.Context, raw []byte, holidays []time.Time) (*dto.ImportReport, error)
}

type importService struct {
	cfg      *config.Config
	repo     *repository.Repository
	registry *schedule.Registry
	logger   *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(cfg *config.Config, repo *repository.Repository, registry *schedule.Registry, logger *zap.Logger) ImportService {
	return &importService{cfg: cfg, repo: repo, registry: registry, logger: logger}
}

// ────────────────────── ImportCourses ──────────────────────

func (s *importService) ImportCourses(ctx context.Context, raw []byte, holidays []time.Time) (*dto.ImportReport, error) {
	rows, rowErrors, err := IngestCourseCSV(raw, DefaultHeaderAliases())
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{}

	for _, row := range rows {
		sessionCount, err := s.importRow(ctx, row, holidays)
		if err != nil {
			rowErrors = append(rowErrors, dto.RowError{Row: row.Line, Reason: err.Error()})
			continue
		}
		report.Imported++
		report.SessionsCreated += sessionCount
	}

	// 清洗错误与处理错误合并后按行号排序
	sortRowErrors(rowErrors)
	report.Failed = len(rowErrors)
	if max := s.cfg.Import.MaxReportErrors; max > 0 && len(rowErrors) > max {
		rowErrors = rowErrors[:max]
	}
	report.Errors = rowErrors

	s.logger.Info("课程匯入完成",
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed),
		zap.Int("sessions_created", report.SessionsCreated),
	)
	return report, nil
}

// importRow 处理单行：解析、生成并持久化；返回生成的课堂数
func (s *importService) importRow(ctx context.Context, row CourseRow, holidays []time.Time) (int, error) {
	spec, err := schedule.ParseSchedule(row.ScheduleRaw)
	if err != nil {
		return 0, err
	}

	term, err := s.registry.Resolve(row.Year, row.Term)
	if err != nil {
		return 0, err
	}

	sessions, err := schedule.Generate(spec, term, holidays, s.cfg.Import.SessionCap)
	if err != nil {
		return 0, err
	}

	course := &model.Course{
		CourseID:        uuid.NewString(),
		Year:            row.Year,
		Term:            row.Term,
		Code:            row.Code,
		Name:            row.Name,
		Instructor:      row.Instructor,
		ScheduleRaw:     row.ScheduleRaw,
		ScheduleDisplay: spec.Display(),
		Hours:           row.Hours,
		Credits:         row.Credits,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("持久化课程失败", zap.String("name", row.Name), zap.Error(err))
		return 0, errors.New("保存课程失败")
	}

	records := make([]model.CourseSession, 0, len(sessions))
	for i, sess := range sessions {
		records = append(records, model.CourseSession{
			SessionID:   uuid.NewString(),
			CourseID:    course.CourseID,
			Number:      i + 1,
			Date:        sess.Date,
			StartPeriod: sess.StartPeriod,
			EndPeriod:   sess.EndPeriod,
			StartTime:   sess.Start.String(),
			EndTime:     sess.End.String(),
		})
	}
	if err := s.repo.CourseSession.CreateBatch(ctx, records); err != nil {
		s.logger.Error("持久化课堂失败", zap.String("course_id", course.CourseID), zap.Error(err))
		// 课堂写入失败时回收课程记录，避免半成品
		if delErr := s.repo.Course.Delete(ctx, course.CourseID); delErr != nil {
			s.logger.Error("回收课程记录失败", zap.String("course_id", course.CourseID), zap.Error(delErr))
		}
		return 0, errors.New("保存课堂失败")
	}

	return len(records), nil
}

// sortRowErrors 按行号升序排列，使清洗错误与处理错误交织有序
func sortRowErrors(errs []dto.RowError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Row < errs[j].Row
	})
}

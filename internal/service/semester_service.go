package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"coursehub/config"
	"coursehub/internal/dto"
	"coursehub/internal/model"
	"coursehub/internal/repository"
	"coursehub/internal/schedule"
)

// ── 学期模块业务错误 ──

var (
	ErrSemesterDateInvalid = errors.New("学期结束日期必须不早于开始日期")
)

// 学期来源
const (
	semesterSourceConfig   = "config"
	semesterSourceCalendar = "calendar"
)

// SemesterService 学期业务接口
//
// 登记表是进程内状态，数据库是跨重启的持久副本：启动时 LoadRegistry
// 把配置预置与已持久化的条目读回登记表，之后所有写入同时落两处。
type SemesterService interface {
	List(ctx context.Context) ([]dto.SemesterResponse, error)
	Get(ctx context.Context, year, term int) (*dto.SemesterResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertSemesterRequest) (*dto.SemesterResponse, error)
	// LoadRegistry 启动时装载登记表：配置预置条目 + 数据库已存条目
	LoadRegistry(ctx context.Context) error
	// ApplyTerms 批量写入推断出的学期（登记表 + 数据库），同键覆盖
	ApplyTerms(ctx context.Context, terms []schedule.Term, source string) error
}

type semesterService struct {
	cfg      *config.Config
	repo     *repository.Repository
	registry *schedule.Registry
	logger   *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(cfg *config.Config, repo *repository.Repository, registry *schedule.Registry, logger *zap.Logger) SemesterService {
	return &semesterService{cfg: cfg, repo: repo, registry: registry, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context) ([]dto.SemesterResponse, error) {
	terms := s.registry.All()
	result := make([]dto.SemesterResponse, 0, len(terms))
	for _, t := range terms {
		result = append(result, toSemesterResponse(t, ""))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *semesterService) Get(ctx context.Context, year, term int) (*dto.SemesterResponse, error) {
	t, err := s.registry.Resolve(year, term)
	if err != nil {
		return nil, err
	}

	// 来源取数据库副本（登记表不携带出处）
	source := ""
	if m, dbErr := s.repo.Semester.GetByYearTerm(ctx, year, term); dbErr == nil {
		source = m.Source
	}

	resp := toSemesterResponse(t, source)
	return &resp, nil
}

// ────────────────────── Upsert ──────────────────────

func (s *semesterService) Upsert(ctx context.Context, req *dto.UpsertSemesterRequest) (*dto.SemesterResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}
	if start.After(end) {
		return nil, ErrSemesterDateInvalid
	}

	term := schedule.Term{Year: req.Year, Term: req.Term, Start: start, End: end}
	if err := s.ApplyTerms(ctx, []schedule.Term{term}, semesterSourceConfig); err != nil {
		return nil, err
	}

	resp := toSemesterResponse(term, semesterSourceConfig)
	return &resp, nil
}

// ────────────────────── LoadRegistry ──────────────────────

func (s *semesterService) LoadRegistry(ctx context.Context) error {
	// 先装配置预置，再用数据库条目覆盖：持久化副本包含上次校历同步的结果
	for _, seed := range s.cfg.Calendar.SeedTerms {
		start, err := time.Parse("2006-01-02", seed.StartDate)
		if err != nil {
			return ErrSemesterDateInvalid
		}
		end, err := time.Parse("2006-01-02", seed.EndDate)
		if err != nil {
			return ErrSemesterDateInvalid
		}
		if start.After(end) {
			return ErrSemesterDateInvalid
		}
		s.registry.Put(schedule.Term{Year: seed.Year, Term: seed.Term, Start: start, End: end})
	}

	persisted, err := s.repo.Semester.List(ctx)
	if err != nil {
		s.logger.Error("读取已持久化学期失败", zap.Error(err))
		return err
	}
	for _, m := range persisted {
		s.registry.Put(schedule.Term{Year: m.Year, Term: m.Term, Start: m.StartDate, End: m.EndDate})
	}

	s.logger.Info("学期登记表装载完成",
		zap.Int("seeded", len(s.cfg.Calendar.SeedTerms)),
		zap.Int("persisted", len(persisted)),
	)
	return nil
}

// ────────────────────── ApplyTerms ──────────────────────

func (s *semesterService) ApplyTerms(ctx context.Context, terms []schedule.Term, source string) error {
	for _, t := range terms {
		s.registry.Put(t)

		m := &model.Semester{
			Year:      t.Year,
			Term:      t.Term,
			StartDate: t.Start,
			EndDate:   t.End,
			Source:    source,
		}
		if err := s.repo.Semester.Upsert(ctx, m); err != nil {
			s.logger.Error("持久化学期失败",
				zap.Int("year", t.Year),
				zap.Int("term", t.Term),
				zap.Error(err))
			return err
		}

		s.logger.Info("已更新学期",
			zap.Int("year", t.Year),
			zap.Int("term", t.Term),
			zap.String("start", t.Start.Format("2006-01-02")),
			zap.String("end", t.End.Format("2006-01-02")),
			zap.String("source", source),
		)
	}
	return nil
}

// ── 内部辅助方法 ──

func toSemesterResponse(t schedule.Term, source string) dto.SemesterResponse {
	return dto.SemesterResponse{
		Year:      t.Year,
		Term:      t.Term,
		StartDate: t.Start.Format("2006-01-02"),
		EndDate:   t.End.Format("2006-01-02"),
		Source:    source,
	}
}

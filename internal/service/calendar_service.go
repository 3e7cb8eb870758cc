package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"coursehub/config"
	"coursehub/internal/dto"
	"coursehub/internal/schedule"
	"coursehub/pkg/redis"
)

// ── 校历同步 ──
//
// 职责：抓取学校公开行事历（iCal），摘出 (标题, 日期) 事件，交给
// schedule.InferTerms 推断学期边界，并把结果写入登记表与数据库。
//
// 原始 ICS 内容缓存在 Redis（TTL 见 calendar.cache_ttl），重复同步
// 不会反复打外部日历；Redis 不可用时直接降级为每次抓取。

var (
	ErrCalendarURLMissing = errors.New("未配置行事历地址")
	ErrCalendarFetch      = errors.New("获取行事历失败")
	ErrCalendarParse      = errors.New("行事历格式解析失败")
)

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// CalendarService 校历同步业务接口
type CalendarService interface {
	// Sync 抓取行事历并推断学期；icsURL 为空时使用配置默认值
	Sync(ctx context.Context, icsURL string) (*dto.SyncReport, error)
}

type calendarService struct {
	cfg         *config.Config
	semesterSvc SemesterService
	cache       *redis.Client // 可为 nil：降级为每次抓取
	logger      *zap.Logger
	httpClient  *http.Client
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.Config, semesterSvc SemesterService, cache *redis.Client, logger *zap.Logger) CalendarService {
	return &calendarService{
		cfg:         cfg,
		semesterSvc: semesterSvc,
		cache:       cache,
		logger:      logger,
		httpClient:  &http.Client{Timeout: icsFetchTimeout},
	}
}

// ────────────────────── Sync ──────────────────────

func (s *calendarService) Sync(ctx context.Context, icsURL string) (*dto.SyncReport, error) {
	if icsURL == "" {
		icsURL = s.cfg.Calendar.ICSURL
	}
	if icsURL == "" {
		return nil, ErrCalendarURLMissing
	}

	content, err := s.fetchFeed(ctx, icsURL)
	if err != nil {
		return nil, err
	}

	events, err := parseCalendarEvents(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	rules := inferenceRules(&s.cfg.Calendar)
	terms := schedule.InferTerms(events, rules)

	if err := s.semesterSvc.ApplyTerms(ctx, terms, semesterSourceCalendar); err != nil {
		return nil, err
	}

	s.logger.Info("校历同步完成",
		zap.Int("events", len(events)),
		zap.Int("resolved", len(terms)),
	)

	report := &dto.SyncReport{
		EventsScanned: len(events),
		Resolved:      make([]dto.SemesterResponse, 0, len(terms)),
	}
	for _, t := range terms {
		report.Resolved = append(report.Resolved, toSemesterResponse(t, semesterSourceCalendar))
	}
	return report, nil
}

// fetchFeed 取回 ICS 内容，优先命中缓存
func (s *calendarService) fetchFeed(ctx context.Context, rawURL string) (string, error) {
	if s.cache != nil {
		if content, ok, err := s.cache.GetFeed(ctx, rawURL); err == nil && ok {
			return content, nil
		}
	}

	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCalendarFetch, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCalendarFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrCalendarFetch, resp.StatusCode)
	}

	// 限制响应体大小，防止异常 URL 返回超大内容
	body, err := io.ReadAll(io.LimitReader(resp.Body, icsMaxFileSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCalendarFetch, err)
	}
	content := string(body)

	if s.cache != nil {
		if err := s.cache.SetFeed(ctx, rawURL, content, s.cfg.Calendar.CacheTTL); err != nil {
			s.logger.Warn("写入行事历缓存失败", zap.Error(err))
		}
	}
	return content, nil
}

// parseCalendarEvents 把 ICS 内容摘成 (标题, 日期) 事件序列
//
// 只取 SUMMARY 与 DTSTART 的日期部分；缺一者的事件跳过。
func parseCalendarEvents(reader io.Reader) ([]schedule.CalendarEvent, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarParse, err)
	}

	var events []schedule.CalendarEvent
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			continue
		}
		date, ok := eventDate(evt)
		if !ok {
			continue
		}
		events = append(events, schedule.CalendarEvent{
			Title: strings.TrimSpace(summary.Value),
			Date:  date,
		})
	}
	return events, nil
}

// eventDate 解析 DTSTART 的日期部分（整日与带时刻两种格式）
func eventDate(evt *ics.VEvent) (time.Time, bool) {
	prop := evt.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil {
		return time.Time{}, false
	}
	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, prop.Value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// inferenceRules 把校历配置换算为推断规则
func inferenceRules(cfg *config.CalendarConfig) schedule.InferenceRules {
	rules := schedule.InferenceRules{
		YearPivotMonth: time.Month(cfg.YearPivotMonth),
	}
	for _, m := range cfg.FirstTermStartMonths {
		rules.FirstTermStartMonths = append(rules.FirstTermStartMonths, time.Month(m))
	}
	for _, m := range cfg.SecondTermStartMonths {
		rules.SecondTermStartMonths = append(rules.SecondTermStartMonths, time.Month(m))
	}
	return rules
}

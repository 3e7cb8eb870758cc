package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// icsFixture 以 CRLF 拼接 ICS 文本（iCal 规范行结束符）
func icsFixture(lines ...string) string {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//coursehub//test//EN",
	}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func icsEvent(uid, date, summary string) []string {
	return []string{
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTART;VALUE=DATE:" + date,
		"SUMMARY:" + summary,
		"END:VEVENT",
	}
}

func newCalendarTestEnv(t *testing.T) (*testEnv, CalendarService) {
	t.Helper()
	env := newTestEnv(t)
	env.cfg.Calendar.YearPivotMonth = 8
	env.cfg.Calendar.FirstTermStartMonths = []int{8, 9}
	env.cfg.Calendar.SecondTermStartMonths = []int{2, 3}
	svc := NewCalendarService(env.cfg, env.semesterSvc, nil, zap.NewNop())
	return env, svc
}

func TestCalendarSync_CanonicalTitles(t *testing.T) {
	var lines []string
	lines = append(lines, icsEvent("1", "20250901", "全校開始上課")...)
	lines = append(lines, icsEvent("2", "20260119", "寒假開始")...)
	lines = append(lines, icsEvent("3", "20251010", "國慶日補假")...) // 无关事件

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(icsFixture(lines...)))
	}))
	defer server.Close()

	env, svc := newCalendarTestEnv(t)

	report, err := svc.Sync(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	if report.EventsScanned != 3 {
		t.Errorf("期望扫描3个事件，实际=%d", report.EventsScanned)
	}
	if len(report.Resolved) != 1 {
		t.Fatalf("期望推断出1个学期，实际=%d", len(report.Resolved))
	}

	resolved := report.Resolved[0]
	if resolved.Year != 114 || resolved.Term != 1 {
		t.Errorf("期望114-1，实际=%d-%d", resolved.Year, resolved.Term)
	}
	if resolved.StartDate != "2025-09-01" {
		t.Errorf("期望开始日2025-09-01，实际=%s", resolved.StartDate)
	}
	// 寒假開始前一天为学期结束
	if resolved.EndDate != "2026-01-18" {
		t.Errorf("期望结束日2026-01-18，实际=%s", resolved.EndDate)
	}

	// 推断结果已写入登记表与数据库
	if _, err := env.registry.Resolve(114, 1); err != nil {
		t.Errorf("期望登记表含114-1，实际: %v", err)
	}
	persisted, err := env.semesters.GetByYearTerm(context.Background(), 114, 1)
	if err != nil {
		t.Fatalf("期望数据库含114-1，实际: %v", err)
	}
	if persisted.Source != "calendar" {
		t.Errorf("期望来源=calendar，实际=%s", persisted.Source)
	}
}

func TestCalendarSync_NumericLabels(t *testing.T) {
	var lines []string
	lines = append(lines, icsEvent("1", "20260223", "114-2-開始")...)
	lines = append(lines, icsEvent("2", "20260630", "114-2-結束")...)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(icsFixture(lines...)))
	}))
	defer server.Close()

	_, svc := newCalendarTestEnv(t)

	report, err := svc.Sync(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	if len(report.Resolved) != 1 {
		t.Fatalf("期望1个学期，实际=%d", len(report.Resolved))
	}
	if report.Resolved[0].Year != 114 || report.Resolved[0].Term != 2 {
		t.Errorf("期望114-2，实际=%d-%d", report.Resolved[0].Year, report.Resolved[0].Term)
	}
}

func TestCalendarSync_MissingURL(t *testing.T) {
	_, svc := newCalendarTestEnv(t)

	if _, err := svc.Sync(context.Background(), ""); !errors.Is(err, ErrCalendarURLMissing) {
		t.Fatalf("期望 ErrCalendarURLMissing，实际: %v", err)
	}
}

func TestCalendarSync_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, svc := newCalendarTestEnv(t)

	if _, err := svc.Sync(context.Background(), server.URL); !errors.Is(err, ErrCalendarFetch) {
		t.Fatalf("期望 ErrCalendarFetch，实际: %v", err)
	}
}

func TestCalendarSync_CorruptFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("这不是日历"))
	}))
	defer server.Close()

	_, svc := newCalendarTestEnv(t)

	if _, err := svc.Sync(context.Background(), server.URL); !errors.Is(err, ErrCalendarParse) {
		t.Fatalf("期望 ErrCalendarParse，实际: %v", err)
	}
}

func TestParseCalendarEvents_SkipIncomplete(t *testing.T) {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:no-summary",
		"DTSTART;VALUE=DATE:20250901",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-date",
		"SUMMARY:只有标题",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:ok",
		"DTSTART;VALUE=DATE:20250901",
		"SUMMARY:完整事件",
		"END:VEVENT",
	}

	events, err := parseCalendarEvents(strings.NewReader(icsFixture(lines...)))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("期望仅保留完整事件，实际=%d", len(events))
	}
	if events[0].Title != "完整事件" || events[0].Date.Format("2006-01-02") != "2025-09-01" {
		t.Errorf("事件内容错误: %+v", events[0])
	}
}

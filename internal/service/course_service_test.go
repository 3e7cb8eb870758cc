package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"coursehub/internal/model"
)

func seedCourse(t *testing.T, env *testEnv, id, name string, year, term int, sessionCount int) {
	t.Helper()
	ctx := context.Background()

	if err := env.courses.Create(ctx, &model.Course{
		CourseID: id, Year: year, Term: term, Name: name,
		ScheduleRaw: "三9", ScheduleDisplay: "星期三 第9节 (14:10-15:00)",
	}); err != nil {
		t.Fatalf("预置课程失败: %v", err)
	}

	sessions := make([]model.CourseSession, 0, sessionCount)
	for i := 0; i < sessionCount; i++ {
		sessions = append(sessions, model.CourseSession{
			SessionID: id + "-s" + string(rune('a'+i)),
			CourseID:  id, Number: i + 1,
			Date:        time.Date(2025, 9, 3+7*i, 0, 0, 0, 0, time.UTC),
			StartPeriod: 9, EndPeriod: 9,
			StartTime: "14:10", EndTime: "15:00",
		})
	}
	if len(sessions) > 0 {
		if err := env.sessions.CreateBatch(ctx, sessions); err != nil {
			t.Fatalf("预置课堂失败: %v", err)
		}
	}
}

func TestCourseList_FilterByYearTerm(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, zap.NewNop())
	seedCourse(t, env, "c1", "资料结构", 114, 1, 0)
	seedCourse(t, env, "c2", "演算法", 114, 2, 0)
	seedCourse(t, env, "c3", "微积分", 113, 1, 0)

	all, err := svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("期望不过滤时3门，实际=%d", len(all))
	}

	filtered, err := svc.List(context.Background(), 114, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "资料结构" {
		t.Errorf("期望114-1仅资料结构，实际=%v", filtered)
	}
}

func TestCourseGetByID_WithSessionCount(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, zap.NewNop())
	seedCourse(t, env, "c1", "资料结构", 114, 1, 3)

	course, err := svc.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if course.SessionCount != 3 {
		t.Errorf("期望课堂数=3，实际=%d", course.SessionCount)
	}
	if course.ScheduleDisplay != "星期三 第9节 (14:10-15:00)" {
		t.Errorf("展示文本错误: %s", course.ScheduleDisplay)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestCourseListSessions_OrderedByNumber(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, zap.NewNop())
	seedCourse(t, env, "c1", "资料结构", 114, 1, 3)

	sessions, err := svc.ListSessions(context.Background(), "c1")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("期望3堂，实际=%d", len(sessions))
	}
	for i, sess := range sessions {
		if sess.Number != i+1 {
			t.Errorf("第%d项期望堂次=%d，实际=%d", i, i+1, sess.Number)
		}
	}
	if sessions[0].Date != "2025-09-03" {
		t.Errorf("期望首堂日期2025-09-03，实际=%s", sessions[0].Date)
	}

	if _, err := svc.ListSessions(context.Background(), "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestCourseDelete_CascadeSessions(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, zap.NewNop())
	seedCourse(t, env, "c1", "资料结构", 114, 1, 2)

	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if len(env.courses.courses) != 0 {
		t.Errorf("期望课程已删除，实际残留=%d", len(env.courses.courses))
	}
	if len(env.sessions.sessions["c1"]) != 0 {
		t.Errorf("期望课堂已连带删除，实际残留=%d", len(env.sessions.sessions["c1"]))
	}

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

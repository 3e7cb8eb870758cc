package schedule

import (
	"testing"
	"time"
)

func testRules() InferenceRules {
	return InferenceRules{
		YearPivotMonth:        time.August,
		FirstTermStartMonths:  []time.Month{time.August, time.September},
		SecondTermStartMonths: []time.Month{time.February, time.March},
	}
}

func TestInferTerms_CanonicalPair(t *testing.T) {
	events := []CalendarEvent{
		{Title: "全校開始上課", Date: date(2025, 9, 1)},
		{Title: "寒假開始", Date: date(2026, 1, 19)},
	}

	terms := InferTerms(events, testRules())
	if len(terms) != 1 {
		t.Fatalf("期望推断出1个学期，实际%d个", len(terms))
	}

	got := terms[0]
	if got.Year != 114 || got.Term != 1 {
		t.Errorf("期望学年114第1学期，实际%d-%d", got.Year, got.Term)
	}
	if !got.Start.Equal(date(2025, 9, 1)) {
		t.Errorf("开学日期不符: %s", got.Start.Format("2006-01-02"))
	}
	// 寒假第一天不上课，学期结束日为前一天
	if !got.End.Equal(date(2026, 1, 18)) {
		t.Errorf("结束日期应为寒假前一天 2026-01-18，实际 %s", got.End.Format("2006-01-02"))
	}
}

func TestInferTerms_SummerBreakEndsSecondTerm(t *testing.T) {
	events := []CalendarEvent{
		{Title: "全校開始上課", Date: date(2026, 2, 23)},
		{Title: "暑假開始", Date: date(2026, 7, 1)},
	}

	terms := InferTerms(events, testRules())
	if len(terms) != 1 {
		t.Fatalf("期望推断出1个学期，实际%d个", len(terms))
	}
	got := terms[0]
	if got.Year != 114 || got.Term != 2 {
		t.Errorf("期望学年114第2学期，实际%d-%d", got.Year, got.Term)
	}
	if !got.End.Equal(date(2026, 6, 30)) {
		t.Errorf("结束日期应为暑假前一天 2026-06-30，实际 %s", got.End.Format("2006-01-02"))
	}
}

func TestInferTerms_CanonicalBeatsGeneric(t *testing.T) {
	canonical := CalendarEvent{Title: "全校開始上課", Date: date(2025, 9, 1)}
	generic := CalendarEvent{Title: "114-1 Start", Date: date(2025, 9, 8)}
	end := CalendarEvent{Title: "114-1-結束", Date: date(2026, 1, 16)}

	// 精确条目无论扫描先后都胜出
	for _, events := range [][]CalendarEvent{
		{canonical, generic, end},
		{generic, canonical, end},
	} {
		terms := InferTerms(events, testRules())
		if len(terms) != 1 {
			t.Fatalf("期望推断出1个学期，实际%d个", len(terms))
		}
		if !terms[0].Start.Equal(date(2025, 9, 1)) {
			t.Errorf("开学日期应采用精确条目 2025-09-01，实际 %s",
				terms[0].Start.Format("2006-01-02"))
		}
	}
}

func TestInferTerms_GenericLabelPatterns(t *testing.T) {
	events := []CalendarEvent{
		{Title: "114-1-開始", Date: date(2025, 9, 1)},
		{Title: "114-1-結束", Date: date(2026, 1, 16)},
		{Title: "114學年度第二學期開始", Date: date(2026, 2, 23)},
		{Title: "第2學期結束", Date: date(2026, 6, 30)}, // 无学年度，按日期推算为114
	}

	terms := InferTerms(events, testRules())
	if len(terms) != 2 {
		t.Fatalf("期望推断出2个学期，实际%d个", len(terms))
	}
	if terms[0].Term != 1 || terms[1].Term != 2 {
		t.Errorf("学期排序错误: %v", terms)
	}
	if terms[1].Year != 114 {
		t.Errorf("无学年度的结束事件应推算为学年114，实际%d", terms[1].Year)
	}
	if !terms[1].End.Equal(date(2026, 6, 30)) {
		t.Errorf("宽泛结束条目取事件当日，实际 %s", terms[1].End.Format("2006-01-02"))
	}
}

func TestInferTerms_PartialBoundaryUnresolved(t *testing.T) {
	// 只有开学事件：单边不成对，不产出学期
	events := []CalendarEvent{
		{Title: "全校開始上課", Date: date(2025, 9, 1)},
	}
	if terms := InferTerms(events, testRules()); len(terms) != 0 {
		t.Errorf("单边边界不应产出学期，实际%d个", len(terms))
	}
}

func TestInferTerms_UnrecognizedTitlesSkipped(t *testing.T) {
	events := []CalendarEvent{
		{Title: "校庆运动会", Date: date(2025, 11, 10)},
		{Title: "期中考试周", Date: date(2025, 11, 3)},
		{Title: "", Date: date(2025, 9, 1)},
	}
	if terms := InferTerms(events, testRules()); len(terms) != 0 {
		t.Errorf("无法识别的标题应被跳过，实际产出%d个学期", len(terms))
	}
}

func TestInferTerms_StartAfterEndDiscarded(t *testing.T) {
	events := []CalendarEvent{
		{Title: "114-1-開始", Date: date(2026, 3, 1)},
		{Title: "114-1-結束", Date: date(2026, 1, 16)},
	}
	if terms := InferTerms(events, testRules()); len(terms) != 0 {
		t.Errorf("开始晚于结束的学期应被丢弃，实际产出%d个", len(terms))
	}
}

func TestInferTerms_SamePriorityLastWins(t *testing.T) {
	events := []CalendarEvent{
		{Title: "114-1-開始", Date: date(2025, 9, 1)},
		{Title: "114-1-開始", Date: date(2025, 9, 8)}, // 同优先级，后扫描者胜出
		{Title: "114-1-結束", Date: date(2026, 1, 16)},
	}
	terms := InferTerms(events, testRules())
	if len(terms) != 1 {
		t.Fatalf("期望推断出1个学期，实际%d个", len(terms))
	}
	if !terms[0].Start.Equal(date(2025, 9, 8)) {
		t.Errorf("同优先级应采用后扫描候选，实际 %s", terms[0].Start.Format("2006-01-02"))
	}
}

func TestInferenceRules_AcademicYear(t *testing.T) {
	rules := testRules()
	cases := []struct {
		term int
		d    time.Time
		want int
	}{
		{1, date(2025, 9, 1), 114},  // 第1学期开学（8月后）
		{1, date(2026, 1, 19), 114}, // 第1学期结束（跨公历年）
		{2, date(2026, 2, 23), 114}, // 第2学期开学
		{2, date(2026, 7, 1), 114},  // 第2学期结束
	}
	for _, c := range cases {
		if got := rules.academicYear(c.term, c.d); got != c.want {
			t.Errorf("term=%d date=%s 期望学年%d，实际%d",
				c.term, c.d.Format("2006-01-02"), c.want, got)
		}
	}
}

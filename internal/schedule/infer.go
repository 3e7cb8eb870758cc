package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ── 校历事件推断 ──
//
// 从行事历事件标题中识别学期边界。行事历同时存在精确条目（"全校開始上課"）
// 和宽泛条目（"114-1-開始"），两者可能指向同一边界且日期不同，因此按
// 两级优先级折叠：精确条目优先级 2，宽泛条目优先级 1，新候选仅在优先级
// >= 已存候选时覆盖。结果与扫描顺序无关（同优先级时后扫描者胜出）。
//
// 识别不出的标题不是错误，直接跳过。

// BoundaryKind 学期边界类型
type BoundaryKind int

const (
	BoundaryStart BoundaryKind = iota // 开学日
	BoundaryEnd                       // 最后上课日
)

// 候选优先级
const (
	priorityGeneric   = 1 // 宽泛条目："114-1-開始" / "第1學期結束"
	priorityCanonical = 2 // 精确条目："全校開始上課" / "寒假開始" / "暑假開始"
)

// CalendarEvent 行事历事件，仅取标题与日期
type CalendarEvent struct {
	Title string
	Date  time.Time
}

// InferenceRules 学年学期推断规则（来自配置，见 config.CalendarConfig）
type InferenceRules struct {
	// YearPivotMonth 学年分界月：事件月份 >= 分界月时民国学年 = 公历年-1911，
	// 否则归属前一学年（公历年-1912）
	YearPivotMonth time.Month
	// FirstTermStartMonths 第 1 学期开学月份窗口
	FirstTermStartMonths []time.Month
	// SecondTermStartMonths 第 2 学期开学月份窗口
	SecondTermStartMonths []time.Month
}

// academicYear 根据事件日期推断民国学年
//
// 第 1 学期跨公历年（8 月开学、次年 1 月结束），分界月之前的第 1 学期
// 事件归属前一学年；第 2 学期整段都在学年的后半，一律归属前一公历年。
func (r InferenceRules) academicYear(term int, date time.Time) int {
	if term == 1 && date.Month() >= r.YearPivotMonth {
		return date.Year() - 1911
	}
	return date.Year() - 1912
}

// termForStartMonth 开学类事件按月份归入学期，0 表示无法归入
func (r InferenceRules) termForStartMonth(m time.Month) int {
	for _, fm := range r.FirstTermStartMonths {
		if m == fm {
			return 1
		}
	}
	for _, sm := range r.SecondTermStartMonths {
		if m == sm {
			return 2
		}
	}
	return 0
}

// ── 宽泛条目的标题模式 ──

var (
	// "114-1-開始" / "114-1 结束" / "114-1 start"
	reNumericLabel = regexp.MustCompile(`^(\d{2,3})-([12])[-\s]+(開始|开始|結束|结束|[Ss]tart|[Ee]nd)$`)
	// "114學年度第一學期開始" / "114學年度第2學期開課"
	reYearTermStart = regexp.MustCompile(`^(\d{3})學年度第?([一二12])學期(開始|開學|開課)`)
	// "第1學期結束" / "第二學期終止"（无学年度，按日期推算）
	reTermEnd = regexp.MustCompile(`^第?([一二12])學期(結束|结束|終止|[Ee]nd)`)
)

// boundaryCandidate 某一边界的当前最优候选
type boundaryCandidate struct {
	priority int
	date     time.Time
}

type boundaryRef struct {
	key  TermKey
	kind BoundaryKind
}

// InferTerms 扫描行事历事件并推断学期起止日期
//
// 只返回起止俱全且 start <= end 的学期；单边解析的键留待下一次同步补全。
func InferTerms(events []CalendarEvent, rules InferenceRules) []Term {
	candidates := make(map[boundaryRef]boundaryCandidate)

	for _, ev := range events {
		ref, date, priority, ok := classifyEvent(ev, rules)
		if !ok {
			continue
		}
		if cur, exists := candidates[ref]; !exists || priority >= cur.priority {
			candidates[ref] = boundaryCandidate{priority: priority, date: date}
		}
	}

	// 起止配对
	var terms []Term
	for ref, c := range candidates {
		if ref.kind != BoundaryStart {
			continue
		}
		end, ok := candidates[boundaryRef{key: ref.key, kind: BoundaryEnd}]
		if !ok {
			continue
		}
		if c.date.After(end.date) {
			continue
		}
		terms = append(terms, Term{
			Year:  ref.key.Year,
			Term:  ref.key.Term,
			Start: c.date,
			End:   end.date,
		})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Year != terms[j].Year {
			return terms[i].Year < terms[j].Year
		}
		return terms[i].Term < terms[j].Term
	})
	return terms
}

// classifyEvent 将单个事件归类为某条边界候选
func classifyEvent(ev CalendarEvent, rules InferenceRules) (boundaryRef, time.Time, int, bool) {
	title := strings.TrimSpace(ev.Title)
	date := ev.Date

	// ── 精确条目（优先级 2）──

	switch title {
	case "全校開始上課":
		term := rules.termForStartMonth(date.Month())
		if term == 0 {
			return boundaryRef{}, time.Time{}, 0, false
		}
		key := TermKey{Year: rules.academicYear(term, date), Term: term}
		return boundaryRef{key: key, kind: BoundaryStart}, date, priorityCanonical, true

	case "寒假開始":
		// 寒假第一天不上课：第 1 学期到前一天为止
		key := TermKey{Year: rules.academicYear(1, date), Term: 1}
		return boundaryRef{key: key, kind: BoundaryEnd}, date.AddDate(0, 0, -1), priorityCanonical, true

	case "暑假開始":
		key := TermKey{Year: rules.academicYear(2, date), Term: 2}
		return boundaryRef{key: key, kind: BoundaryEnd}, date.AddDate(0, 0, -1), priorityCanonical, true
	}

	// ── 宽泛条目（优先级 1）──

	if m := reNumericLabel.FindStringSubmatch(title); m != nil {
		year, _ := strconv.Atoi(m[1])
		term, _ := strconv.Atoi(m[2])
		kind := BoundaryEnd
		switch m[3] {
		case "開始", "开始", "Start", "start":
			kind = BoundaryStart
		}
		key := TermKey{Year: year, Term: term}
		return boundaryRef{key: key, kind: kind}, date, priorityGeneric, true
	}

	if m := reYearTermStart.FindStringSubmatch(title); m != nil {
		year, _ := strconv.Atoi(m[1])
		key := TermKey{Year: year, Term: chineseTermNumber(m[2])}
		return boundaryRef{key: key, kind: BoundaryStart}, date, priorityGeneric, true
	}

	if m := reTermEnd.FindStringSubmatch(title); m != nil {
		term := chineseTermNumber(m[1])
		key := TermKey{Year: rules.academicYear(term, date), Term: term}
		return boundaryRef{key: key, kind: BoundaryEnd}, date, priorityGeneric, true
	}

	return boundaryRef{}, time.Time{}, 0, false
}

func chineseTermNumber(s string) int {
	switch s {
	case "一", "1":
		return 1
	default:
		return 2
	}
}

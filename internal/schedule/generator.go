package schedule

import (
	"sort"
	"time"
)

// ── 课堂生成器 ──

// DefaultSessionCap 每门课程默认生成的课堂数上限（一学期 18 周）
const DefaultSessionCap = 18

// Session 一次具体日期的课堂
//
// 同一时段内的连续节次合并为一堂课：起始时刻取第一节的开始，
// 结束时刻取最后一节的结束。
type Session struct {
	Date        time.Time
	StartPeriod int
	EndPeriod   int
	Start       ClockTime
	End         ClockTime
}

// Generate 把周课表在学期区间内展开为具体日期的课堂序列
//
// 逐时段在 [term.Start, term.End] 内取所有匹配星期的日期，假日整天跳过
// 且不顺延；全部时段合并后按日期排序（同日按时段输入顺序），全局截断到
// sessionCap 堂——多个时段共用同一个"第 N 堂"计数。sessionCap <= 0 时
// 取 DefaultSessionCap。
//
// 区间内没有任何匹配日期不是错误，返回空序列。
func Generate(spec ScheduleSpec, term Term, holidays []time.Time, sessionCap int) ([]Session, error) {
	if term.Start.After(term.End) {
		return nil, ErrInvalidTerm
	}
	if sessionCap <= 0 {
		sessionCap = DefaultSessionCap
	}

	excluded := make(map[string]bool, len(holidays))
	for _, d := range holidays {
		excluded[d.Format("2006-01-02")] = true
	}

	type candidate struct {
		session Session
		order   int // 时段在课表中的输入序，用于同日排序
	}
	var all []candidate

	for bi, block := range spec.Blocks {
		start, _, err := TimeRangeFor(block.FirstPeriod())
		if err != nil {
			return nil, err
		}
		_, end, err := TimeRangeFor(block.LastPeriod())
		if err != nil {
			return nil, err
		}

		for d := term.Start; !d.After(term.End); d = d.AddDate(0, 0, 1) {
			if d.Weekday() != block.Weekday {
				continue
			}
			if excluded[d.Format("2006-01-02")] {
				continue
			}
			all = append(all, candidate{
				session: Session{
					Date:        d,
					StartPeriod: block.FirstPeriod(),
					EndPeriod:   block.LastPeriod(),
					Start:       start,
					End:         end,
				},
				order: bi,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].session.Date.Equal(all[j].session.Date) {
			return all[i].session.Date.Before(all[j].session.Date)
		}
		return all[i].order < all[j].order
	})

	if len(all) > sessionCap {
		all = all[:sessionCap]
	}

	sessions := make([]Session, 0, len(all))
	for _, c := range all {
		sessions = append(sessions, c.session)
	}
	return sessions, nil
}

package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ── 课表字符串解析器 ──
//
// 文法：
//   schedule = block (',' block)*
//   block    = pair ('/' pair)*
//   pair     = 星期字符 数字{1,2}
//
// 例："三9/三10/三11" 表示星期三第 9-11 节；"二2,五4" 表示两个独立时段。
// 同一逗号块内、同一星期的节次必须严格连续递增（9/10/11 合法，2/4 非法）；
// 一个斜杠组混用不同星期时按星期各自成块，不丢弃任何一个。
// 任一处不合法即整串失败，不产生部分结果。

// ErrMalformedNotation 无法解析的上课时间格式
var ErrMalformedNotation = errors.New("无法解析的上课时间格式")

// TimeBlock 一个星期内的连续节次段
type TimeBlock struct {
	Weekday time.Weekday
	Periods []int // 严格连续递增，非空
}

// FirstPeriod 段内第一节
func (b TimeBlock) FirstPeriod() int { return b.Periods[0] }

// LastPeriod 段内最后一节
func (b TimeBlock) LastPeriod() int { return b.Periods[len(b.Periods)-1] }

// ScheduleSpec 一串课表字符串解析出的全部时段，保持输入顺序
type ScheduleSpec struct {
	Blocks []TimeBlock
}

// ParseSchedule 解析课表字符串
//
// 逐字符扫描，不做嵌套 split：每个位置只允许出现文法规定的记号，
// 便于把"节次必须连续"和"斜杠组可混星期"作为显式状态转移来校验。
func ParseSchedule(input string) (ScheduleSpec, error) {
	runes := []rune(strings.TrimSpace(input))
	if len(runes) == 0 {
		return ScheduleSpec{}, fmt.Errorf("%w: 空字符串", ErrMalformedNotation)
	}

	var spec ScheduleSpec
	// 当前逗号块内每个星期对应的块下标；逗号重置，保证跨逗号不合并
	blockIdx := make(map[time.Weekday]int)

	i := 0
	for {
		i = skipSpaces(runes, i)
		if i >= len(runes) {
			return ScheduleSpec{}, fmt.Errorf("%w: 分隔符后缺少时段", ErrMalformedNotation)
		}

		// 星期字符
		wd, ok := weekdayTokens[runes[i]]
		if !ok {
			return ScheduleSpec{}, fmt.Errorf("%w: 无效的星期标记 %q", ErrMalformedNotation, string(runes[i]))
		}
		i++

		// 1-2 位节次数字
		j := i
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		if j == i || j-i > 2 {
			return ScheduleSpec{}, fmt.Errorf("%w: %s 后缺少有效节次", ErrMalformedNotation, WeekdayName(wd))
		}
		period, _ := strconv.Atoi(string(runes[i:j]))
		if _, _, err := TimeRangeFor(period); err != nil {
			return ScheduleSpec{}, err
		}
		i = j

		// 归入当前逗号块中对应星期的时段
		if idx, exists := blockIdx[wd]; exists {
			last := spec.Blocks[idx].LastPeriod()
			if period != last+1 {
				return ScheduleSpec{}, fmt.Errorf("%w: %s第%d节与第%d节不连续",
					ErrMalformedNotation, WeekdayName(wd), period, last)
			}
			spec.Blocks[idx].Periods = append(spec.Blocks[idx].Periods, period)
		} else {
			spec.Blocks = append(spec.Blocks, TimeBlock{Weekday: wd, Periods: []int{period}})
			blockIdx[wd] = len(spec.Blocks) - 1
		}

		// 分隔符或结束
		i = skipSpaces(runes, i)
		if i >= len(runes) {
			return spec, nil
		}
		switch runes[i] {
		case '/':
			i++
		case ',':
			i++
			blockIdx = make(map[time.Weekday]int)
		default:
			return ScheduleSpec{}, fmt.Errorf("%w: 意外字符 %q", ErrMalformedNotation, string(runes[i]))
		}
	}
}

func skipSpaces(runes []rune, i int) int {
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// Display 渲染为可读课表，节次区间换算为实际上课时刻
//
// 例："星期三 第9-11节 (14:10-17:10)"，多个时段以 " | " 连接。
func (s ScheduleSpec) Display() string {
	if len(s.Blocks) == 0 {
		return "无上课时间"
	}
	parts := make([]string, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		start, _, _ := TimeRangeFor(b.FirstPeriod())
		_, end, _ := TimeRangeFor(b.LastPeriod())
		parts = append(parts, fmt.Sprintf("%s 第%d-%d节 (%s-%s)",
			WeekdayName(b.Weekday), b.FirstPeriod(), b.LastPeriod(), start, end))
	}
	return strings.Join(parts, " | ")
}

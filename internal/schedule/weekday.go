package schedule

import "time"

// ── 星期标记 ──
//
// 课表字符串采用的 7 个单字符星期标记。导出的课程数据依赖这组字符，
// 不能增删或替换。

// weekdayTokens 单字符标记 → 星期
var weekdayTokens = map[rune]time.Weekday{
	'一': time.Monday,
	'二': time.Tuesday,
	'三': time.Wednesday,
	'四': time.Thursday,
	'五': time.Friday,
	'六': time.Saturday,
	'日': time.Sunday,
}

// weekdayNames 星期 → 显示名称
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "星期一",
	time.Tuesday:   "星期二",
	time.Wednesday: "星期三",
	time.Thursday:  "星期四",
	time.Friday:    "星期五",
	time.Saturday:  "星期六",
	time.Sunday:    "星期日",
}

// WeekdayName 返回星期的中文显示名称
func WeekdayName(wd time.Weekday) string {
	return weekdayNames[wd]
}

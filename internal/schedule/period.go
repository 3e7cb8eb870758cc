package schedule

import (
	"errors"
	"fmt"
)

// ── 节次时间表 ──
//
// 全校统一作息：第 1 节 06:10 起，第 14 节 20:20 止。
// 所有时刻均为 UTC+8 墙钟时间，进程启动后只读。

// ErrInvalidPeriod 节次超出 1-14 范围
var ErrInvalidPeriod = errors.New("节次超出范围（1-14）")

// MinPeriod / MaxPeriod 节次编号的有效区间
const (
	MinPeriod = 1
	MaxPeriod = 14
)

// ClockTime 当日时刻（不含日期，不做时区换算）
type ClockTime struct {
	Hour   int
	Minute int
}

// String 格式化为 "HH:MM"
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes 换算为当日分钟数，用于比较
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before 判断时刻先后
func (t ClockTime) Before(o ClockTime) bool {
	return t.Minutes() < o.Minutes()
}

// periodRange 单个节次的起止时刻
type periodRange struct {
	start ClockTime
	end   ClockTime
}

// periodTable 节次 → 起止时刻。下标 1-14。
var periodTable = map[int]periodRange{
	1:  {ClockTime{6, 10}, ClockTime{7, 0}},
	2:  {ClockTime{7, 10}, ClockTime{8, 0}},
	3:  {ClockTime{8, 10}, ClockTime{9, 0}},
	4:  {ClockTime{9, 10}, ClockTime{10, 0}},
	5:  {ClockTime{10, 20}, ClockTime{11, 10}},
	6:  {ClockTime{11, 20}, ClockTime{12, 10}},
	7:  {ClockTime{12, 10}, ClockTime{13, 0}},
	8:  {ClockTime{13, 10}, ClockTime{14, 0}},
	9:  {ClockTime{14, 10}, ClockTime{15, 0}},
	10: {ClockTime{15, 10}, ClockTime{16, 0}},
	11: {ClockTime{16, 20}, ClockTime{17, 10}},
	12: {ClockTime{17, 20}, ClockTime{18, 10}},
	13: {ClockTime{18, 30}, ClockTime{19, 20}},
	14: {ClockTime{19, 30}, ClockTime{20, 20}},
}

// TimeRangeFor 查询指定节次的起止时刻
func TimeRangeFor(period int) (ClockTime, ClockTime, error) {
	r, ok := periodTable[period]
	if !ok {
		return ClockTime{}, ClockTime{}, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
	return r.start, r.end, nil
}

package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"coursehub/internal/dto"
)

// ── CSV 行清洗管线 ──
//
// 职责：把上传的原始字节整理成逐行的课程记录。
//   - 去除 UTF-8 BOM（试算表导出常带）
//   - 表头按别名映射到规范字段，同一字段按声明顺序取第一个命中的别名
//   - 全空行静默丢弃，不计入错误
//   - 单行字段缺失/数字非法记入 rowErrors，继续处理后续行
//
// 本层不做课表解析、学期解析与课堂生成，调用方逐行驱动，
// 以便把两类行级错误合并为同一份报告。

// ErrEmptyCSV CSV 内容为空（无表头或无数据行）
var ErrEmptyCSV = errors.New("CSV 文件为空")

// CourseRow 清洗后的一行课程记录
type CourseRow struct {
	Line        int // 数据行序号（1 起，不含表头）
	Year        int
	Term        int
	Code        string
	Name        string
	Instructor  string
	ScheduleRaw string
	Hours       *int
	Credits     *int
}

// FieldAliases 规范字段及其接受的表头别名（按声明顺序尝试）
type FieldAliases struct {
	Field   string
	Aliases []string
}

// 规范字段名
const (
	fieldYear       = "year"
	fieldTerm       = "term"
	fieldCode       = "code"
	fieldName       = "name"
	fieldInstructor = "instructor"
	fieldSchedule   = "schedule"
	fieldCredits    = "credits"
)

// DefaultHeaderAliases 教务系统导出格式的默认表头别名
func DefaultHeaderAliases() []FieldAliases {
	return []FieldAliases{
		{fieldYear, []string{"学年", "學年", "Year", "year"}},
		{fieldTerm, []string{"学期", "學期", "Semester", "semester"}},
		{fieldCode, []string{"课程代码", "課程代碼", "Code", "code"}},
		{fieldName, []string{"课程名称", "課程名稱", "Name", "name"}},
		{fieldInstructor, []string{"教师", "教師", "Instructor", "instructor"}},
		{fieldSchedule, []string{"上课时间", "上課時間", "Schedule", "schedule"}},
		{fieldCredits, []string{"上课时数/学分", "上課時數/學分", "Credits", "credits"}},
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IngestCourseCSV 清洗课程 CSV 内容
//
// 返回成功清洗的行与逐行错误；只有整份内容不可用（空文件、表头缺少
// 必要列、CSV 结构损坏）才返回 error。
func IngestCourseCSV(raw []byte, aliases []FieldAliases) ([]CourseRow, []dto.RowError, error) {
	content := bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil, ErrEmptyCSV
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // 行宽不齐交由字段映射处理
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("读取 CSV 表头失败: %w", err)
	}

	colIdx, err := mapHeader(header, aliases)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows      []CourseRow
		rowErrors []dto.RowError
		line      int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("读取 CSV 内容失败: %w", err)
		}
		line++

		if isBlankRecord(record) {
			continue
		}

		row, reason := buildCourseRow(record, colIdx, line)
		if reason != "" {
			rowErrors = append(rowErrors, dto.RowError{Row: line, Reason: reason})
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrors, nil
}

// mapHeader 按别名把规范字段映射到列下标；先声明的别名优先
func mapHeader(header []string, aliases []FieldAliases) (map[string]int, error) {
	idx := make(map[string]int)
	for _, fa := range aliases {
		for _, alias := range fa.Aliases {
			found := -1
			for col, h := range header {
				if strings.TrimSpace(h) == alias {
					found = col
					break
				}
			}
			if found >= 0 {
				idx[fa.Field] = found
				break
			}
		}
	}

	for _, required := range []string{fieldYear, fieldTerm, fieldName, fieldSchedule} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: 表头缺少必要列 %s", ErrEmptyCSV, required)
		}
	}
	return idx, nil
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// buildCourseRow 把一条 CSV 记录映射为课程行；reason 非空表示该行失败
func buildCourseRow(record []string, colIdx map[string]int, line int) (CourseRow, string) {
	field := func(name string) string {
		col, ok := colIdx[name]
		if !ok || col >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[col])
	}

	yearStr := field(fieldYear)
	termStr := field(fieldTerm)
	name := field(fieldName)
	scheduleRaw := field(fieldSchedule)

	if yearStr == "" || termStr == "" || name == "" || scheduleRaw == "" {
		return CourseRow{}, "缺少必填字段（学年/学期/课程名称/上课时间）"
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return CourseRow{}, fmt.Sprintf("学年格式错误: %q", yearStr)
	}
	term, err := strconv.Atoi(termStr)
	if err != nil || (term != 1 && term != 2) {
		return CourseRow{}, fmt.Sprintf("学期格式错误: %q", termStr)
	}

	row := CourseRow{
		Line:        line,
		Year:        year,
		Term:        term,
		Code:        field(fieldCode),
		Name:        strings.Trim(name, "/"), // 教务导出偶见前缀斜杠
		Instructor:  strings.Trim(field(fieldInstructor), "/"),
		ScheduleRaw: scheduleRaw,
	}

	// 学时/学分格式 "3/3"；列缺省合法，有值但不可解析记错误
	if creditsStr := field(fieldCredits); creditsStr != "" {
		hours, credits, ok := parseCreditHours(creditsStr)
		if !ok {
			return CourseRow{}, fmt.Sprintf("学时/学分格式错误: %q", creditsStr)
		}
		row.Hours = hours
		row.Credits = credits
	}

	return row, ""
}

// parseCreditHours 解析 "时数/学分"，如 "3/3"；单段 "3" 视为仅时数
func parseCreditHours(s string) (hours, credits *int, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) == 0 || len(parts) > 2 {
		return nil, nil, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil, false
	}
	hours = &h
	if len(parts) == 2 {
		c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, nil, false
		}
		credits = &c
	}
	return hours, credits, true
}

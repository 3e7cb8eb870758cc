package dto

// ── 课程匯入模块 DTO ──

// RowError 匯入批次中单行的失败记录（行号为 1 起的数据行序号）
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport 课程匯入结果
type ImportReport struct {
	Imported        int        `json:"imported"`
	Failed          int        `json:"failed"`
	SessionsCreated int        `json:"sessions_created"`
	Errors          []RowError `json:"errors"` // 最多保留前 N 条（见 import.max_report_errors）
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID              string `json:"id"`
	Year            int    `json:"year"`
	Term            int    `json:"term"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Instructor      string `json:"instructor"`
	ScheduleRaw     string `json:"schedule_raw"`
	ScheduleDisplay string `json:"schedule_display"`
	Hours           *int   `json:"hours,omitempty"`
	Credits         *int   `json:"credits,omitempty"`
	SessionCount    int    `json:"session_count"`
}

// SessionResponse 课堂信息响应
type SessionResponse struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Date        string `json:"date"` // 2006-01-02
	StartPeriod int    `json:"start_period"`
	EndPeriod   int    `json:"end_period"`
	StartTime   string `json:"start_time"` // 15:04
	EndTime     string `json:"end_time"`
}

package dto

// ── 学期模块 DTO ──

// UpsertSemesterRequest 手动登记/覆盖学期请求
type UpsertSemesterRequest struct {
	Year      int    `json:"year"       binding:"required,min=100,max=200"`
	Term      int    `json:"term"       binding:"required,oneof=1 2"`
	StartDate string `json:"start_date" binding:"required"` // "2025-09-01"
	EndDate   string `json:"end_date"   binding:"required"` // "2026-01-31"
}

// SyncSemestersRequest 校历同步请求；ICSURL 为空时使用配置中的默认行事历
type SyncSemestersRequest struct {
	ICSURL string `json:"ics_url" binding:"omitempty,url"`
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	Year      int    `json:"year"`
	Term      int    `json:"term"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Source    string `json:"source,omitempty"`
}

// SyncReport 校历同步结果
type SyncReport struct {
	EventsScanned int                `json:"events_scanned"`
	Resolved      []SemesterResponse `json:"resolved"`
}

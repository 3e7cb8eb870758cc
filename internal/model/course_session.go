package model

import "time"

// CourseSession 课堂表 — 对应 course_sessions
//
// 一行是一门课程在某个具体日期的一堂课；连续节次已合并，
// StartTime/EndTime 为 UTC+8 墙钟时刻（"15:04" 格式）。
type CourseSession struct {
	SessionID   string    `gorm:"type:uuid;primaryKey"   json:"session_id"`
	CourseID    string    `gorm:"type:uuid;not null;index" json:"course_id"`
	Number      int       `gorm:"type:smallint;not null" json:"number"` // 第 N 堂（1 起）
	Date        time.Time `gorm:"type:date;not null"     json:"date"`
	StartPeriod int       `gorm:"type:smallint;not null" json:"start_period"`
	EndPeriod   int       `gorm:"type:smallint;not null" json:"end_period"`
	StartTime   string    `gorm:"type:time;not null"     json:"start_time"`
	EndTime     string    `gorm:"type:time;not null"     json:"end_time"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (CourseSession) TableName() string { return "course_sessions" }

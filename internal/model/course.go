package model

// Course 课程表 — 对应 courses
//
// ScheduleRaw 保留原始课表字符串（如 "三9/三10/三11"），重新生成课堂时
// 以它为准；ScheduleDisplay 是解析后的可读形式，仅用于展示。
type Course struct {
	CourseID        string `gorm:"type:uuid;primaryKey"              json:"course_id"`
	Year            int    `gorm:"not null"                          json:"year"`     // 民国学年，例 114
	Term            int    `gorm:"type:smallint;not null"            json:"term"`     // 1 | 2
	Code            string `gorm:"type:varchar(50)"                  json:"code"`
	Name            string `gorm:"type:varchar(200);not null"        json:"name"`
	Instructor      string `gorm:"type:varchar(100)"                 json:"instructor"`
	ScheduleRaw     string `gorm:"type:varchar(100);not null"        json:"schedule_raw"`
	ScheduleDisplay string `gorm:"type:varchar(200)"                 json:"schedule_display"`
	Hours           *int   `gorm:"type:smallint"                     json:"hours,omitempty"`
	Credits         *int   `gorm:"type:smallint"                     json:"credits,omitempty"`
	SoftDeleteModel

	// 关联
	Sessions []CourseSession `gorm:"foreignKey:CourseID;references:CourseID" json:"sessions,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

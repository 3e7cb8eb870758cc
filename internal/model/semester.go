package model

import "time"

// Semester 学期表 — 对应 semesters
//
// (Year, Term) 唯一；校历同步与手动配置写同一张表，同键覆盖。
type Semester struct {
	SemesterID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	Year       int       `gorm:"not null;uniqueIndex:idx_semesters_year_term"   json:"year"` // 民国学年
	Term       int       `gorm:"type:smallint;not null;uniqueIndex:idx_semesters_year_term" json:"term"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Source     string    `gorm:"type:varchar(20);not null;default:'config'"     json:"source"` // config | calendar
	BaseModel
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

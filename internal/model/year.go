package model

import "time"

// AcademicYear 学年表 — 对应 academic_year
type AcademicYear struct {
	AcademicYearID int       `gorm:"column:academic_year_id;primaryKey;autoIncrement" json:"academic_year_id"`
	YearLabel      int       `gorm:"not null;uniqueIndex"                             json:"year_label"` // 四位年份，如 2026
	StartDate      time.Time `gorm:"type:date;not null"                               json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null"                               json:"end_date"`
	IsActive       bool      `gorm:"not null;default:false"                           json:"is_active"`

	// 关联
	Terms []Term `gorm:"foreignKey:AcademicYearID;references:AcademicYearID" json:"terms,omitempty"`
}

func (AcademicYear) TableName() string { return "academic_year" }

// Term 学期表 — 对应 term
// 一个学年恰好拆为 3 个学期，创建学年时一次性生成，之后不可变
type Term struct {
	TermID         int       `gorm:"column:term_id;primaryKey;autoIncrement" json:"term_id"`
	AcademicYearID int       `gorm:"not null"                                json:"academic_year_id"`
	TermNumber     int       `gorm:"type:smallint;not null"                  json:"term_number"` // 1 | 2 | 3
	StartDate      time.Time `gorm:"type:date;not null"                      json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null"                      json:"end_date"`
}

func (Term) TableName() string { return "term" }

package model

import "time"

// Student 学生表 — 对应 student
// 学生不做物理删除，仅将 is_active 置为 false
type Student struct {
	StudentID     int       `gorm:"column:student_id;primaryKey;autoIncrement" json:"student_id"`
	StudentNumber string    `gorm:"type:varchar(30);not null;uniqueIndex"      json:"student_number"`
	FirstName     string    `gorm:"type:varchar(50);not null"                  json:"first_name"`
	LastName      string    `gorm:"type:varchar(50);not null"                  json:"last_name"`
	ClassID       int       `gorm:"not null"                                   json:"class_id"`
	IsActive      bool      `gorm:"not null;default:true"                      json:"is_active"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"created_at"`

	// 关联
	Classroom *Classroom `gorm:"foreignKey:ClassID;references:ClassID" json:"classroom,omitempty"`
}

func (Student) TableName() string { return "student" }

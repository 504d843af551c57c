package model

// Grade 年级表 — 对应 grade
type Grade struct {
	GradeID     int `gorm:"column:grade_id;primaryKey;autoIncrement" json:"grade_id"`
	GradeNumber int `gorm:"not null;uniqueIndex"                     json:"grade_number"`
}

func (Grade) TableName() string { return "grade" }

// Classroom 班级表 — 对应 classroom
type Classroom struct {
	ClassID   int    `gorm:"column:class_id;primaryKey;autoIncrement" json:"class_id"`
	GradeID   int    `gorm:"not null"                                 json:"grade_id"`
	ClassName string `gorm:"type:varchar(50);not null"                json:"class_name"`

	// 关联
	Grade *Grade `gorm:"foreignKey:GradeID;references:GradeID" json:"grade,omitempty"`
}

func (Classroom) TableName() string { return "classroom" }

// Subject 科目表 — 对应 subject
// 科目按年级划分：各年级的科目集合相互独立
type Subject struct {
	SubjectID   int    `gorm:"column:subject_id;primaryKey;autoIncrement" json:"subject_id"`
	GradeID     int    `gorm:"not null"                                   json:"grade_id"`
	SubjectName string `gorm:"type:varchar(100);not null"                 json:"subject_name"`
}

func (Subject) TableName() string { return "subject" }

package model

import "time"

// Score 成绩表 — 对应 score
// 身份即 (student_id, subject_id, term_id) 三元组：重复提交覆盖
// score_value / teacher_user_id / recorded_at，绝不追加第二行
type Score struct {
	ScoreID       int       `gorm:"column:score_id;primaryKey;autoIncrement" json:"score_id"`
	StudentID     int       `gorm:"not null;uniqueIndex:uniq_score_triple,priority:1" json:"student_id"`
	SubjectID     int       `gorm:"not null;uniqueIndex:uniq_score_triple,priority:2" json:"subject_id"`
	TermID        int       `gorm:"not null;uniqueIndex:uniq_score_triple,priority:3" json:"term_id"`
	TeacherUserID int       `gorm:"not null"                                 json:"teacher_user_id"`
	ScoreValue    float64   `gorm:"type:numeric(5,2);not null"               json:"score_value"`
	RecordedAt    time.Time `gorm:"not null"                                 json:"recorded_at"`

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Term    *Term    `gorm:"foreignKey:TermID;references:TermID"       json:"term,omitempty"`
}

func (Score) TableName() string { return "score" }

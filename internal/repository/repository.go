package repository

import (
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User      UserRepository
	Year      YearRepository
	Term      TermRepository
	Classroom ClassroomRepository
	Subject   SubjectRepository
	Student   StudentRepository
	Score     ScoreRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:      NewUserRepo(db),
		Year:      NewYearRepo(db),
		Term:      NewTermRepo(db),
		Classroom: NewClassroomRepo(db),
		Subject:   NewSubjectRepo(db),
		Student:   NewStudentRepo(db),
		Score:     NewScoreRepo(db),
	}
}

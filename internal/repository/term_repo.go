package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/model"
)

// TermRepository 学期数据访问接口
// 学期只在学年创建时批量生成（见 YearRepository.CreateWithTerms），之后不可变
type TermRepository interface {
	GetByYearAndNumber(ctx context.Context, yearLabel, termNumber int) (*model.Term, error)
	ListByYear(ctx context.Context, academicYearID int) ([]model.Term, error)
}

type termRepo struct {
	db *gorm.DB
}

// NewTermRepo 创建 TermRepository 实例
func NewTermRepo(db *gorm.DB) TermRepository {
	return &termRepo{db: db}
}

// GetByYearAndNumber 按 (年份标签, 学期号) 解析学期
// 报表与成绩模块共用的学期解析入口
func (r *termRepo) GetByYearAndNumber(ctx context.Context, yearLabel, termNumber int) (*model.Term, error) {
	var term model.Term
	err := r.db.WithContext(ctx).
		Joins("JOIN academic_year ay ON ay.academic_year_id = term.academic_year_id").
		Where("ay.year_label = ? AND term.term_number = ?", yearLabel, termNumber).
		First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepo) ListByYear(ctx context.Context, academicYearID int) ([]model.Term, error) {
	var terms []model.Term
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", academicYearID).
		Order("term_number").
		Find(&terms).Error
	return terms, err
}

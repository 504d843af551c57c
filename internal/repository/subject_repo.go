package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/model"
)

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	ListByGrade(ctx context.Context, gradeID int) ([]model.Subject, error)
	ListByIDs(ctx context.Context, ids []int) ([]model.Subject, error)
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListByGrade 某年级的全部科目，按名称排序
// 班级×学期视图以此作为完整分母
func (r *subjectRepo) ListByGrade(ctx context.Context, gradeID int) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Where("grade_id = ?", gradeID).
		Order("subject_name").
		Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) ListByIDs(ctx context.Context, ids []int) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id IN ?", ids).
		Find(&subjects).Error
	return subjects, err
}

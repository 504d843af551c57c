package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByNumber(ctx context.Context, studentNumber string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	ListByClass(ctx context.Context, classID int) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Deactivate(ctx context.Context, id int) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id int) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByNumber(ctx context.Context, studentNumber string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_number = ?", studentNumber).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&students).Error
	return students, err
}

// ListByClass 班级在册学生花名册，按姓氏、名字排序
func (r *studentRepo) ListByClass(ctx context.Context, classID int) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND is_active", classID).
		Order("last_name, first_name").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Deactivate 软删除：仅将 is_active 置为 false
func (r *studentRepo) Deactivate(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("student_id = ?", id).
		Update("is_active", false).Error
}

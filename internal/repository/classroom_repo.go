package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/model"
)

// ClassroomInfo 班级查询行：班级 + 年级号 + 在册学生数
type ClassroomInfo struct {
	ClassID      int    `gorm:"column:class_id"`
	GradeID      int    `gorm:"column:grade_id"`
	GradeNumber  int    `gorm:"column:grade_number"`
	ClassName    string `gorm:"column:class_name"`
	StudentCount int    `gorm:"column:student_count"`
}

// ClassroomRepository 班级数据访问接口
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id int) (*ClassroomInfo, error)
	GetModelByID(ctx context.Context, id int) (*model.Classroom, error)
	ListByGradeNumber(ctx context.Context, gradeNumber int) ([]ClassroomInfo, error)
	GetByTeacher(ctx context.Context, teacherUserID int) (*ClassroomInfo, error)
	Update(ctx context.Context, classroom *model.Classroom) error
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

const classroomInfoSelect = `classroom.class_id, classroom.grade_id, g.grade_number, classroom.class_name,
	COUNT(st.student_id) AS student_count`

func (r *classroomRepo) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id int) (*ClassroomInfo, error) {
	var info ClassroomInfo
	err := r.db.WithContext(ctx).
		Model(&model.Classroom{}).
		Select(classroomInfoSelect).
		Joins("JOIN grade g ON g.grade_id = classroom.grade_id").
		Joins("LEFT JOIN student st ON st.class_id = classroom.class_id AND st.is_active").
		Where("classroom.class_id = ?", id).
		Group("classroom.class_id, g.grade_number").
		Take(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *classroomRepo) GetModelByID(ctx context.Context, id int) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepo) ListByGradeNumber(ctx context.Context, gradeNumber int) ([]ClassroomInfo, error) {
	var infos []ClassroomInfo
	err := r.db.WithContext(ctx).
		Model(&model.Classroom{}).
		Select(classroomInfoSelect).
		Joins("JOIN grade g ON g.grade_id = classroom.grade_id").
		Joins("LEFT JOIN student st ON st.class_id = classroom.class_id AND st.is_active").
		Where("g.grade_number = ?", gradeNumber).
		Group("classroom.class_id, g.grade_number").
		Order("classroom.class_name").
		Scan(&infos).Error
	return infos, err
}

// GetByTeacher 查教师 (assigned_class_id) 负责的班级
func (r *classroomRepo) GetByTeacher(ctx context.Context, teacherUserID int) (*ClassroomInfo, error) {
	var info ClassroomInfo
	err := r.db.WithContext(ctx).
		Model(&model.Classroom{}).
		Select(classroomInfoSelect).
		Joins("JOIN grade g ON g.grade_id = classroom.grade_id").
		Joins("JOIN users u ON u.assigned_class_id = classroom.class_id").
		Joins("LEFT JOIN student st ON st.class_id = classroom.class_id AND st.is_active").
		Where("u.user_id = ?", teacherUserID).
		Group("classroom.class_id, g.grade_number").
		Take(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *classroomRepo) Update(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

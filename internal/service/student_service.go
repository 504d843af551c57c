package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

var (
	ErrStudentNotFound        = errors.New("学生不存在")
	ErrStudentNumberDuplicate = errors.New("学号已存在")
	ErrStudentClassNotFound   = errors.New("班级不存在")
)

// StudentService 学生业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id int) (*dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	ListByClass(ctx context.Context, classID int) ([]dto.StudentResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Deactivate(ctx context.Context, id int) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.repo.Classroom.GetModelByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentClassNotFound
		}
		return nil, err
	}

	if _, err := s.repo.Student.GetByNumber(ctx, req.StudentNumber); err == nil {
		return nil, ErrStudentNumberDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	student := &model.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ClassID:       req.ClassID,
		IsActive:      true,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.String("student_number", req.StudentNumber), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生已创建", zap.Int("student_id", student.StudentID), zap.String("student_number", student.StudentNumber))
	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id int) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

func (s *studentService) ListByClass(ctx context.Context, classID int) ([]dto.StudentResponse, error) {
	if _, err := s.repo.Classroom.GetModelByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentClassNotFound
		}
		return nil, err
	}
	students, err := s.repo.Student.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.Int("class_id", classID), zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id int, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.StudentNumber != nil && *req.StudentNumber != student.StudentNumber {
		if _, err := s.repo.Student.GetByNumber(ctx, *req.StudentNumber); err == nil {
			return nil, ErrStudentNumberDuplicate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		student.StudentNumber = *req.StudentNumber
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.ClassID != nil {
		if _, err := s.repo.Classroom.GetModelByID(ctx, *req.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentClassNotFound
			}
			return nil, err
		}
		student.ClassID = *req.ClassID
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.Int("student_id", id), zap.Error(err))
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Deactivate ──────────────────────

// Deactivate 软删除：保留历史成绩，仅移出在册名单
func (s *studentService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if err := s.repo.Student.Deactivate(ctx, id); err != nil {
		s.logger.Error("停用学生失败", zap.Int("student_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("学生已停用", zap.Int("student_id", id))
	return nil
}

// ── 辅助 ──

func toStudentResponse(student *model.Student) dto.StudentResponse {
	return dto.StudentResponse{
		StudentID:     student.StudentID,
		StudentNumber: student.StudentNumber,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		ClassID:       student.ClassID,
		IsActive:      student.IsActive,
		CreatedAt:     student.CreatedAt.Format(dateLayout),
	}
}

func toStudentResponses(students []model.Student) []dto.StudentResponse {
	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, toStudentResponse(&students[i]))
	}
	return out
}

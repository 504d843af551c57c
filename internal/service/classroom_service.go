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
	ErrClassroomNotFound     = errors.New("班级不存在")
	ErrClassroomYearNotFound = errors.New("学年不存在")
	ErrTeacherHasNoClassroom = errors.New("该教师未分配班级")
)

// ClassroomService 班级业务接口
type ClassroomService interface {
	Create(ctx context.Context, req *dto.CreateClassroomRequest) (*dto.ClassroomResponse, error)
	GetByID(ctx context.Context, id int) (*dto.ClassroomResponse, error)
	ListByYearAndGrade(ctx context.Context, yearLabel, gradeNumber int) ([]dto.ClassroomResponse, error)
	GetByTeacher(ctx context.Context, teacherUserID int) (*dto.ClassroomResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateClassroomRequest) (*dto.ClassroomResponse, error)
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassroomService 创建 ClassroomService 实例
func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classroomService) Create(ctx context.Context, req *dto.CreateClassroomRequest) (*dto.ClassroomResponse, error) {
	classroom := &model.Classroom{
		GradeID:   req.GradeID,
		ClassName: req.ClassName,
	}
	if err := s.repo.Classroom.Create(ctx, classroom); err != nil {
		s.logger.Error("创建班级失败", zap.Int("grade_id", req.GradeID), zap.String("class_name", req.ClassName), zap.Error(err))
		return nil, err
	}

	s.logger.Info("班级已创建", zap.Int("class_id", classroom.ClassID), zap.String("class_name", classroom.ClassName))
	return s.GetByID(ctx, classroom.ClassID)
}

// ────────────────────── 查询 ──────────────────────

func (s *classroomService) GetByID(ctx context.Context, id int) (*dto.ClassroomResponse, error) {
	info, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Int("class_id", id), zap.Error(err))
		return nil, err
	}
	resp := toClassroomResponse(info)
	return &resp, nil
}

// ListByYearAndGrade 按学年 + 年级列出班级。
// 班级本身不挂学年，这里仍先确认学年存在，避免按不存在的学年
// 查询时静默返回空列表。
func (s *classroomService) ListByYearAndGrade(ctx context.Context, yearLabel, gradeNumber int) ([]dto.ClassroomResponse, error) {
	if _, err := s.repo.Year.GetByLabel(ctx, yearLabel); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomYearNotFound
		}
		return nil, err
	}

	infos, err := s.repo.Classroom.ListByGradeNumber(ctx, gradeNumber)
	if err != nil {
		s.logger.Error("查询年级班级失败", zap.Int("grade_number", gradeNumber), zap.Error(err))
		return nil, err
	}

	out := make([]dto.ClassroomResponse, 0, len(infos))
	for i := range infos {
		out = append(out, toClassroomResponse(&infos[i]))
	}
	return out, nil
}

func (s *classroomService) GetByTeacher(ctx context.Context, teacherUserID int) (*dto.ClassroomResponse, error) {
	info, err := s.repo.Classroom.GetByTeacher(ctx, teacherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherHasNoClassroom
		}
		s.logger.Error("查询教师班级失败", zap.Int("teacher_user_id", teacherUserID), zap.Error(err))
		return nil, err
	}
	resp := toClassroomResponse(info)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *classroomService) Update(ctx context.Context, id int, req *dto.UpdateClassroomRequest) (*dto.ClassroomResponse, error) {
	classroom, err := s.repo.Classroom.GetModelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}

	if req.GradeID != nil {
		classroom.GradeID = *req.GradeID
	}
	if req.ClassName != nil {
		classroom.ClassName = *req.ClassName
	}

	if err := s.repo.Classroom.Update(ctx, classroom); err != nil {
		s.logger.Error("更新班级失败", zap.Int("class_id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ── 辅助 ──

func toClassroomResponse(info *repository.ClassroomInfo) dto.ClassroomResponse {
	return dto.ClassroomResponse{
		ClassID:      info.ClassID,
		GradeID:      info.GradeID,
		GradeNumber:  info.GradeNumber,
		ClassName:    info.ClassName,
		StudentCount: info.StudentCount,
	}
}

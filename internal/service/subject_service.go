package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

var ErrSubjectNotFound = errors.New("科目不存在")

// SubjectService 科目查询接口
// 科目集合按年级维护，这里只提供读路径
type SubjectService interface {
	GetByID(ctx context.Context, id int) (*dto.SubjectRef, error)
	ListByGrade(ctx context.Context, gradeID int) ([]dto.SubjectRef, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) GetByID(ctx context.Context, id int) (*dto.SubjectRef, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &dto.SubjectRef{SubjectID: subject.SubjectID, Name: subject.SubjectName}, nil
}

func (s *subjectService) ListByGrade(ctx context.Context, gradeID int) ([]dto.SubjectRef, error) {
	subjects, err := s.repo.Subject.ListByGrade(ctx, gradeID)
	if err != nil {
		s.logger.Error("查询科目列表失败", zap.Int("grade_id", gradeID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.SubjectRef, 0, len(subjects))
	for i := range subjects {
		out = append(out, dto.SubjectRef{SubjectID: subjects[i].SubjectID, Name: subjects[i].SubjectName})
	}
	return out, nil
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/internal/repository"
)

var (
	ErrStaffNotFound        = errors.New("教职工不存在")
	ErrStaffIDDuplicate     = errors.New("工号已存在")
	ErrStaffClassNotFound   = errors.New("分配的班级不存在")
	ErrStaffPasswordEncrypt = errors.New("密码加密失败")
)

// StaffService 教职工账号业务接口
type StaffService interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetByID(ctx context.Context, id int) (*dto.StaffResponse, error)
	List(ctx context.Context) ([]dto.StaffResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Deactivate(ctx context.Context, id int) error
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *staffService) Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if _, err := s.repo.User.GetByStaffID(ctx, req.StaffID); err == nil {
		return nil, ErrStaffIDDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.AssignedClassID != nil {
		if _, err := s.repo.Classroom.GetModelByID(ctx, *req.AssignedClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStaffClassNotFound
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码加密失败", zap.Error(err))
		return nil, ErrStaffPasswordEncrypt
	}

	user := &model.User{
		StaffID:         req.StaffID,
		PasswordHash:    string(hash),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		RoleID:          req.RoleID,
		AssignedClassID: req.AssignedClassID,
		IsActive:        true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建教职工失败", zap.String("staff_id", req.StaffID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("教职工已创建",
		zap.Int("user_id", user.UserID),
		zap.String("staff_id", user.StaffID),
		zap.String("role", model.RoleName(user.RoleID)),
	)
	resp := toStaffResponse(user)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *staffService) GetByID(ctx context.Context, id int) (*dto.StaffResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	resp := toStaffResponse(user)
	return &resp, nil
}

func (s *staffService) List(ctx context.Context) ([]dto.StaffResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询教职工列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(users))
	for i := range users {
		out = append(out, toStaffResponse(&users[i]))
	}
	return out, nil
}

// ────────────────────── Update ──────────────────────

func (s *staffService) Update(ctx context.Context, id int, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, ErrStaffPasswordEncrypt
		}
		user.PasswordHash = string(hash)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.AssignedClassID != nil {
		if _, err := s.repo.Classroom.GetModelByID(ctx, *req.AssignedClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStaffClassNotFound
			}
			return nil, err
		}
		user.AssignedClassID = req.AssignedClassID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新教职工失败", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}
	resp := toStaffResponse(user)
	return &resp, nil
}

// ────────────────────── Deactivate ──────────────────────

func (s *staffService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	if err := s.repo.User.Deactivate(ctx, id); err != nil {
		s.logger.Error("停用教职工失败", zap.Int("user_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("教职工已停用", zap.Int("user_id", id))
	return nil
}

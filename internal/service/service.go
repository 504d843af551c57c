package service

import (
	"go.uber.org/zap"

	"github.com/nickelcy/GradeManagement/config"
	"github.com/nickelcy/GradeManagement/internal/repository"
	"github.com/nickelcy/GradeManagement/pkg/jwt"
	"github.com/nickelcy/GradeManagement/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Year      YearService
	Score     ScoreService
	Report    ReportService
	Student   StudentService
	Classroom ClassroomService
	Staff     StaffService
	Subject   SubjectService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	scoreSvc := NewScoreService(repo, logger)
	return &Service{
		Auth:      NewAuthService(&cfg.Auth, repo, jwtMgr, rdb, logger),
		Year:      NewYearService(repo, logger),
		Score:     scoreSvc,
		Report:    NewReportService(repo, logger),
		Student:   NewStudentService(repo, logger),
		Classroom: NewClassroomService(repo, logger),
		Staff:     NewStaffService(repo, logger),
		Subject:   NewSubjectService(repo, logger),
		Export:    NewExportService(scoreSvc, logger),
	}
}

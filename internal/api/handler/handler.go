package handler

import "github.com/nickelcy/GradeManagement/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Year      *YearHandler
	Student   *StudentHandler
	Score     *ScoreHandler
	Classroom *ClassroomHandler
	Staff     *StaffHandler
	Subject   *SubjectHandler
	Report    *ReportHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Year:      NewYearHandler(svc.Year),
		Student:   NewStudentHandler(svc.Student),
		Score:     NewScoreHandler(svc.Score),
		Classroom: NewClassroomHandler(svc.Classroom, svc.Student),
		Staff:     NewStaffHandler(svc.Staff),
		Subject:   NewSubjectHandler(svc.Subject),
		Report:    NewReportHandler(svc.Report),
		Export:    NewExportHandler(svc.Export),
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetStudentReport 学生报表（未评分科目留空，不补 0）
// GET /api/v1/reports/student?year=2026&term=1&grade=&class=&student=
func (h *ReportHandler) GetStudentReport(c *gin.Context) {
	var q dto.StudentReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rows, err := h.reportSvc.GetStudentReport(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// GetSubjectReport 科目均分报表（无数据时均分为 null）
// GET /api/v1/reports/subject?year=2026&term=1&grade=7&subject=1
func (h *ReportHandler) GetSubjectReport(c *gin.Context) {
	var q dto.SubjectReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reportSvc.GetSubjectReportAverage(c.Request.Context(), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// handleReportError 统一处理报表模块业务错误
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportTermNotFound):
		response.NotFound(c, 18001, "指定学年与学期不存在")
	default:
		response.InternalError(c)
	}
}

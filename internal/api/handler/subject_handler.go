package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// SubjectHandler 科目模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// GetSubject 获取科目详情
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "科目ID无效")
		return
	}

	subject, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.NotFound(c, 17001, "科目不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, subject)
}

// ListSubjectsByGrade 获取年级开设的科目列表
// GET /api/v1/subjects?grade=1
func (h *SubjectHandler) ListSubjectsByGrade(c *gin.Context) {
	gradeID, err := strconv.Atoi(c.Query("grade"))
	if err != nil || gradeID <= 0 {
		response.BadRequest(c, 10001, "grade 参数无效")
		return
	}

	subjects, err := h.subjectSvc.ListByGrade(c.Request.Context(), gradeID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": subjects})
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// ScoreHandler 成绩模块 HTTP 处理器
type ScoreHandler struct {
	scoreSvc service.ScoreService
}

// NewScoreHandler 创建 ScoreHandler
func NewScoreHandler(scoreSvc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreSvc: scoreSvc}
}

// UpsertScores 批量提交/覆盖学生某学期成绩
// POST /api/v1/students/:id/scores/:year/terms/:term
// PUT  /api/v1/students/:id/scores/:year/terms/:term
func (h *ScoreHandler) UpsertScores(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || studentID <= 0 {
		response.BadRequest(c, 10001, "学生ID无效")
		return
	}
	yearLabel, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, 10001, "学年标签无效")
		return
	}
	termNumber, err := strconv.Atoi(c.Param("term"))
	if err != nil || termNumber < 1 || termNumber > 3 {
		response.BadRequest(c, 10001, "学期编号无效，应为 1-3")
		return
	}

	var req dto.UpsertScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scoreSvc.UpsertScores(c.Request.Context(), studentID, yearLabel, termNumber, teacherID, &req); err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetStudentYearScores 学生×学年成绩视图（科目 × 学期矩阵，补 0）
// GET /api/v1/students/:id/scores/:year
func (h *ScoreHandler) GetStudentYearScores(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || studentID <= 0 {
		response.BadRequest(c, 10001, "学生ID无效")
		return
	}
	yearLabel, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, 10001, "学年标签无效")
		return
	}

	result, err := h.scoreSvc.GetStudentScoresByYear(c.Request.Context(), studentID, yearLabel)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, result)
}

// GetClassTermScores 班级×学期成绩视图（科目 × 学生矩阵，补 0）
// GET /api/v1/classrooms/:id/scores?year=2026&term=1
func (h *ScoreHandler) GetClassTermScores(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil || classID <= 0 {
		response.BadRequest(c, 10001, "班级ID无效")
		return
	}
	yearLabel, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, 10001, "year 参数无效")
		return
	}
	termNumber, err := strconv.Atoi(c.Query("term"))
	if err != nil || termNumber < 1 || termNumber > 3 {
		response.BadRequest(c, 10001, "term 参数无效，应为 1-3")
		return
	}

	result, err := h.scoreSvc.GetClassScoresByTerm(c.Request.Context(), classID, yearLabel, termNumber)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, result)
}

// handleScoreError 统一处理成绩模块业务错误
func (h *ScoreHandler) handleScoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScoreTermNotFound):
		response.NotFound(c, 14001, "指定学年与学期不存在")
	case errors.Is(err, service.ErrScoreClassroomNotFound):
		response.NotFound(c, 14002, "班级不存在")
	case errors.Is(err, service.ErrScoreBatchEmpty):
		response.BadRequest(c, 14003, "成绩列表不能为空")
	case errors.Is(err, service.ErrScoreSubjectUnknown):
		response.BadRequest(c, 14004, "成绩中存在未知科目")
	case errors.Is(err, service.ErrScorePersist):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

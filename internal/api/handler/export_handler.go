package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportClassScores 导出班级×学期成绩矩阵为 Excel
// GET /api/v1/classrooms/:id/scores/export?year=2026&term=1
func (h *ExportHandler) ExportClassScores(c *gin.Context) {
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

	buf, filename, err := h.exportSvc.ExportClassTermScores(c.Request.Context(), classID, yearLabel, termNumber)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScoreTermNotFound):
		response.NotFound(c, 19001, "指定学年与学期不存在")
	case errors.Is(err, service.ErrScoreClassroomNotFound):
		response.NotFound(c, 19002, "班级不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

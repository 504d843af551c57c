package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// YearHandler 学年模块 HTTP 处理器
type YearHandler struct {
	yearSvc service.YearService
}

// NewYearHandler 创建 YearHandler
func NewYearHandler(yearSvc service.YearService) *YearHandler {
	return &YearHandler{yearSvc: yearSvc}
}

// CreateYear 创建学年并自动拆分 3 个学期
// POST /api/v1/years
func (h *YearHandler) CreateYear(c *gin.Context) {
	var req dto.CreateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	year, err := h.yearSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleYearError(c, err)
		return
	}

	response.Created(c, year)
}

// GetYear 获取学年详情
// GET /api/v1/years/:id
func (h *YearHandler) GetYear(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "学年ID无效")
		return
	}

	year, err := h.yearSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleYearError(c, err)
		return
	}

	response.OK(c, year)
}

// ListYears 获取学年列表
// GET /api/v1/years
func (h *YearHandler) ListYears(c *gin.Context) {
	years, err := h.yearSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": years})
}

// ListTerms 获取学年下的学期列表
// GET /api/v1/years/:id/terms
func (h *YearHandler) ListTerms(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "学年ID无效")
		return
	}

	terms, err := h.yearSvc.ListTerms(c.Request.Context(), id)
	if err != nil {
		h.handleYearError(c, err)
		return
	}

	response.OK(c, gin.H{"list": terms})
}

// UpdateYear 更新学年
// PUT /api/v1/years/:id
func (h *YearHandler) UpdateYear(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "学年ID无效")
		return
	}

	var req dto.UpdateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	year, err := h.yearSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleYearError(c, err)
		return
	}

	response.OK(c, year)
}

// ExportCalendar 导出学年学期日历（iCalendar）
// GET /api/v1/years/:id/calendar.ics
func (h *YearHandler) ExportCalendar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "学年ID无效")
		return
	}

	buf, filename, err := h.yearSvc.ExportCalendar(c.Request.Context(), id)
	if err != nil {
		h.handleYearError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleYearError 统一处理学年模块业务错误
func (h *YearHandler) handleYearError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrYearNotFound):
		response.NotFound(c, 12001, "学年不存在")
	case errors.Is(err, service.ErrYearInvalidRange):
		response.BadRequest(c, 12002, "学年跨度不足 3 天，无法拆分为 3 个学期")
	case errors.Is(err, service.ErrYearDateMalformed):
		response.BadRequest(c, 12003, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrYearLabelDuplicate):
		response.BadRequest(c, 12004, "该年份标签已存在")
	default:
		response.InternalError(c)
	}
}

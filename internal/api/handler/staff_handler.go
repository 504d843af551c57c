package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// StaffHandler 教职工模块 HTTP 处理器
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// CreateStaff 创建教职工账号
// POST /api/v1/staff
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staff, err := h.staffSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.Created(c, staff)
}

// GetStaff 获取教职工详情
// GET /api/v1/staff/:id
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "教职工ID无效")
		return
	}

	staff, err := h.staffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// ListStaff 获取在职教职工列表
// GET /api/v1/staff
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.staffSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": staff})
}

// UpdateStaff 更新教职工（部分字段，含改密）
// PUT /api/v1/staff/:id
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "教职工ID无效")
		return
	}

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staff, err := h.staffSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, staff)
}

// DeactivateStaff 停用教职工账号（软删除）
// DELETE /api/v1/staff/:id
func (h *StaffHandler) DeactivateStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "教职工ID无效")
		return
	}

	if err := h.staffSvc.Deactivate(c.Request.Context(), id); err != nil {
		h.handleStaffError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleStaffError 统一处理教职工模块业务错误
func (h *StaffHandler) handleStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 16001, "教职工不存在")
	case errors.Is(err, service.ErrStaffIDDuplicate):
		response.BadRequest(c, 16002, "工号已存在")
	case errors.Is(err, service.ErrStaffClassNotFound):
		response.BadRequest(c, 16003, "分配的班级不存在")
	case errors.Is(err, service.ErrStaffPasswordEncrypt):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickelcy/GradeManagement/internal/dto"
	"github.com/nickelcy/GradeManagement/internal/service"
	"github.com/nickelcy/GradeManagement/pkg/response"
)

// ClassroomHandler 班级模块 HTTP 处理器
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
	studentSvc   service.StudentService
}

// NewClassroomHandler 创建 ClassroomHandler
// studentSvc 供班级花名册路由使用
func NewClassroomHandler(classroomSvc service.ClassroomService, studentSvc service.StudentService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc, studentSvc: studentSvc}
}

// CreateClassroom 创建班级
// POST /api/v1/classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	classroom, err := h.classroomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, classroom)
}

// GetClassroom 获取班级详情
// GET /api/v1/classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "班级ID无效")
		return
	}

	classroom, err := h.classroomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// ListClassroomsByYearGrade 按学年与年级过滤班级
// GET /api/v1/classrooms/year-grade?year=2026&grade=7
func (h *ClassroomHandler) ListClassroomsByYearGrade(c *gin.Context) {
	yearLabel, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, 10001, "year 参数无效")
		return
	}
	gradeNumber, err := strconv.Atoi(c.Query("grade"))
	if err != nil || gradeNumber <= 0 {
		response.BadRequest(c, 10001, "grade 参数无效")
		return
	}

	classrooms, err := h.classroomSvc.ListByYearAndGrade(c.Request.Context(), yearLabel, gradeNumber)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, gin.H{"list": classrooms})
}

// GetClassroomByTeacher 查询教师分配的班级
// GET /api/v1/classrooms/teacher/:id
func (h *ClassroomHandler) GetClassroomByTeacher(c *gin.Context) {
	teacherID, err := strconv.Atoi(c.Param("id"))
	if err != nil || teacherID <= 0 {
		response.BadRequest(c, 10001, "教师ID无效")
		return
	}

	classroom, err := h.classroomSvc.GetByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// ListClassroomStudents 获取班级在读学生花名册
// GET /api/v1/classrooms/:id/students
func (h *ClassroomHandler) ListClassroomStudents(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "班级ID无效")
		return
	}

	students, err := h.studentSvc.ListByClass(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentClassNotFound) {
			response.NotFound(c, 15001, "班级不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// UpdateClassroom 更新班级
// PUT /api/v1/classrooms/:id
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "班级ID无效")
		return
	}

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	classroom, err := h.classroomSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, classroom)
}

// handleClassroomError 统一处理班级模块业务错误
func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 15001, "班级不存在")
	case errors.Is(err, service.ErrClassroomYearNotFound):
		response.BadRequest(c, 15002, "学年不存在")
	case errors.Is(err, service.ErrTeacherHasNoClassroom):
		response.NotFound(c, 15003, "该教师未分配班级")
	default:
		response.InternalError(c)
	}
}

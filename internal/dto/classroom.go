package dto

// ── 班级模块 DTO ──

// CreateClassroomRequest 创建班级请求
type CreateClassroomRequest struct {
	GradeID   int    `json:"grade_id"   binding:"required,min=1"`
	ClassName string `json:"class_name" binding:"required,min=1,max=50"`
}

// UpdateClassroomRequest 更新班级请求（可选字段部分更新）
type UpdateClassroomRequest struct {
	GradeID   *int    `json:"grade_id"   binding:"omitempty,min=1"`
	ClassName *string `json:"class_name" binding:"omitempty,min=1,max=50"`
}

// ClassroomResponse 班级信息响应（含年级号与在册学生数）
type ClassroomResponse struct {
	ClassID      int    `json:"class_id"`
	GradeID      int    `json:"grade_id"`
	GradeNumber  int    `json:"grade_number"`
	ClassName    string `json:"class_name"`
	StudentCount int    `json:"student_count"`
}

package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=1,max=30"`
	FirstName     string `json:"first_name"     binding:"required,min=1,max=50"`
	LastName      string `json:"last_name"      binding:"required,min=1,max=50"`
	ClassID       int    `json:"class_id"       binding:"required,min=1"`
}

// UpdateStudentRequest 更新学生请求（可选字段部分更新）
type UpdateStudentRequest struct {
	StudentNumber *string `json:"student_number" binding:"omitempty,min=1,max=30"`
	FirstName     *string `json:"first_name"     binding:"omitempty,min=1,max=50"`
	LastName      *string `json:"last_name"      binding:"omitempty,min=1,max=50"`
	ClassID       *int    `json:"class_id"       binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	StudentID     int    `json:"student_id"`
	StudentNumber string `json:"student_number"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ClassID       int    `json:"class_id"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

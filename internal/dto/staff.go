package dto

// ── 教职工模块 DTO ──

// CreateStaffRequest 创建教职工账号请求
type CreateStaffRequest struct {
	StaffID         string `json:"staff_id"   binding:"required,min=1,max=30"`
	Password        string `json:"password"   binding:"required,min=8,max=72"`
	FirstName       string `json:"first_name" binding:"required,min=1,max=50"`
	LastName        string `json:"last_name"  binding:"required,min=1,max=50"`
	RoleID          int    `json:"role_id"    binding:"required,oneof=1 2"` // 1=admin 2=teacher
	AssignedClassID *int   `json:"assigned_class_id" binding:"omitempty,min=1"`
}

// UpdateStaffRequest 更新教职工请求（可选字段部分更新）
type UpdateStaffRequest struct {
	Password        *string `json:"password"   binding:"omitempty,min=8,max=72"`
	FirstName       *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName        *string `json:"last_name"  binding:"omitempty,min=1,max=50"`
	RoleID          *int    `json:"role_id"    binding:"omitempty,oneof=1 2"`
	AssignedClassID *int    `json:"assigned_class_id" binding:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active"`
}

// StaffResponse 教职工信息响应（不含密码散列）
type StaffResponse struct {
	UserID          int    `json:"user_id"`
	StaffID         string `json:"staff_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	RoleID          int    `json:"role_id"`
	Role            string `json:"role"`
	AssignedClassID *int   `json:"assigned_class_id,omitempty"`
	IsActive        bool   `json:"is_active"`
}

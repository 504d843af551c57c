package dto

// ── 学年模块 DTO ──

// CreateYearRequest 创建学年请求
// 学年创建时按天数自动拆分为 3 个学期
type CreateYearRequest struct {
	YearLabel int    `json:"year_label" binding:"required,min=1000,max=9999"`
	StartDate string `json:"start_date" binding:"required"` // "2026-09-01"
	EndDate   string `json:"end_date"   binding:"required"` // "2027-06-30"
	IsActive  bool   `json:"is_active"`
}

// UpdateYearRequest 更新学年请求（可选字段部分更新）
type UpdateYearRequest struct {
	YearLabel *int    `json:"year_label" binding:"omitempty,min=1000,max=9999"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  *bool   `json:"is_active"`
}

// YearResponse 学年信息响应
type YearResponse struct {
	AcademicYearID int    `json:"academic_year_id"`
	YearLabel      int    `json:"year_label"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	IsActive       bool   `json:"is_active"`
}

// TermResponse 学期信息响应
type TermResponse struct {
	TermID     int    `json:"term_id"`
	TermNumber int    `json:"term_number"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// CreateYearResponse 创建学年响应：学年 + 生成的 3 个学期
type CreateYearResponse struct {
	YearResponse
	Terms []TermResponse `json:"terms"`
}

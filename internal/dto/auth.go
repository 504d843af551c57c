package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求：工号 + 密码
type LoginRequest struct {
	StaffID  string `json:"staff_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in"` // Access Token 有效期（秒）
	User         StaffResponse `json:"user"`
}

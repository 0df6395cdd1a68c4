package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应
type UserResponse struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	Role        string  `json:"role"`
	FullName    string  `json:"full_name"`
	Avatar      string  `json:"avatar"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// UserBrief 用户简要信息（嵌入课表/作业/名单响应）
type UserBrief struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// UpdateProfileRequest 更新个人资料请求
// 仅更新提供的字段（set-if-present 合并）
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"    binding:"omitempty,min=2,max=100"`
	Avatar      *string `json:"avatar"       binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
}

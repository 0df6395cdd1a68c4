package dto

// ── 课表模块 DTO ──

// CreateScheduleSlotRequest 创建时段请求
// DayOfWeek 用指针以允许 0（周日）通过 required 校验
type CreateScheduleSlotRequest struct {
	DayOfWeek   *int    `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime   string  `json:"start_time"  binding:"required"` // "09:00"
	EndTime     string  `json:"end_time"    binding:"required"` // "10:00"
	Title       *string `json:"title"       binding:"omitempty,max=255"`
	Description *string `json:"description"`
	StudentID   *uint   `json:"student_id"` // 定向时段：绑定到某个学生
}

// UpdateScheduleSlotRequest 更新时段请求
// 仅更新提供的字段；Version 提供时作为乐观锁期望版本
type UpdateScheduleSlotRequest struct {
	DayOfWeek   *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Title       *string `json:"title"       binding:"omitempty,max=255"`
	Description *string `json:"description"`
	StudentID   *uint   `json:"student_id"`
	Version     *int    `json:"version"`
}

// SetAvailabilityRequest 时段可用性切换请求
// 取消（is_available=false）必须携带 cancellation_reason（允许空字符串）
type SetAvailabilityRequest struct {
	IsAvailable        *bool   `json:"is_available" binding:"required"`
	CancellationReason *string `json:"cancellation_reason"`
	Version            *int    `json:"version"`
}

// ScheduleSlotResponse 时段信息响应
type ScheduleSlotResponse struct {
	ID                 uint       `json:"id"`
	TeacherID          uint       `json:"teacher_id"`
	DayOfWeek          int        `json:"day_of_week"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	IsAvailable        bool       `json:"is_available"`
	Title              *string    `json:"title,omitempty"`
	Description        *string    `json:"description,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	StudentID          *uint      `json:"student_id,omitempty"`
	Student            *UserBrief `json:"student,omitempty"`
	Version            int        `json:"version"`
	CreatedAt          string     `json:"created_at"`
	UpdatedAt          string     `json:"updated_at"`
}

// DayScheduleResponse 按天分组的课表（周视图）
// 仅包含有时段的天，天内按开始时间升序
type DayScheduleResponse struct {
	DayOfWeek int                    `json:"day_of_week"`
	Slots     []ScheduleSlotResponse `json:"slots"`
}

// [自证通过] internal/dto/schedule.go
